package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/thaongo/openbank-hub/core"
)

func New(
	accounts core.AccountStore,
	catalog core.CatalogStore,
	otps core.OtpStore,
	tokens core.TokenStore,
	courier core.Dispatcher,
	logger *slog.Logger,
) *Server {
	return &Server{
		accounts: accounts,
		catalog:  catalog,
		otps:     otps,
		tokens:   tokens,
		courier:  courier,
		logger:   logger.With("server", "api"),
	}
}

type Server struct {
	accounts core.AccountStore
	catalog  core.CatalogStore
	otps     core.OtpStore
	tokens   core.TokenStore
	courier  core.Dispatcher
	logger   *slog.Logger
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Route("/bank/{bank}", func(r chi.Router) {
		r.Get("/accounts/{phone}", s.listAccounts)
		r.Post("/balance", s.requestBalance)
		r.Post("/otp/verify", s.verifyOtp)
		r.Get("/services", s.searchServices)
		r.Get("/summary/{accountId}", s.accountSummary)
	})

	return r
}

func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	bank := chi.URLParam(r, "bank")
	phone := chi.URLParam(r, "phone")

	render(w, http.StatusOK, s.accounts.List(r.Context(), bank, phone))
}

func (s *Server) requestBalance(w http.ResponseWriter, r *http.Request) {
	bank := chi.URLParam(r, "bank")

	var req struct {
		Phone     string `json:"phone"`
		AccountID string `json:"accountId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if req.Phone == "" || req.AccountID == "" {
		renderErr(w, http.StatusBadRequest, "phone and accountId are required")
		return
	}

	if account := s.accounts.Find(r.Context(), bank, req.Phone, req.AccountID); account == nil {
		renderErr(w, http.StatusNotFound, "account not found")
		return
	}

	key := core.ChallengeKey{Phone: req.Phone, Bank: bank, AccountID: req.AccountID}
	challenge, err := s.otps.Issue(r.Context(), key)
	if err != nil {
		s.logger.Error("otps.Issue", "err", err)
		renderErr(w, http.StatusInternalServerError, "otp issuance failed")
		return
	}

	expiresIn := int(core.OtpTTL.Seconds())

	s.courier.Dispatch(&core.Event{
		Type:  core.EventOtpSent,
		Phone: req.Phone,
		Bank:  bank,
		Payload: map[string]any{
			"otp":       challenge.Code,
			"accountId": req.AccountID,
			"expiresIn": expiresIn,
		},
	})

	render(w, http.StatusOK, map[string]any{
		"message":   fmt.Sprintf("OTP sent to %s by %s", req.Phone, bank),
		"expiresIn": expiresIn,
	})
}

func (s *Server) verifyOtp(w http.ResponseWriter, r *http.Request) {
	bank := chi.URLParam(r, "bank")

	var req struct {
		Phone     string `json:"phone"`
		Otp       string `json:"otp"`
		AccountID string `json:"accountId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if req.Phone == "" || req.Otp == "" || req.AccountID == "" {
		renderErr(w, http.StatusBadRequest, "phone, otp and accountId are required")
		return
	}

	key := core.ChallengeKey{Phone: req.Phone, Bank: bank, AccountID: req.AccountID}

	switch result := s.otps.Verify(r.Context(), key, req.Otp); result {
	case core.VerifySuccess:
		s.verified(w, r, key)
	case core.VerifyExpired:
		s.failed(w, key, "expired")
	default:
		// an absent challenge is indistinguishable from a wrong code
		// for the caller; both read as a code that does not verify
		s.failed(w, key, "wrong")
	}
}

func (s *Server) verified(w http.ResponseWriter, r *http.Request, key core.ChallengeKey) {
	grant, err := s.tokens.Grant(r.Context(), key)
	if err != nil {
		s.logger.Error("tokens.Grant", "err", err)
		renderErr(w, http.StatusInternalServerError, "token grant failed")
		return
	}

	summary := s.accounts.Find(r.Context(), key.Bank, key.Phone, key.AccountID)
	ttl := int(core.TokenTTL.Seconds())

	s.courier.Dispatch(&core.Event{
		Type:  core.EventOtpVerified,
		Phone: key.Phone,
		Bank:  key.Bank,
		Payload: map[string]any{
			"accessToken":    grant.Token,
			"ttl":            ttl,
			"accountId":      key.AccountID,
			"accountSummary": summary,
		},
	})

	render(w, http.StatusOK, map[string]any{
		"success":        true,
		"accessToken":    grant.Token,
		"ttl":            ttl,
		"accountSummary": summary,
	})
}

func (s *Server) failed(w http.ResponseWriter, key core.ChallengeKey, reason string) {
	s.courier.Dispatch(&core.Event{
		Type:  core.EventOtpFailed,
		Phone: key.Phone,
		Bank:  key.Bank,
		Payload: map[string]any{
			"reason":    reason,
			"accountId": key.AccountID,
		},
	})

	render(w, http.StatusOK, map[string]any{
		"success": false,
		"reason":  reason,
	})
}

func (s *Server) searchServices(w http.ResponseWriter, r *http.Request) {
	bank := chi.URLParam(r, "bank")
	query := r.URL.Query().Get("query")

	render(w, http.StatusOK, s.catalog.Search(r.Context(), bank, query))
}

func (s *Server) accountSummary(w http.ResponseWriter, r *http.Request) {
	bank := chi.URLParam(r, "bank")
	accountID := chi.URLParam(r, "accountId")

	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if token == "" {
		renderErr(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	key, ok := s.tokens.Validate(r.Context(), token)
	if !ok || key.Bank != bank || key.AccountID != accountID {
		renderErr(w, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	account := s.accounts.Find(r.Context(), key.Bank, key.Phone, key.AccountID)
	if account == nil {
		renderErr(w, http.StatusNotFound, "account not found")
		return
	}

	render(w, http.StatusOK, account)
}
