package directory

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/thaongo/openbank-hub/core"
)

// demo dataset used when no data file is configured
//
//go:embed accounts.json
var demoDataset []byte

type Config struct {
	Path string
}

type document struct {
	Banks map[string]struct {
		Users    map[string][]*core.Account `json:"users"`
		Services []*core.ServiceEntry       `json:"services"`
	} `json:"banks"`
}

// Directory is the read-only account and service-catalog lookup.
// Loaded once at startup, immutable afterwards.
type Directory struct {
	accounts map[string]map[string][]*core.Account
	services map[string][]*core.ServiceEntry
	banks    []string
	users    int
}

func New(cfg Config) (*Directory, error) {
	raw := demoDataset
	if cfg.Path != "" {
		b, err := os.ReadFile(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("read dataset: %w", err)
		}
		raw = b
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	d := &Directory{
		accounts: make(map[string]map[string][]*core.Account),
		services: make(map[string][]*core.ServiceEntry),
	}

	phones := make(map[string]struct{})
	for bank, data := range doc.Banks {
		d.banks = append(d.banks, bank)
		d.services[bank] = data.Services
		d.accounts[bank] = data.Users

		for phone, accounts := range data.Users {
			phones[phone] = struct{}{}
			for _, account := range accounts {
				account.Bank = bank
			}
		}
	}

	sort.Strings(d.banks)
	d.users = len(phones)

	return d, nil
}

func (d *Directory) List(ctx context.Context, bank, phone string) []*core.Account {
	accounts := d.accounts[bank][phone]
	if accounts == nil {
		return []*core.Account{}
	}
	return accounts
}

func (d *Directory) Find(ctx context.Context, bank, phone, accountID string) *core.Account {
	for _, account := range d.accounts[bank][phone] {
		if account.AccountID == accountID {
			return account
		}
	}
	return nil
}

func (d *Directory) Banks(ctx context.Context) []string {
	return d.banks
}

func (d *Directory) TotalUsers(ctx context.Context) int {
	return d.users
}

func (d *Directory) Search(ctx context.Context, bank, query string) []*core.ServiceEntry {
	query = strings.ToLower(query)

	matches := []*core.ServiceEntry{}
	for _, entry := range d.services[bank] {
		if strings.Contains(strings.ToLower(entry.Title), query) {
			matches = append(matches, entry)
		}
	}

	return matches
}
