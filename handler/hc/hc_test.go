package hc

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/thaongo/openbank-hub/store/directory"
)

func TestHandler(t *testing.T) {
	dir, err := directory.New(directory.Config{})
	if err != nil {
		t.Fatalf("directory.New: %v", err)
	}

	svr := httptest.NewServer(Handler("test", dir))
	defer svr.Close()

	resp, err := http.Get(svr.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var body struct {
		OK         bool     `json:"ok"`
		Banks      []string `json:"banks"`
		TotalUsers int      `json:"totalUsers"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}

	if !body.OK {
		t.Fatal("ok = false")
	}
	if len(body.Banks) == 0 {
		t.Fatal("no banks reported")
	}
	if body.TotalUsers == 0 {
		t.Fatal("totalUsers = 0")
	}
}
