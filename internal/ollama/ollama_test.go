package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func tagsServer(t *testing.T, models ...string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			http.NotFound(w, r)
			return
		}
		type entry struct {
			Name string `json:"name"`
		}
		var list []entry
		for _, m := range models {
			list = append(list, entry{Name: m})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"models": list})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestVerifyModel_InstalledModelPasses(t *testing.T) {
	srv := tagsServer(t, "llama3.1:8b", "qwen2.5:3b")
	c := New(srv.URL)
	if err := c.VerifyModel(context.Background(), "llama3.1:8b"); err != nil {
		t.Fatalf("expected verification to pass: %v", err)
	}
}

func TestVerifyModel_MissingModelNamesIt(t *testing.T) {
	srv := tagsServer(t, "qwen2.5:3b")
	c := New(srv.URL)
	err := c.VerifyModel(context.Background(), "llama3.1:8b")
	if err == nil {
		t.Fatalf("expected error for missing model")
	}
	if !strings.Contains(err.Error(), "llama3.1:8b") {
		t.Fatalf("error should name the missing model: %v", err)
	}
}

func TestVerifyModel_DaemonDownFailsFast(t *testing.T) {
	srv := tagsServer(t)
	url := srv.URL
	srv.Close()
	c := New(url)
	if err := c.VerifyModel(context.Background(), "llama3.1:8b"); err == nil {
		t.Fatalf("expected error when daemon is unreachable")
	}
}

func TestListModels_ParsesAndSkipsBlankNames(t *testing.T) {
	srv := tagsServer(t, "llama3.1:8b", " ", "qwen2.5:3b")
	c := New(srv.URL)
	models, err := c.ListModels(context.Background())
	if err != nil {
		t.Fatalf("list models: %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("expected 2 models, got %d: %v", len(models), models)
	}
	if _, ok := models["qwen2.5:3b"]; !ok {
		t.Fatalf("missing model in set: %v", models)
	}
}
