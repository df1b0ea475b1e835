package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/projectflow-dev/projectflow/pkg/schema"
	sdk "github.com/projectflow-dev/projectflow/sdk"
	client "github.com/projectflow-dev/projectflow/sdk/client"
)

type record struct{ create, replace, reorder, remove bool }

func TestHTTPClient(t *testing.T) {
	rec := &record{}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/forms", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode([]sdk.FormSummary{{ID: "f-1", Title: "T"}})
		case http.MethodPost:
			rec.create = true
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(sdk.FormSummary{ID: "f-new", Title: "Created"})
		}
	})
	mux.HandleFunc("/v1/forms/f-1/schema", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(sdk.FormDetails{ID: "f-1", Title: "T", Fields: []schema.Field{{ID: "a", Type: schema.TypeText}}})
		case http.MethodPut:
			rec.replace = true
			var doc schema.Schema
			if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
				t.Errorf("decode put body: %v", err)
			}
			_ = json.NewEncoder(w).Encode(sdk.FormDetails{ID: "f-1", Title: doc.Title, Fields: doc.Fields})
		}
	})
	mux.HandleFunc("/v1/forms/f-1/fields/reorder", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method != http.MethodPatch {
			t.Errorf("reorder method = %s", r.Method)
		}
		rec.reorder = true
		var body struct {
			Order []string `json:"order"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Order) != 2 {
			t.Errorf("reorder body: %v %v", body, err)
		}
		_ = json.NewEncoder(w).Encode([]schema.Field{{ID: body.Order[0]}, {ID: body.Order[1]}})
	})
	mux.HandleFunc("/v1/forms/f-1/fields/a", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			rec.remove = true
			w.WriteHeader(http.StatusNoContent)
		}
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := client.NewHTTP(srv.URL)
	if c.Mode() != "http" {
		t.Fatalf("mode %s", c.Mode())
	}
	ctx := context.Background()

	forms, err := c.ListForms(ctx)
	if err != nil || len(forms) != 1 || forms[0].ID != "f-1" {
		t.Fatalf("list: %v %v", forms, err)
	}
	if _, err := c.CreateForm(ctx, "Created", ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	details, err := c.GetSchema(ctx, "f-1")
	if err != nil || len(details.Fields) != 1 {
		t.Fatalf("get schema: %v %v", details, err)
	}
	if _, err := c.ReplaceSchema(ctx, "f-1", schema.Schema{Title: "New"}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if _, err := c.ReorderFields(ctx, "f-1", []string{"b", "a"}); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	if err := c.RemoveField(ctx, "f-1", "a"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !rec.create || !rec.replace || !rec.reorder || !rec.remove {
		t.Fatalf("handlers not hit: %#v", rec)
	}
}

func TestHTTPClientNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"title":"Not Found","detail":"form not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := client.NewHTTP(srv.URL)
	_, err := c.GetSchema(context.Background(), "ghost")
	if !errors.Is(err, client.ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestHTTPClientErrorDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"title":"Bad Request","detail":"order does not match existing field ids"}`))
	}))
	defer srv.Close()

	c := client.NewHTTP(srv.URL)
	_, err := c.ReorderFields(context.Background(), "f-1", []string{"a"})
	if err == nil {
		t.Fatal("error response swallowed")
	}
	if got := err.Error(); !strings.Contains(got, "order does not match") {
		t.Fatalf("err = %q", got)
	}
}

func TestHTTPClientSendsToken(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]sdk.FormSummary{})
	}))
	defer srv.Close()

	c := client.NewHTTP(srv.URL, client.WithToken("secret"))
	if _, err := c.ListForms(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}
	if auth != "Bearer secret" {
		t.Fatalf("authorization = %q", auth)
	}
}
