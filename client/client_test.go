package client

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func TestSearchDecodesBinaryColumns(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/search" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")

		var req SearchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"schema": []map[string]string{
				{"name": "id", "type": "int64"},
				{"name": "img", "type": "binary"},
				{"name": "rec", "type": "struct<label: utf8, blob: binary>"},
			},
			"rows": []map[string]any{
				{"id": 1, "img": b64("hi"), "rec": map[string]any{"label": "x", "blob": b64("z")}},
				{"id": 2, "img": "not-base64-$$", "rec": nil},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("secret"))
	resp, err := c.Search(t.Context(), SearchRequest{Limit: 10})
	if err != nil {
		t.Fatal(err)
	}

	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	if len(resp.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(resp.Rows))
	}
	if !bytes.Equal(resp.Rows[0]["img"].([]byte), []byte("hi")) {
		t.Errorf("img = %v, want decoded bytes", resp.Rows[0]["img"])
	}
	rec := resp.Rows[0]["rec"].(map[string]any)
	if rec["label"] != "x" || !bytes.Equal(rec["blob"].([]byte), []byte("z")) {
		t.Errorf("rec = %v", rec)
	}
	if resp.Rows[1]["img"] != "not-base64-$$" {
		t.Errorf("invalid base64 = %v, want original string", resp.Rows[1]["img"])
	}
	if resp.Rows[1]["rec"] != nil {
		t.Errorf("nil struct = %v, want nil", resp.Rows[1]["rec"])
	}
}

func TestSearchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "bad filter"})
	}))
	defer srv.Close()

	_, err := New(srv.URL).Search(t.Context(), SearchRequest{})
	if err == nil {
		t.Fatal("want error")
	}
	if got := err.Error(); !bytes.Contains([]byte(got), []byte("bad filter")) {
		t.Errorf("error = %q, want service message included", got)
	}
}

func TestSchema(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/schema" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"schema": []map[string]string{{"name": "id", "type": "int64"}},
		})
	}))
	defer srv.Close()

	fields, err := New(srv.URL).Schema(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	if len(fields) != 1 || fields[0].Name != "id" {
		t.Errorf("fields = %+v", fields)
	}
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"dataset_path": "data.parquet"})
	}))
	defer srv.Close()

	cfg, err := New(srv.URL).Ping(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	if cfg["dataset_path"] != "data.parquet" {
		t.Errorf("cfg = %v", cfg)
	}
}
