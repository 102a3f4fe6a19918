// Package dataview provides an HTTP service and client for browsing
// datasets through an embedded DuckDB.
//
// A server registers one dataset file (CSV, JSONL, or Parquet) as a view,
// serves filtered searches over it, and returns JSON rows together with
// the Arrow type text of every column. Binary columns travel as base64
// strings; clients recover the raw bytes with the result package's
// schema-driven decoder.
//
// # Quick Start
//
// Serve a dataset:
//
//	srv, err := dataview.NewServer(ctx, dataview.ServerConfig{
//	    View: dataview.ViewConfig{DatasetPath: "data/events.parquet"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer srv.Close()
//	srv.Run()
//
// Query it and decode the binary columns:
//
//	c := client.New("http://localhost:8000")
//	resp, err := c.Search(ctx, client.SearchRequest{Limit: 10})
//
// The client decodes base64 binary columns automatically; resp.Rows hold
// []byte values wherever the schema declares binary data, at any nesting
// depth.
//
// # Architecture
//
//   - result: the type-text grammar and the recursive binary decoder
//   - query: DuckDB execution and Arrow-to-JSON row conversion
//   - filter: structured filter expressions and their SQL encoding
//   - client: REST client that applies the decoder to responses
//   - flightsource: Arrow Flight access to remote datasets
//   - bookmark: named filter sets with portable export/import
//
// # Authentication
//
// Bearer token authentication is supported via the BearerAuth helper:
//
//	a := dataview.BearerAuth(func(token string) (string, error) {
//	    if token == "secret-api-key" {
//	        return "user1", nil
//	    }
//	    return "", dataview.ErrUnauthorized
//	})
//
//	dataview.NewServer(ctx, dataview.ServerConfig{View: view, Auth: a})
//
// # Logging
//
// The package logs through log/slog. Pass a configured Logger in
// ServerConfig, or set LogLevel to get a stderr text handler at that
// level; otherwise slog.Default() is used.
//
// # Context Cancellation
//
// Queries run under the request context and stop when clients
// disconnect. NewServer takes a context for dataset registration only.
package dataview
