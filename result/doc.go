// Package result implements the schema-driven binary decode engine for
// query results delivered as schema + row pairs.
//
// The query-execution service describes each column with raw type text in
// the form Arrow emits ("binary", "list<item: binary>",
// "struct<id: utf8, blob: binary>", "fixed_size_binary[16]"), and serializes
// binary cell values as base64 strings inside otherwise ordinary JSON rows.
// This package turns the type text into a TypeNode tree, determines which
// columns carry a binary leaf anywhere in that tree, and rewrites the
// affected cells of every row so that base64 leaves become []byte while
// everything else passes through untouched.
//
// Typical use, once per received result set:
//
//	rows = result.DecodeBinaryColumns(rows, schemaFields)
//
// The engine is a read path that must never fail a whole response: type
// text it does not recognize, payloads that are not valid base64, and rows
// whose shape contradicts their declared type all degrade at the smallest
// possible granularity instead of returning errors. It performs no I/O,
// holds no state between calls, and is safe for concurrent use on
// disjoint inputs.
package result
