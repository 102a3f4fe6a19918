package result

// SchemaField describes one column of a query result as delivered by the
// query-execution service: a name and the raw type text.
type SchemaField struct {
	Name string `json:"name" msgpack:"name"`
	Type string `json:"type" msgpack:"type"`
}

// ParsedField pairs a column name with its parsed type.
type ParsedField struct {
	Name string
	Type TypeNode
}

// Row is one JSON-shaped record keyed by column name. Rows handed to the
// pipeline are never mutated; decoding produces new rows.
type Row = map[string]any

// BinaryFields parses every schema field's type text and returns the
// binary-bearing columns in schema order. Columns whose type contains no
// binary leaf are dropped.
func BinaryFields(fields []SchemaField) []ParsedField {
	var parsed []ParsedField
	for _, f := range fields {
		if node := ParseType(f.Type); node.HasBinary() {
			parsed = append(parsed, ParsedField{Name: f.Name, Type: node})
		}
	}
	return parsed
}

// DecodeBinaryColumns decodes the base64 binary leaves of every
// binary-bearing column across all rows, returning a new row slice of the
// same length and order. Rows are shallow-copied; only binary-bearing
// columns present in a row are replaced.
//
// When no schema field is binary-bearing the input slice is returned
// unchanged by reference, so schemas without binary columns never pay a
// per-row allocation. No anomaly in the schema or rows is ever reported
// as an error; decoding degrades per field per row.
func DecodeBinaryColumns(rows []Row, fields []SchemaField) []Row {
	parsed := BinaryFields(fields)
	if len(parsed) == 0 {
		return rows
	}

	out := make([]Row, len(rows))
	for i, row := range rows {
		next := make(Row, len(row))
		for k, v := range row {
			next[k] = v
		}
		for _, pf := range parsed {
			if v, present := row[pf.Name]; present {
				next[pf.Name] = Decode(v, pf.Type)
			}
		}
		out[i] = next
	}
	return out
}
