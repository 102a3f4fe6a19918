// Package filter provides parsing and SQL encoding of the viewer's search
// filter JSON.
//
// The viewer UI's filter editors and facet dropdowns produce a small JSON
// expression language (comparisons, AND/OR conjunctions, null checks,
// facet membership, substring match). This package parses that JSON into
// strongly-typed expressions and encodes them to a DuckDB WHERE clause.
//
//	f, err := filter.Parse(body)
//	if err != nil {
//	    return err // malformed JSON
//	}
//	where := filter.NewDuckDBEncoder().EncodeFilters(f)
//	if where != "" {
//	    sql += " WHERE " + where
//	}
//
// # Unsupported Expression Handling
//
// The encoder degrades instead of failing:
//   - For AND: unsupported children are skipped, the rest are kept
//   - For OR: one unsupported child drops the entire disjunction
//   - Returns an empty string when nothing can be encoded
//
// Dropping a filter only widens the result set, which is safe for a viewer
// that favors availability over strictness.
package filter
