package query

import (
	"bytes"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/dataview-lab/dataview-go/result"
)

// SchemaFields converts an Arrow schema into the wire-level schema field
// list. The type text is the string form of each Arrow data type, which is
// exactly the grammar result.ParseType understands on the consuming side.
func SchemaFields(schema *arrow.Schema) []result.SchemaField {
	fields := make([]result.SchemaField, schema.NumFields())
	for i, f := range schema.Fields() {
		fields[i] = result.SchemaField{Name: f.Name, Type: f.Type.String()}
	}
	return fields
}

// AppendRows converts every row of an Arrow record batch into a keyed Row
// and appends them to rows. Binary cells stay []byte; encoding/json then
// emits them base64-encoded, the wire shape the decode engine expects.
func AppendRows(rows []result.Row, rec arrow.RecordBatch) []result.Row {
	numCols := int(rec.NumCols())
	for i := 0; i < int(rec.NumRows()); i++ {
		row := make(result.Row, numCols)
		for c := 0; c < numCols; c++ {
			row[rec.ColumnName(c)] = columnValue(rec.Column(c), i)
		}
		rows = append(rows, row)
	}
	return rows
}

// columnValue extracts the value at index i as a JSON-shaped Go value.
// Unhandled array kinds fall back to their string rendering.
func columnValue(col arrow.Array, i int) any {
	if col.IsNull(i) {
		return nil
	}

	switch a := col.(type) {
	case *array.Boolean:
		return a.Value(i)
	case *array.Int8:
		return int64(a.Value(i))
	case *array.Int16:
		return int64(a.Value(i))
	case *array.Int32:
		return int64(a.Value(i))
	case *array.Int64:
		return a.Value(i)
	case *array.Uint8:
		return uint64(a.Value(i))
	case *array.Uint16:
		return uint64(a.Value(i))
	case *array.Uint32:
		return uint64(a.Value(i))
	case *array.Uint64:
		return a.Value(i)
	case *array.Float32:
		return float64(a.Value(i))
	case *array.Float64:
		return a.Value(i)
	case *array.String:
		return a.Value(i)
	case *array.LargeString:
		return a.Value(i)
	case *array.Binary:
		return bytes.Clone(a.Value(i))
	case *array.LargeBinary:
		return bytes.Clone(a.Value(i))
	case *array.FixedSizeBinary:
		return bytes.Clone(a.Value(i))
	case *array.List:
		start, end := a.ValueOffsets(i)
		return sliceValues(a.ListValues(), start, end)
	case *array.LargeList:
		start, end := a.ValueOffsets(i)
		return sliceValues(a.ListValues(), start, end)
	case *array.FixedSizeList:
		n := int64(a.DataType().(*arrow.FixedSizeListType).Len())
		start := int64(i) * n
		return sliceValues(a.ListValues(), start, start+n)
	case *array.Struct:
		st := a.DataType().(*arrow.StructType)
		m := make(map[string]any, a.NumField())
		for j := 0; j < a.NumField(); j++ {
			m[st.Field(j).Name] = columnValue(a.Field(j), i)
		}
		return m
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		return a.Value(i).ToTime(unit).Format(time.RFC3339Nano)
	}

	return col.ValueStr(i)
}

func sliceValues(values arrow.Array, start, end int64) []any {
	out := make([]any, 0, end-start)
	for j := start; j < end; j++ {
		out = append(out, columnValue(values, int(j)))
	}
	return out
}
