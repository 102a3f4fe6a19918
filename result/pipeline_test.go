package result

import (
	"bytes"
	"reflect"
	"testing"
)

func TestBinaryFields(t *testing.T) {
	fields := []SchemaField{
		{Name: "id", Type: "int64"},
		{Name: "img", Type: "binary"},
		{Name: "name", Type: "utf8"},
		{Name: "thumbs", Type: "list<item: binary>"},
	}

	parsed := BinaryFields(fields)
	if len(parsed) != 2 {
		t.Fatalf("len = %d, want 2", len(parsed))
	}
	// Schema order preserved.
	if parsed[0].Name != "img" || parsed[1].Name != "thumbs" {
		t.Errorf("names = %q, %q, want img, thumbs", parsed[0].Name, parsed[1].Name)
	}
}

func TestDecodeBinaryColumnsFastPath(t *testing.T) {
	rows := []Row{{"id": float64(1)}, {"id": float64(2)}}
	fields := []SchemaField{{Name: "id", Type: "int64"}, {Name: "name", Type: "utf8"}}

	got := DecodeBinaryColumns(rows, fields)
	if reflect.ValueOf(got).Pointer() != reflect.ValueOf(rows).Pointer() {
		t.Error("schema without binary columns must return the input slice by reference")
	}
}

func TestDecodeBinaryColumns(t *testing.T) {
	fields := []SchemaField{{Name: "img", Type: "binary"}}
	rows := []Row{
		{"img": b64("hi"), "id": float64(1)},
		{"img": "not-base64-$$"},
		{"other": "no img column"},
		{"img": nil},
	}

	got := DecodeBinaryColumns(rows, fields)
	if len(got) != len(rows) {
		t.Fatalf("len = %d, want %d", len(got), len(rows))
	}
	if !bytes.Equal(got[0]["img"].([]byte), []byte("hi")) {
		t.Errorf("row 0 img = %v, want bytes for hi", got[0]["img"])
	}
	if got[0]["id"] != float64(1) {
		t.Errorf("row 0 id = %v, want untouched", got[0]["id"])
	}
	if got[1]["img"] != "not-base64-$$" {
		t.Errorf("row 1 img = %v, want original string", got[1]["img"])
	}
	if got[2]["other"] != "no img column" {
		t.Errorf("row 2 = %v, want untouched", got[2])
	}
	if got[3]["img"] != nil {
		t.Errorf("row 3 img = %v, want nil", got[3]["img"])
	}

	// Inputs must not be mutated.
	if _, still := rows[0]["img"].(string); !still {
		t.Error("input row was mutated")
	}
}

func TestDecodeBinaryColumnsListColumn(t *testing.T) {
	fields := []SchemaField{{Name: "imgs", Type: "list<item: binary>"}}
	rows := []Row{{"imgs": []any{b64("a"), b64("b")}}}

	got := DecodeBinaryColumns(rows, fields)
	imgs := got[0]["imgs"].([]any)
	if len(imgs) != 2 {
		t.Fatalf("len(imgs) = %d, want 2", len(imgs))
	}
	if !bytes.Equal(imgs[0].([]byte), []byte("a")) || !bytes.Equal(imgs[1].([]byte), []byte("b")) {
		t.Errorf("imgs = %v, want [a b] in order", imgs)
	}
}

func TestDecodeBinaryColumnsStructColumn(t *testing.T) {
	fields := []SchemaField{{Name: "rec", Type: "struct<id: string, blob: binary>"}}
	rows := []Row{{"rec": map[string]any{"id": "x", "blob": b64("z")}}}

	got := DecodeBinaryColumns(rows, fields)
	rec := got[0]["rec"].(map[string]any)
	if rec["id"] != "x" {
		t.Errorf("rec.id = %v, want unchanged", rec["id"])
	}
	if !bytes.Equal(rec["blob"].([]byte), []byte("z")) {
		t.Errorf("rec.blob = %v, want bytes for z", rec["blob"])
	}
}

func TestDecodeBinaryColumnsIdempotent(t *testing.T) {
	fields := []SchemaField{{Name: "img", Type: "binary"}}
	rows := []Row{{"img": b64("hi")}}

	once := DecodeBinaryColumns(rows, fields)
	twice := DecodeBinaryColumns(once, fields)
	if !bytes.Equal(twice[0]["img"].([]byte), []byte("hi")) {
		t.Errorf("second pass img = %v, want bytes for hi", twice[0]["img"])
	}
}
