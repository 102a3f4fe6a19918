package result

import "testing"

func TestParseTypeBinaryForms(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "binary", text: "binary"},
		{name: "large binary", text: "large_binary"},
		{name: "fixed size binary", text: "fixed_size_binary[16]"},
		{name: "fixed size binary single digit", text: "fixed_size_binary[4]"},
		{name: "upper case", text: "BINARY"},
		{name: "mixed case fixed", text: "Fixed_Size_Binary[32]"},
		{name: "not null suffix", text: "fixed_size_binary[16] not null"},
		{name: "not null suffix upper", text: "binary NOT NULL"},
		{name: "surrounding whitespace", text: "  binary  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := ParseType(tt.text)
			if _, ok := node.(BinaryType); !ok {
				t.Fatalf("ParseType(%q) = %T, want BinaryType", tt.text, node)
			}
			if !node.HasBinary() {
				t.Errorf("ParseType(%q).HasBinary() = false, want true", tt.text)
			}
		})
	}
}

func TestParseTypeOtherForms(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "utf8", text: "utf8"},
		{name: "int64", text: "int64"},
		{name: "bool", text: "bool"},
		{name: "decimal", text: "decimal(18, 3)"},
		{name: "timestamp", text: "timestamp[us, tz=UTC]"},
		{name: "empty", text: ""},
		{name: "whitespace only", text: "   "},
		{name: "fixed size binary without size", text: "fixed_size_binary[]"},
		{name: "fixed size binary garbage size", text: "fixed_size_binary[x]"},
		{name: "binary prefix only", text: "binaryish"},
		{name: "unclosed list", text: "list<item: binary"},
		{name: "inverted delimiters", text: "struct>a: binary<"},
		{name: "unknown type", text: "geometry"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := ParseType(tt.text)
			if _, ok := node.(OtherType); !ok {
				t.Fatalf("ParseType(%q) = %T, want OtherType", tt.text, node)
			}
			if node.HasBinary() {
				t.Errorf("ParseType(%q).HasBinary() = true, want false", tt.text)
			}
		})
	}
}

func TestParseTypeListForms(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantBinary bool
	}{
		{name: "binary items", text: "list<item: binary>", wantBinary: true},
		{name: "string items", text: "list<item: string>", wantBinary: false},
		{name: "unlabeled items", text: "list<binary>", wantBinary: true},
		{name: "large list", text: "large_list<item: large_binary>", wantBinary: true},
		{name: "fixed size list", text: "fixed_size_list<item: binary>[4]", wantBinary: true},
		{name: "nested lists", text: "list<item: list<item: binary>>", wantBinary: true},
		{name: "nested non-binary", text: "list<item: list<item: int32>>", wantBinary: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := ParseType(tt.text)
			list, ok := node.(*ListType)
			if !ok {
				t.Fatalf("ParseType(%q) = %T, want *ListType", tt.text, node)
			}
			if list.HasBinary() != tt.wantBinary {
				t.Errorf("HasBinary() = %v, want %v", list.HasBinary(), tt.wantBinary)
			}
		})
	}
}

func TestParseTypeStruct(t *testing.T) {
	node := ParseType("struct<a: string, b: binary>")
	st, ok := node.(*StructType)
	if !ok {
		t.Fatalf("ParseType = %T, want *StructType", node)
	}
	if !st.HasBinary() {
		t.Error("HasBinary() = false, want true")
	}
	if len(st.Fields) != 2 {
		t.Fatalf("len(Fields) = %d, want 2", len(st.Fields))
	}
	if st.Fields[0].Name != "a" || st.Fields[1].Name != "b" {
		t.Errorf("field names = %q, %q, want a, b", st.Fields[0].Name, st.Fields[1].Name)
	}
	if _, ok := st.Fields[0].Type.(OtherType); !ok {
		t.Errorf("field a type = %T, want OtherType", st.Fields[0].Type)
	}
	if _, ok := st.Fields[1].Type.(BinaryType); !ok {
		t.Errorf("field b type = %T, want BinaryType", st.Fields[1].Type)
	}
}

func TestParseTypeStructNestedCommas(t *testing.T) {
	// Commas inside the nested list must not split a's field spec.
	node := ParseType("struct<a: list<x: string, y: string>, b: binary>")
	st, ok := node.(*StructType)
	if !ok {
		t.Fatalf("ParseType = %T, want *StructType", node)
	}
	if len(st.Fields) != 2 {
		t.Fatalf("len(Fields) = %d, want 2", len(st.Fields))
	}
	if st.Fields[0].Name != "a" || st.Fields[1].Name != "b" {
		t.Errorf("field names = %q, %q, want a, b", st.Fields[0].Name, st.Fields[1].Name)
	}
	if !st.HasBinary() {
		t.Error("HasBinary() = false, want true")
	}
}

func TestParseTypeStructEdgeCases(t *testing.T) {
	t.Run("duplicate field last wins", func(t *testing.T) {
		st, ok := ParseType("struct<a: string, a: binary>").(*StructType)
		if !ok {
			t.Fatal("want *StructType")
		}
		if len(st.Fields) != 1 {
			t.Fatalf("len(Fields) = %d, want 1", len(st.Fields))
		}
		if _, isBinary := st.Fields[0].Type.(BinaryType); !isBinary {
			t.Errorf("field a type = %T, want BinaryType (last occurrence)", st.Fields[0].Type)
		}
	})

	t.Run("field without colon skipped", func(t *testing.T) {
		st, ok := ParseType("struct<noType, b: binary>").(*StructType)
		if !ok {
			t.Fatal("want *StructType")
		}
		if len(st.Fields) != 1 || st.Fields[0].Name != "b" {
			t.Fatalf("Fields = %+v, want single field b", st.Fields)
		}
	})

	t.Run("empty struct", func(t *testing.T) {
		st, ok := ParseType("struct<>").(*StructType)
		if !ok {
			t.Fatal("want *StructType")
		}
		if len(st.Fields) != 0 {
			t.Fatalf("len(Fields) = %d, want 0", len(st.Fields))
		}
		if st.HasBinary() {
			t.Error("HasBinary() = true, want false")
		}
	})

	t.Run("deeply nested struct field", func(t *testing.T) {
		node := ParseType("struct<outer: struct<inner: list<item: binary>>>")
		st, ok := node.(*StructType)
		if !ok {
			t.Fatalf("ParseType = %T, want *StructType", node)
		}
		if !st.HasBinary() {
			t.Error("HasBinary() = false, want true")
		}
		inner, ok := st.Field("outer").(*StructType)
		if !ok {
			t.Fatalf("outer = %T, want *StructType", st.Field("outer"))
		}
		if _, ok := inner.Field("inner").(*ListType); !ok {
			t.Errorf("inner = %T, want *ListType", inner.Field("inner"))
		}
	})
}

func TestParseTypeDepthLimit(t *testing.T) {
	text := "binary"
	for i := 0; i < maxTypeDepth+8; i++ {
		text = "list<item: " + text + ">"
	}
	node := ParseType(text)
	// Outermost levels still parse as lists; past the bound the tree
	// bottoms out at Other, so no binary leaf survives.
	if node.HasBinary() {
		t.Error("HasBinary() = true, want false for over-deep nesting")
	}
}
