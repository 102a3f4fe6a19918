package result

// TypeNode is the parsed representation of one column's declared type text.
// It is a closed set of variants: BinaryType, ListType, StructType, and
// OtherType. Consumers switch over the concrete type and must handle all four.
//
// Nodes are immutable after construction and live only for the duration of
// one decode pass; ParseType rebuilds them for every schema delivery.
type TypeNode interface {
	// HasBinary reports whether the type contains a binary leaf at any
	// nesting depth. It is derived when the node is constructed, never
	// computed lazily.
	HasBinary() bool

	// typeNodeMarker is a marker method to keep the variant set closed.
	typeNodeMarker()
}

// BinaryType is a terminal binary leaf (binary, large_binary, or
// fixed_size_binary[N]). Values of this type arrive as base64 strings.
type BinaryType struct{}

func (BinaryType) HasBinary() bool { return true }
func (BinaryType) typeNodeMarker() {}

// OtherType is the terminal catch-all for every non-binary scalar
// (strings, booleans, numbers, dates, timestamps, decimals) and for any
// type text the parser does not recognize.
type OtherType struct{}

func (OtherType) HasBinary() bool { return false }
func (OtherType) typeNodeMarker() {}

// ListType represents list<...>, large_list<...>, and fixed_size_list<...>.
type ListType struct {
	// Item is the element type. Never nil.
	Item TypeNode

	hasBinary bool
}

// NewListType creates a ListType, deriving HasBinary from the item type.
func NewListType(item TypeNode) *ListType {
	return &ListType{Item: item, hasBinary: item.HasBinary()}
}

func (t *ListType) HasBinary() bool { return t.hasBinary }
func (t *ListType) typeNodeMarker() {}

// StructField is one named field of a StructType. Field order follows
// encounter order in the type text.
type StructField struct {
	Name string
	Type TypeNode
}

// StructType represents struct<name: type, ...>.
type StructType struct {
	Fields []StructField

	hasBinary bool
}

// NewStructType creates a StructType, deriving HasBinary as the OR over
// all field types.
func NewStructType(fields []StructField) *StructType {
	t := &StructType{Fields: fields}
	for _, f := range fields {
		if f.Type.HasBinary() {
			t.hasBinary = true
			break
		}
	}
	return t
}

func (t *StructType) HasBinary() bool { return t.hasBinary }
func (t *StructType) typeNodeMarker() {}

// Field returns the type of the named field, or nil if the struct has no
// such field.
func (t *StructType) Field(name string) TypeNode {
	for _, f := range t.Fields {
		if f.Name == name {
			return f.Type
		}
	}
	return nil
}
