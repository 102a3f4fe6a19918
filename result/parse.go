package result

import (
	"regexp"
	"strings"
)

// maxTypeDepth bounds recursion over the type grammar. Schema text comes
// from an external service and may nest list<list<...>> arbitrarily;
// anything deeper degrades to OtherType.
const maxTypeDepth = 32

var fixedSizeBinaryPattern = regexp.MustCompile(`^fixed_size_binary\[[0-9]+\]$`)

// listPrefixes are the list type forms, matched case-insensitively.
var listPrefixes = []string{"list<", "large_list<", "fixed_size_list<"}

// ParseType parses a column's raw type text (the string form Arrow emits,
// e.g. "int64", "binary", "list<item: binary>", "struct<a: utf8, b: binary>")
// into a TypeNode.
//
// ParseType is total: it never fails. Unrecognized or malformed input
// degrades to OtherType, which disables binary decoding for that subtree.
// A trailing case-insensitive " not null" suffix is stripped; nullability
// is otherwise not modeled.
func ParseType(typeText string) TypeNode {
	return parseType(typeText, 0)
}

func parseType(text string, depth int) TypeNode {
	if depth > maxTypeDepth {
		return OtherType{}
	}

	text = strings.TrimSpace(text)
	lower := strings.ToLower(text)
	if suffix := " not null"; strings.HasSuffix(lower, suffix) {
		text = strings.TrimSpace(text[:len(text)-len(suffix)])
		lower = strings.ToLower(text)
	}

	switch {
	case lower == "binary" || lower == "large_binary" || fixedSizeBinaryPattern.MatchString(lower):
		return BinaryType{}
	case hasListPrefix(lower):
		return parseList(text, depth)
	case strings.HasPrefix(lower, "struct<"):
		return parseStruct(text, depth)
	}
	return OtherType{}
}

func hasListPrefix(lower string) bool {
	for _, p := range listPrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

// innerAngle returns the substring strictly between the first '<' and the
// last '>'. Absent or inverted delimiters report ok=false.
func innerAngle(text string) (inner string, ok bool) {
	open := strings.Index(text, "<")
	close := strings.LastIndex(text, ">")
	if open < 0 || close < 0 || close < open {
		return "", false
	}
	return text[open+1 : close], true
}

func parseList(text string, depth int) TypeNode {
	inner, ok := innerAngle(text)
	if !ok {
		return OtherType{}
	}
	// Arrow labels the element, e.g. "item: binary". Only the text after
	// the first colon is the item type.
	if i := strings.Index(inner, ":"); i >= 0 {
		inner = inner[i+1:]
	}
	return NewListType(parseType(inner, depth+1))
}

func parseStruct(text string, depth int) TypeNode {
	inner, ok := innerAngle(text)
	if !ok {
		return OtherType{}
	}

	var fields []StructField
	index := make(map[string]int)
	for _, spec := range splitTopLevel(inner) {
		colon := strings.Index(spec, ":")
		if colon < 0 {
			continue
		}
		name := strings.TrimSpace(spec[:colon])
		fieldType := parseType(spec[colon+1:], depth+1)
		if at, seen := index[name]; seen {
			// Duplicate field name: last occurrence wins.
			fields[at].Type = fieldType
			continue
		}
		index[name] = len(fields)
		fields = append(fields, StructField{Name: name, Type: fieldType})
	}
	return NewStructType(fields)
}

// splitTopLevel splits struct field specifications at commas, tracking
// angle-bracket depth so commas inside nested list<...> or struct<...>
// do not act as separators.
func splitTopLevel(text string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range text {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, text[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, text[start:])
}
