package result

import "encoding/base64"

// Decode walks a JSON-shaped value according to node and returns the
// decoded value: base64 strings at binary leaves become []byte, and
// everything else passes through untouched.
//
// Decode never fails and never mutates value. Structural mismatches
// between the declared type and the actual shape (a struct type over an
// array value, a list type over a scalar) return the value unchanged at
// that subtree, as does a string that is not valid base64. Composite
// values allocate new containers only below binary-bearing nodes.
func Decode(value any, node TypeNode) any {
	if value == nil || node == nil || !node.HasBinary() {
		return value
	}

	switch t := node.(type) {
	case BinaryType:
		s, ok := value.(string)
		if !ok {
			// Already byte-shaped (or some other mismatch): keep as is.
			return value
		}
		raw, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return value
		}
		return raw

	case *ListType:
		seq, ok := value.([]any)
		if !ok {
			return value
		}
		out := make([]any, len(seq))
		for i, elem := range seq {
			out[i] = Decode(elem, t.Item)
		}
		return out

	case *StructType:
		m, ok := value.(map[string]any)
		if !ok {
			return value
		}
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[k] = v
		}
		for _, f := range t.Fields {
			if v, present := m[f.Name]; present {
				out[f.Name] = Decode(v, f.Type)
			}
		}
		return out
	}

	return value
}
