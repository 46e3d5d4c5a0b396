package enact

// Document is the unordered key value collection enactables consume as
// input and produce as output. Values are expected to be JSON
// compatible; the contract itself does not interpret them.
type Document map[string]any

// Clone returns a deep copy of doc. Nested documents, maps and slices
// are copied, other values are shared.
func (doc Document) Clone() Document {
	if doc == nil {
		return nil
	}

	cloned := make(Document, len(doc))
	for k, v := range doc {
		cloned[k] = cloneValue(v)
	}

	return cloned
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case Document:
		return v.Clone()
	case map[string]any:
		m := make(map[string]any, len(v))
		for k, e := range v {
			m[k] = cloneValue(e)
		}
		return m
	case []any:
		s := make([]any, len(v))
		for i := range v {
			s[i] = cloneValue(v[i])
		}
		return s
	default:
		return v
	}
}
