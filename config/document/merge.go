package document

// Merge combines base and override into a new Document. Override wins on
// scalar conflicts, sequences are concatenated (base first) and mappings are
// merged recursively. Neither input is modified.
func Merge(base, override Document) Document {
	return Document(mergeMappings(base, override))
}

// MergeAll folds docs from left to right, so later documents take priority.
func MergeAll(docs ...Document) Document {
	result := New()
	for _, doc := range docs {
		result = Merge(result, doc)
	}

	return result
}

func mergeMappings(base, override map[string]any) map[string]any {
	result := make(map[string]any, len(base)+len(override))

	for key, value := range base {
		result[key] = cloneValue(value)
	}

	for key, value := range override {
		// nil means "not set" in a partial layer.
		if value == nil {
			continue
		}

		existing, ok := result[key]
		if !ok {
			result[key] = cloneValue(value)

			continue
		}

		result[key] = mergeValues(existing, value)
	}

	return result
}

// mergeValues merges two values found under the same key. existing is
// already a private copy.
func mergeValues(existing, value any) any {
	if baseMap, ok := AsMapping(existing); ok {
		if overrideMap, ok := AsMapping(value); ok {
			return mergeMappings(baseMap, overrideMap)
		}
	}

	if baseSeq, ok := AsSequence(existing); ok {
		if overrideSeq, ok := AsSequence(value); ok {
			joined := make([]any, 0, len(baseSeq)+len(overrideSeq))
			joined = append(joined, baseSeq...)

			for _, item := range overrideSeq {
				joined = append(joined, cloneValue(item))
			}

			return joined
		}
	}

	return cloneValue(value)
}

// Clone returns a deep copy of d.
func Clone(d Document) Document {
	if d == nil {
		return New()
	}

	out, _ := cloneValue(map[string]any(d)).(map[string]any)

	return Document(out)
}

func cloneValue(v any) any {
	switch typed := v.(type) {
	case Document:
		return cloneValue(map[string]any(typed))
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			out[key] = cloneValue(value)
		}

		return out
	case []any:
		out := make([]any, len(typed))
		for i, value := range typed {
			out[i] = cloneValue(value)
		}

		return out
	case []string:
		seq, _ := AsSequence(typed)

		return seq
	default:
		return v
	}
}
