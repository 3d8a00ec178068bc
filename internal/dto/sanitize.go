package dto

import "encoding/json"

// Sanitize renders a response DTO into a plain JSON object, optionally
// restricted to an allowlist of top-level keys. It is a pure function of its
// input: sanitizing twice yields identical output. Secret fields never reach
// this layer because the DTO types exclude them.
func Sanitize(v any, allowlist ...string) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if len(allowlist) == 0 {
		return out, nil
	}
	allowed := make(map[string]struct{}, len(allowlist))
	for _, k := range allowlist {
		allowed[k] = struct{}{}
	}
	for k := range out {
		if _, ok := allowed[k]; !ok {
			delete(out, k)
		}
	}
	return out, nil
}

// SanitizeList applies Sanitize to each element.
func SanitizeList[T any](vs []T, allowlist ...string) ([]map[string]any, error) {
	out := make([]map[string]any, len(vs))
	for i := range vs {
		m, err := Sanitize(vs[i], allowlist...)
		if err != nil {
			return nil, err
		}
		out[i] = m
	}
	return out, nil
}
