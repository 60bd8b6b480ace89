package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ParseStringList coerces a model answer into a non-empty list of strings.
// Fallback order:
//
//  1. already a []string or []any of strings: accept as-is
//  2. string: parse as a JSON array (markdown fences stripped first)
//  3. string: split on newlines, trim whitespace and list markers, drop
//     blank lines
//
// An empty result after coercion is an error; the callers of this form
// require at least one entry to proceed. coerceStringList is the permissive
// variant for fields where an empty list is a valid answer.
func ParseStringList(raw any) ([]string, error) {
	list, err := coerceStringList(raw)
	if err != nil {
		return nil, err
	}
	return requireNonEmpty(list)
}

func coerceStringList(raw any) ([]string, error) {
	switch v := raw.(type) {
	case []string:
		return compactStrings(v), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("list contains non-string element %T", item)
			}
			out = append(out, s)
		}
		return compactStrings(out), nil
	case string:
		return coerceStringListText(v), nil
	default:
		return nil, fmt.Errorf("cannot coerce %T into a string list", raw)
	}
}

func coerceStringListText(text string) []string {
	cleaned := stripCodeFence(text)

	var arr []string
	if err := json.Unmarshal([]byte(cleaned), &arr); err == nil {
		return compactStrings(arr)
	}

	lines := make([]string, 0)
	for _, line := range strings.Split(cleaned, "\n") {
		line = trimListMarker(strings.TrimSpace(line))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// trimListMarker drops leading bullets and "1." / "1)" numbering the model
// sometimes emits instead of a JSON array.
func trimListMarker(line string) string {
	line = strings.TrimLeft(line, "-*• \t")
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i < len(line) && (line[i] == '.' || line[i] == ')') {
		line = strings.TrimSpace(line[i+1:])
	}
	return strings.TrimSpace(line)
}

func compactStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func requireNonEmpty(list []string) ([]string, error) {
	if len(list) == 0 {
		return nil, errors.New("empty string list")
	}
	return list, nil
}
