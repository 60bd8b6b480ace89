package services

import (
	"reflect"
	"testing"
)

func TestParseStringList(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		raw     any
		want    []string
		wantErr bool
	}{
		{
			name: "string slice passes through",
			raw:  []string{"a", "b"},
			want: []string{"a", "b"},
		},
		{
			name: "any slice of strings",
			raw:  []any{"a", "b"},
			want: []string{"a", "b"},
		},
		{
			name:    "any slice with non-string",
			raw:     []any{"a", 1},
			wantErr: true,
		},
		{
			name: "json array text",
			raw:  `["soda can recycling", "aluminium carbon footprint"]`,
			want: []string{"soda can recycling", "aluminium carbon footprint"},
		},
		{
			name: "json array inside markdown fence",
			raw:  "```json\n[\"q1\", \"q2\"]\n```",
			want: []string{"q1", "q2"},
		},
		{
			name: "newline separated with bullets",
			raw:  "- first query\n* second query\n• third query",
			want: []string{"first query", "second query", "third query"},
		},
		{
			name: "numbered lines",
			raw:  "1. first\n2) second",
			want: []string{"first", "second"},
		},
		{
			name: "blank lines dropped",
			raw:  "first\n\n   \nsecond\n",
			want: []string{"first", "second"},
		},
		{
			name:    "empty string",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "whitespace-only entries",
			raw:     []string{"  ", ""},
			wantErr: true,
		},
		{
			name:    "unsupported type",
			raw:     42,
			wantErr: true,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseStringList(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestCoerceStringListAllowsEmpty(t *testing.T) {
	t.Parallel()

	for name, raw := range map[string]any{
		"empty any slice":    []any{},
		"empty string slice": []string{},
		"empty json array":   `[]`,
	} {
		raw := raw
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := coerceStringList(raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got == nil || len(got) != 0 {
				t.Fatalf("want empty non-nil list, got %v", got)
			}
		})
	}

	if _, err := coerceStringList(42); err == nil {
		t.Fatal("expected error for unsupported type")
	}
}

func TestStripCodeFence(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := stripCodeFence(tc.in); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}
