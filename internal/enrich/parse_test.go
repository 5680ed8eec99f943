package enrich

import (
	"reflect"
	"testing"
)

func TestParseTopics(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []string
		wantErr  bool
	}{
		{
			name:     "bare array",
			content:  `["Kubernetes operators", "OAuth2 PKCE"]`,
			expected: []string{"Kubernetes operators", "OAuth2 PKCE"},
		},
		{
			name:     "fenced json",
			content:  "```json\n[\"Redis eviction\"]\n```",
			expected: []string{"Redis eviction"},
		},
		{
			name:     "fenced without language tag",
			content:  "```\n[\"CQRS\"]\n```",
			expected: []string{"CQRS"},
		},
		{
			name:     "prose around the array",
			content:  `Here are the topics: ["gRPC streaming"] hope that helps`,
			expected: []string{"gRPC streaming"},
		},
		{
			name:     "blank entries dropped",
			content:  `["", "  ", "event sourcing"]`,
			expected: []string{"event sourcing"},
		},
		{
			name:     "empty array",
			content:  `[]`,
			expected: []string{},
		},
		{
			name:    "no array at all",
			content: "I could not find any technical topics.",
			wantErr: true,
		},
		{
			name:    "malformed json",
			content: `["unterminated]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTopics(tt.content)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) == 0 && len(tt.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("parseTopics() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseExplanation(t *testing.T) {
	content := "```json\n" + `{
		"summary": "A pattern for decoupling reads from writes.",
		"key_points": ["separate models", "eventual consistency"],
		"use_case": "High-read systems with complex write logic.",
		"resources": ["Fowler's CQRS article"]
	}` + "\n```"

	exp, err := parseExplanation(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exp.Summary != "A pattern for decoupling reads from writes." {
		t.Errorf("summary mismatch: %q", exp.Summary)
	}
	if len(exp.KeyPoints) != 2 || len(exp.Resources) != 1 {
		t.Errorf("unexpected slices: %+v", exp)
	}
}

func TestParseExplanationMissingSummary(t *testing.T) {
	if _, err := parseExplanation(`{"key_points": ["orphaned"]}`); err == nil {
		t.Fatal("explanation without a summary must be rejected")
	}
	if _, err := parseExplanation("no json here"); err == nil {
		t.Fatal("prose without an object must be rejected")
	}
}

func TestParseActionItems(t *testing.T) {
	content := `{"action_items": [
		{"action": "Ship the migration", "assignee": "Dana", "priority": "high", "deadline": "Friday"},
		{"action": "", "assignee": "nobody", "priority": "low", "deadline": "null"}
	]}`

	items, err := parseActionItems(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("blank actions must be dropped, got %d items", len(items))
	}
	if items[0].Action != "Ship the migration" || items[0].Assignee != "Dana" {
		t.Errorf("unexpected item: %+v", items[0])
	}
}

func TestStripCodeFences(t *testing.T) {
	got := stripCodeFences("```json\n{\"a\":1}\n```")
	if got != `{"a":1}` {
		t.Errorf("stripCodeFences() = %q", got)
	}
}
