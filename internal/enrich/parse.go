package enrich

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var codeFenceRe = regexp.MustCompile("```(?:json)?\n?|\n?```")

// stripCodeFences removes markdown fence wrapping that chat models like to
// add around JSON payloads.
func stripCodeFences(content string) string {
	return strings.TrimSpace(codeFenceRe.ReplaceAllString(content, ""))
}

func extractJSONArray(content string) string {
	start := strings.Index(content, "[")
	if start == -1 {
		return ""
	}
	end := strings.LastIndex(content[start:], "]")
	if end == -1 {
		return ""
	}
	return content[start : start+end+1]
}

func extractJSONObject(content string) string {
	start := strings.Index(content, "{")
	if start == -1 {
		return ""
	}
	end := strings.LastIndex(content[start:], "}")
	if end == -1 {
		return ""
	}
	return content[start : start+end+1]
}

func parseTopics(content string) ([]string, error) {
	jsonStr := extractJSONArray(stripCodeFences(content))
	if jsonStr == "" {
		return nil, fmt.Errorf("no JSON array found in response")
	}

	var topics []string
	if err := json.Unmarshal([]byte(jsonStr), &topics); err != nil {
		return nil, fmt.Errorf("unmarshal topics: %w", err)
	}

	out := topics[:0]
	for _, t := range topics {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out, nil
}

type explanation struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points"`
	UseCase   string   `json:"use_case"`
	Resources []string `json:"resources"`
}

func parseExplanation(content string) (explanation, error) {
	jsonStr := extractJSONObject(stripCodeFences(content))
	if jsonStr == "" {
		return explanation{}, fmt.Errorf("no JSON object found in response")
	}

	var exp explanation
	if err := json.Unmarshal([]byte(jsonStr), &exp); err != nil {
		return explanation{}, fmt.Errorf("unmarshal explanation: %w", err)
	}
	if strings.TrimSpace(exp.Summary) == "" {
		return explanation{}, fmt.Errorf("explanation missing summary")
	}
	return exp, nil
}

type actionItem struct {
	Action   string `json:"action"`
	Assignee string `json:"assignee"`
	Priority string `json:"priority"`
	Deadline string `json:"deadline"`
}

func parseActionItems(content string) ([]actionItem, error) {
	jsonStr := extractJSONObject(stripCodeFences(content))
	if jsonStr == "" {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	var result struct {
		ActionItems []actionItem `json:"action_items"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, fmt.Errorf("unmarshal action items: %w", err)
	}

	out := result.ActionItems[:0]
	for _, a := range result.ActionItems {
		if strings.TrimSpace(a.Action) != "" {
			out = append(out, a)
		}
	}
	return out, nil
}
