package enrich

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/sidenote/internal/core"
)

// Keyword heuristics used when no API key is configured: enrichment still
// yields something visible instead of failing the session.
var demoTemplates = []struct {
	keyword  string
	action   string
	priority string
}{
	{"follow up", "Follow up on discussed items", "medium"},
	{"schedule", "Schedule meeting or appointment", "high"},
	{"review", "Review and provide feedback", "medium"},
	{"update", "Update documentation or status", "low"},
	{"complete", "Complete assigned task", "high"},
	{"coordinate", "Coordinate with team members", "medium"},
}

var demoAssignees = []string{"John", "Sarah", "Mike", "Lisa", "David", "Anna", "Tom", "Jennifer"}

// demoCards produces at most one heuristic action-item card per batch.
func demoCards(batch string) []core.Card {
	lower := strings.ToLower(batch)
	for _, tpl := range demoTemplates {
		if !strings.Contains(lower, tpl.keyword) {
			continue
		}
		return []core.Card{{
			ID:        uuid.NewString(),
			Kind:      core.CardActionItem,
			Topic:     tpl.action,
			CreatedAt: time.Now(),
			Summary:   tpl.action,
			Assignee:  demoAssignee(batch),
			Priority:  tpl.priority,
		}}
	}
	return nil
}

func demoAssignee(batch string) string {
	for _, name := range demoAssignees {
		if strings.Contains(batch, name) {
			return name
		}
	}
	return ""
}
