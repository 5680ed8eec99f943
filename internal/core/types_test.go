package core

import (
	"strings"
	"testing"
)

func TestCardMarkdown(t *testing.T) {
	card := Card{
		Kind:      CardTopic,
		Topic:     "Raft",
		Summary:   "Consensus via an elected leader.",
		KeyPoints: []string{"leader election", "log replication"},
		UseCase:   "Replicated state machines.",
		Resources: []string{"raft.github.io"},
	}

	md := card.Markdown()
	for _, want := range []string{
		"**Raft**",
		"Consensus via an elected leader.",
		"- leader election",
		"- log replication",
		"_Use case:_ Replicated state machines.",
		"- raft.github.io",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "_Assignee:_") {
		t.Error("topic cards must not render action fields")
	}
}

func TestCardMarkdownActionItem(t *testing.T) {
	card := Card{
		Kind:     CardActionItem,
		Topic:    "Ship the migration",
		Summary:  "Ship the migration",
		Assignee: "Dana",
		Priority: "high",
	}

	md := card.Markdown()
	if !strings.Contains(md, "_Assignee:_ Dana") || !strings.Contains(md, "_Priority:_ high") {
		t.Errorf("action metadata missing:\n%s", md)
	}
	if strings.Contains(md, "_Deadline:_") {
		t.Error("empty deadline must not be rendered")
	}
}
