package enrich

import "fmt"

const topicSystemPrompt = "You are a meeting analysis system. Output only valid JSON."

func buildTopicsPrompt(batch string) string {
	return fmt.Sprintf(
		`Extract 1-3 salient topics from this meeting transcript snippet. Return ONLY a JSON array of short strings. Use the verbatim terms from the transcript; no generic words like "meeting", "discussion" or "team". Transcript: %q`,
		batch,
	)
}

func buildExplainPrompt(topic string) string {
	return fmt.Sprintf(
		`Produce a contextual explanation card for the term %q as it would come up in a work meeting. Return ONLY valid JSON in this exact format:

{
  "summary": "2-3 sentence explanation",
  "key_points": ["short point", "short point", "short point"],
  "use_case": "one concrete use case",
  "resources": ["specific resource", "specific resource"]
}`,
		topic,
	)
}

func buildAnswerPrompt(question, context string) string {
	if context == "" {
		return fmt.Sprintf("Answer this question concisely: %s", question)
	}
	return fmt.Sprintf(
		`Answer the question below. If the meeting transcript is relevant, answer from the transcript; otherwise answer generally.

Transcript:
%s

Question: %s`,
		context, question,
	)
}

func buildActionsPrompt(batch string) string {
	return fmt.Sprintf(
		`Extract action items from this meeting transcript. Return ONLY valid JSON in this exact format:

{
  "action_items": [
    {
      "action": "Brief description of the action item",
      "assignee": "Person responsible (if mentioned, otherwise null)",
      "priority": "high/medium/low",
      "deadline": "extracted deadline (if mentioned, otherwise null)"
    }
  ]
}

If no action items are found, return: {"action_items": []}

Meeting transcript: %q`,
		batch,
	)
}
