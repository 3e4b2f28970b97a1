package service

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"fitsage/coach-app/internal/domain"
)

// ParsedMessage is the structured result of the weekly response parse.
type ParsedMessage struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ParseWeeklyResponse converts the raw model reply into a subject/body pair.
// Models wrap JSON in code fences and sometimes ignore the format contract
// altogether, so this is a total function: every input produces a usable
// result, and malformed output degrades instead of failing.
func ParseWeeklyResponse(raw string) ParsedMessage {
	text := stripCodeFence(raw)

	var parsed ParsedMessage
	if err := json.Unmarshal([]byte(text), &parsed); err == nil {
		if parsed.Subject == "" {
			parsed.Subject = messageSubjectFallback
		}
		if parsed.Body == "" {
			parsed.Body = text
		}
		return parsed
	}

	// Not JSON. Promote the first line to a subject if it looks like one;
	// otherwise fall back to the fixed placeholder. The body is always the
	// full fence-stripped text.
	return ParsedMessage{
		Subject: subjectFromFirstLine(text),
		Body:    text,
	}
}

// ParseDailyResponse handles the daily plain-text reply: fence stripping and
// trimming only, never a JSON parse.
func ParseDailyResponse(raw string) string {
	return stripCodeFence(raw)
}

// stripCodeFence removes a leading ```json or ``` fence and a trailing ```
// fence, then trims surrounding whitespace.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// subjectFromFirstLine derives a subject from the text's first line when it
// is non-empty and at most 60 characters after stripping leading markdown
// heading markers.
func subjectFromFirstLine(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
	if line == "" || utf8.RuneCountInString(line) > 60 {
		return messageSubjectFallback
	}
	return line
}

// mapParsed converts a parse result into the persistable domain message.
func mapParsed(p ParsedMessage, userID, weekStart, coachName string) *domain.CoachingMessage {
	return &domain.CoachingMessage{
		UserID:    userID,
		WeekStart: weekStart,
		Subject:   p.Subject,
		Body:      p.Body,
		CoachName: coachName,
	}
}
