package models

import (
	"regexp"
	"strings"
)

// FallbackStatusLabel is assigned to new posts when no workflow status is configured.
const FallbackStatusLabel = "Roteiro"

// IdeaStatusLabel marks posts created from AI suggestions.
const IdeaStatusLabel = "Ideia"

// WorkflowStatus is a user configurable pipeline stage. Terminal, when set,
// overrides the label heuristic used by IsCompletedLabel.
type WorkflowStatus struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	ColorClass string `json:"colorClass"`
	Terminal   *bool  `json:"terminal,omitempty"`
}

// IsComplete reports whether posts in this status count as delivered.
func (s WorkflowStatus) IsComplete() bool {
	if s.Terminal != nil {
		return *s.Terminal
	}
	return IsCompletedLabel(s.Label)
}

// completedTokens are matched as substrings of the lowercased label.
var completedTokens = []string{"publicado", "postado", "agendado", "concluído", "concluido"}

// IsCompletedLabel classifies a status label as complete by substring match.
// "Aprovado e agendado pelo cliente" is complete; "Aguardando Aprovação Cliente" is not.
func IsCompletedLabel(label string) bool {
	l := strings.ToLower(label)
	for _, tok := range completedTokens {
		if strings.Contains(l, tok) {
			return true
		}
	}
	return false
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// StatusID derives the identifier of a new status from its label.
func StatusID(label string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(label), "-")
}
