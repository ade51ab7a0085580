// Package assistant builds conversations for the construction assistant feature.
package assistant

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hpn/buildmate-ai/internal/domain"
)

// MaxHistoryTurns is how many prior turns are forwarded to the provider.
const MaxHistoryTurns = 20

// SystemPrompt frames every assistant conversation.
const SystemPrompt = `You are BuildMate, an assistant for homeowners and contractors planning and running construction and renovation projects.
Give practical, specific guidance on scope, sequencing of trades, milestones, materials, permits and budget.
Flag safety issues and work that legally requires a licensed professional.
When you are unsure about local codes or prices, say so and suggest who to ask.
Keep answers concise and use lists for steps.`

// ErrEmptyMessage is returned when the user message is blank.
var ErrEmptyMessage = errors.New("message cannot be empty")

// Project is the context the user is chatting about.
type Project struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Phase    string  `json:"phase"`
	Location string  `json:"location,omitempty"`
	Budget   float64 `json:"budget,omitempty"`
}

// Context renders the project as a system prompt section.
func (p *Project) Context() string {
	if p == nil {
		return ""
	}

	var lines []string
	add := func(label, value string) {
		if v := strings.TrimSpace(value); v != "" {
			lines = append(lines, fmt.Sprintf("- %s: %s", label, v))
		}
	}
	add("Project", p.Name)
	add("Type", p.Type)
	add("Current phase", p.Phase)
	add("Location", p.Location)
	if p.Budget > 0 {
		lines = append(lines, fmt.Sprintf("- Budget: $%.2f", p.Budget))
	}

	if len(lines) == 0 {
		return ""
	}
	return "The user is asking about this project:\n" + strings.Join(lines, "\n")
}

// Conversation assembles the turns sent to the provider: the system prompt with
// project context, the most recent history, then the new user message.
// System turns supplied in history are discarded.
func Conversation(p *Project, history []domain.Turn, message string) ([]domain.Turn, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	system := SystemPrompt
	if ctx := p.Context(); ctx != "" {
		system += "\n\n" + ctx
	}

	kept := make([]domain.Turn, 0, len(history))
	for _, t := range history {
		if t.Role == domain.RoleUser || t.Role == domain.RoleAssistant {
			kept = append(kept, t)
		}
	}
	if len(kept) > MaxHistoryTurns {
		kept = kept[len(kept)-MaxHistoryTurns:]
	}

	turns := make([]domain.Turn, 0, len(kept)+2)
	turns = append(turns, domain.Turn{Role: domain.RoleSystem, Content: system})
	turns = append(turns, kept...)
	turns = append(turns, domain.Turn{Role: domain.RoleUser, Content: message})

	return turns, nil
}
