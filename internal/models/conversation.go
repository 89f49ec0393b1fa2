package models

import (
	"time"

	"github.com/google/uuid"
)

type TurnRole string

const (
	RoleInterviewer TurnRole = "interviewer"
	RoleCandidate   TurnRole = "candidate"
)

// ConversationTurn is one committed message in the interview. Turns are
// append-only: once added to the history they are never edited or removed.
type ConversationTurn struct {
	ID        uuid.UUID `json:"id"`
	Role      TurnRole  `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

func NewTurn(role TurnRole, text string) ConversationTurn {
	return ConversationTurn{
		ID:        uuid.New(),
		Role:      role,
		Text:      text,
		CreatedAt: time.Now(),
	}
}
