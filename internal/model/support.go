package model

import "github.com/google/uuid"

type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketResolved   TicketStatus = "resolved"
	TicketClosed     TicketStatus = "closed"
)

var ticketTransitions = map[TicketStatus][]TicketStatus{
	TicketOpen:       {TicketInProgress, TicketResolved, TicketClosed},
	TicketInProgress: {TicketResolved, TicketClosed},
	TicketResolved:   {TicketClosed},
}

// CanTransition reports whether ticket status s may move to next.
func (s TicketStatus) CanTransition(next TicketStatus) bool {
	for _, allowed := range ticketTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// SupportTicket belongs to a user and moves open -> in_progress ->
// resolved/closed. Replies append TicketMessage rows.
type SupportTicket struct {
	BaseModel
	UserID     uuid.UUID    `gorm:"type:uuid;index;not null" json:"user_id"`
	Subject    string       `gorm:"type:varchar(255);not null" json:"subject" validate:"required"`
	Body       string       `gorm:"type:text;not null" json:"body" validate:"required"`
	Status     TicketStatus `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	AssigneeID *uuid.UUID   `gorm:"type:uuid" json:"assignee_id,omitempty"`

	Messages []TicketMessage `gorm:"foreignKey:TicketID" json:"messages,omitempty"`
}

// TicketMessage is a single reply on a ticket, from the owner or an agent.
type TicketMessage struct {
	BaseModel
	TicketID uuid.UUID `gorm:"type:uuid;index;not null" json:"ticket_id"`
	AuthorID uuid.UUID `gorm:"type:uuid;not null" json:"author_id"`
	Body     string    `gorm:"type:text;not null" json:"body"`
}
