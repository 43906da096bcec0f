package service

import (
	"testing"

	"go-storefront-api/internal/model"
	"go-storefront-api/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSupportService(t *testing.T) (SupportService, *gorm.DB) {
	db := setupTestDB(t)
	return NewSupportService(repository.NewSupportRepo(db)), db
}

func TestCreateTicket(t *testing.T) {
	svc, db := newSupportService(t)
	user := seedUser(t, db, "sup@example.com")

	ticket, err := svc.CreateTicket(user.ID, "Broken widget", "It arrived in pieces.")
	require.NoError(t, err)
	require.Equal(t, model.TicketOpen, ticket.Status)

	_, err = svc.CreateTicket(user.ID, "", "no subject")
	require.ErrorIs(t, err, ErrValidation)
}

func TestTicketVisibility(t *testing.T) {
	svc, db := newSupportService(t)
	owner := seedUser(t, db, "sup2@example.com")
	other := seedUser(t, db, "sup3@example.com")

	ticket, err := svc.CreateTicket(owner.ID, "Subject", "Body")
	require.NoError(t, err)

	_, err = svc.GetTicket(owner.ID, ticket.ID, false)
	require.NoError(t, err)

	// Another customer cannot see it; an agent can.
	_, err = svc.GetTicket(other.ID, ticket.ID, false)
	require.ErrorIs(t, err, ErrTicketNotFound)
	_, err = svc.GetTicket(other.ID, ticket.ID, true)
	require.NoError(t, err)
}

func TestTicketReply(t *testing.T) {
	svc, db := newSupportService(t)
	owner := seedUser(t, db, "sup4@example.com")
	agent := seedUser(t, db, "agent@example.com")

	ticket, err := svc.CreateTicket(owner.ID, "Subject", "Body")
	require.NoError(t, err)

	_, err = svc.Reply(owner.ID, ticket.ID, "any update?", false)
	require.NoError(t, err)
	_, err = svc.Reply(agent.ID, ticket.ID, "looking into it", true)
	require.NoError(t, err)

	_, err = svc.Reply(owner.ID, ticket.ID, "", false)
	require.ErrorIs(t, err, ErrValidation)

	loaded, err := svc.GetTicket(owner.ID, ticket.ID, false)
	require.NoError(t, err)
	require.Len(t, loaded.Messages, 2)
}

func TestTicketStatusTransitions(t *testing.T) {
	svc, db := newSupportService(t)
	owner := seedUser(t, db, "sup5@example.com")
	agent := seedUser(t, db, "agent2@example.com")

	ticket, err := svc.CreateTicket(owner.ID, "Subject", "Body")
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ticket.ID, model.TicketInProgress, &agent.ID)
	require.NoError(t, err)
	require.Equal(t, model.TicketInProgress, updated.Status)
	require.NotNil(t, updated.AssigneeID)

	// in_progress cannot go back to open.
	_, err = svc.UpdateStatus(ticket.ID, model.TicketOpen, nil)
	require.Error(t, err)

	updated, err = svc.UpdateStatus(ticket.ID, model.TicketResolved, nil)
	require.NoError(t, err)
	updated, err = svc.UpdateStatus(ticket.ID, model.TicketClosed, nil)
	require.NoError(t, err)
	require.Equal(t, model.TicketClosed, updated.Status)

	// Closed is terminal.
	_, err = svc.UpdateStatus(ticket.ID, model.TicketInProgress, nil)
	require.ErrorIs(t, err, ErrIllegalTicketTransition)
}
