package service

import (
	"errors"
	"fmt"

	"go-storefront-api/internal/model"
	"go-storefront-api/internal/repository"
	"go-storefront-api/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SupportService interface {
	CreateTicket(userID uuid.UUID, subject, body string) (*model.SupportTicket, error)
	GetTicket(userID, ticketID uuid.UUID, isAgent bool) (*model.SupportTicket, error)
	ListMine(userID uuid.UUID, page, perPage int) ([]model.SupportTicket, int64, error)
	ListAll(page, perPage int, status model.TicketStatus) ([]model.SupportTicket, int64, error)
	Reply(authorID, ticketID uuid.UUID, body string, isAgent bool) (*model.TicketMessage, error)
	UpdateStatus(ticketID uuid.UUID, next model.TicketStatus, assigneeID *uuid.UUID) (*model.SupportTicket, error)
}

type supportService struct {
	supportRepo repository.SupportRepository
}

func NewSupportService(supportRepo repository.SupportRepository) SupportService {
	return &supportService{supportRepo: supportRepo}
}

func (s *supportService) CreateTicket(userID uuid.UUID, subject, body string) (*model.SupportTicket, error) {
	ticket := &model.SupportTicket{
		UserID:  userID,
		Subject: subject,
		Body:    body,
		Status:  model.TicketOpen,
	}
	if errs := validator.ValidateStruct(ticket); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}

	if err := s.supportRepo.Create(ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// GetTicket is ownership-scoped for customers; support and admin roles
// see every ticket.
func (s *supportService) GetTicket(userID, ticketID uuid.UUID, isAgent bool) (*model.SupportTicket, error) {
	var ticket *model.SupportTicket
	var err error
	if isAgent {
		ticket, err = s.supportRepo.FindByID(ticketID)
	} else {
		ticket, err = s.supportRepo.FindOwned(ticketID, userID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return ticket, nil
}

func (s *supportService) ListMine(userID uuid.UUID, page, perPage int) ([]model.SupportTicket, int64, error) {
	offset, limit := paginate(page, perPage)
	return s.supportRepo.FindByUser(userID, offset, limit)
}

func (s *supportService) ListAll(page, perPage int, status model.TicketStatus) ([]model.SupportTicket, int64, error) {
	offset, limit := paginate(page, perPage)
	return s.supportRepo.FindAll(offset, limit, status)
}

func (s *supportService) Reply(authorID, ticketID uuid.UUID, body string, isAgent bool) (*model.TicketMessage, error) {
	if body == "" {
		return nil, fmt.Errorf("%w: reply body is required", ErrValidation)
	}

	if _, err := s.GetTicket(authorID, ticketID, isAgent); err != nil {
		return nil, err
	}

	message := &model.TicketMessage{
		TicketID: ticketID,
		AuthorID: authorID,
		Body:     body,
	}
	if err := s.supportRepo.AddMessage(message); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *supportService) UpdateStatus(ticketID uuid.UUID, next model.TicketStatus, assigneeID *uuid.UUID) (*model.SupportTicket, error) {
	switch next {
	case model.TicketOpen, model.TicketInProgress, model.TicketResolved, model.TicketClosed:
	default:
		return nil, ErrInvalidTicketStatus
	}

	ticket, err := s.supportRepo.FindByID(ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}

	if !ticket.Status.CanTransition(next) {
		return nil, ErrIllegalTicketTransition
	}

	ticket.Status = next
	if assigneeID != nil {
		ticket.AssigneeID = assigneeID
	}
	if err := s.supportRepo.Update(ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}
