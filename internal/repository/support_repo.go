package repository

import (
	"go-storefront-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SupportRepository interface {
	Create(ticket *model.SupportTicket) error
	FindByID(id uuid.UUID) (*model.SupportTicket, error)
	FindOwned(id, userID uuid.UUID) (*model.SupportTicket, error)
	FindByUser(userID uuid.UUID, offset, limit int) ([]model.SupportTicket, int64, error)
	FindAll(offset, limit int, status model.TicketStatus) ([]model.SupportTicket, int64, error)
	Update(ticket *model.SupportTicket) error
	AddMessage(message *model.TicketMessage) error
}

type supportRepo struct {
	db *gorm.DB
}

func NewSupportRepo(db *gorm.DB) SupportRepository {
	return &supportRepo{db}
}

func (r *supportRepo) Create(ticket *model.SupportTicket) error {
	return r.db.Create(ticket).Error
}

func (r *supportRepo) FindByID(id uuid.UUID) (*model.SupportTicket, error) {
	var ticket model.SupportTicket
	if err := r.db.Preload("Messages").First(&ticket, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *supportRepo) FindOwned(id, userID uuid.UUID) (*model.SupportTicket, error) {
	var ticket model.SupportTicket
	if err := r.db.Preload("Messages").First(&ticket, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *supportRepo) FindByUser(userID uuid.UUID, offset, limit int) ([]model.SupportTicket, int64, error) {
	q := r.db.Model(&model.SupportTicket{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tickets []model.SupportTicket
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&tickets).Error
	return tickets, total, err
}

func (r *supportRepo) FindAll(offset, limit int, status model.TicketStatus) ([]model.SupportTicket, int64, error) {
	q := r.db.Model(&model.SupportTicket{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tickets []model.SupportTicket
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&tickets).Error
	return tickets, total, err
}

func (r *supportRepo) Update(ticket *model.SupportTicket) error {
	return r.db.Save(ticket).Error
}

func (r *supportRepo) AddMessage(message *model.TicketMessage) error {
	return r.db.Create(message).Error
}
