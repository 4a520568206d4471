package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tarelfish/tarel-api/apperrors"
	"github.com/tarelfish/tarel-api/models"
	"github.com/tarelfish/tarel-api/repositories"
)

type SupportService struct {
	messages *repositories.SupportRepository
}

func NewSupportService(messages *repositories.SupportRepository) *SupportService {
	return &SupportService{messages: messages}
}

func (s *SupportService) Create(ctx context.Context, userID uuid.UUID, subject, body string) (*models.SupportMessage, error) {
	subject = strings.TrimSpace(subject)
	body = strings.TrimSpace(body)
	if subject == "" || body == "" {
		return nil, apperrors.Validation("Subject and message are required")
	}

	message := &models.SupportMessage{
		UserID:  userID,
		Subject: subject,
		Message: body,
		Status:  models.SupportStatusOpen,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, apperrors.Internal("Failed to create support message", err)
	}
	return message, nil
}

func (s *SupportService) ListMine(ctx context.Context, userID uuid.UUID) ([]models.SupportMessage, error) {
	messages, err := s.messages.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch support messages", err)
	}
	return messages, nil
}

func (s *SupportService) GetMine(ctx context.Context, userID, messageID uuid.UUID) (*models.SupportMessage, error) {
	message, err := s.messages.FindByIDForUser(ctx, messageID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Message not found")
	}
	if err != nil {
		return nil, apperrors.Internal("Failed to load support message", err)
	}
	return message, nil
}

func (s *SupportService) ListAll(ctx context.Context) ([]models.SupportMessage, error) {
	messages, err := s.messages.ListAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch support messages", err)
	}
	return messages, nil
}

// Respond updates a ticket's status and, when given, the admin response.
func (s *SupportService) Respond(ctx context.Context, messageID uuid.UUID, status string, response *string) (*models.SupportMessage, error) {
	if !models.ValidSupportStatus(status) {
		return nil, apperrors.Validation("Unknown support status")
	}

	message, err := s.messages.FindByID(ctx, messageID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("Message not found")
	}
	if err != nil {
		return nil, apperrors.Internal("Failed to load support message", err)
	}

	message.Status = status
	if response != nil {
		message.Response = *response
	}
	if err := s.messages.Save(ctx, message); err != nil {
		return nil, apperrors.Internal("Failed to update support message", err)
	}
	return message, nil
}
