package content

import (
	"context"
	"errors"
	"strings"

	"grambazaar/database/repository"
	"grambazaar/models"
	"grambazaar/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubmitMessage stores a public contact-form submission.
func (s *DefaultContentService) SubmitMessage(ctx context.Context, input models.MessageInput) (*models.Message, error) {
	m := &models.Message{
		ID:      uuid.New().String(),
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.ToLower(strings.TrimSpace(input.Email)),
		Message: strings.TrimSpace(input.Message),
	}
	if err := s.Messages.Create(ctx, m); err != nil {
		return nil, utils.Internal("Failed to send message", err)
	}
	utils.GetLogger().Info("Contact message received", zap.String("messageId", m.ID))
	return m, nil
}

func (s *DefaultContentService) ListMessages(ctx context.Context) ([]models.Message, error) {
	msgs, err := s.Messages.List(ctx)
	if err != nil {
		return nil, utils.Internal("Failed to fetch messages", err)
	}
	return msgs, nil
}

func (s *DefaultContentService) DeleteMessage(ctx context.Context, id string) error {
	err := s.Messages.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return utils.NotFound("Message not found")
	}
	if err != nil {
		return utils.Internal("Failed to delete message", err)
	}
	return nil
}

func (s *DefaultContentService) DeleteMessages(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, utils.Invalid("No message ids provided", utils.FieldIssue{Field: "ids", Message: "must not be empty"})
	}
	n, err := s.Messages.DeleteMany(ctx, ids)
	if err != nil {
		return 0, utils.Internal("Failed to delete messages", err)
	}
	return n, nil
}
