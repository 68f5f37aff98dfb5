package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"changia/internal/amqp"
	"changia/internal/core"
	"changia/internal/storage"
)

// ContributionService orchestrates contribution writes across SQLite and AMQP.
type ContributionService struct {
	storage    *storage.SQLiteRepository
	amqpClient *amqp.Client
}

func NewContributionService(storage *storage.SQLiteRepository, amqpClient *amqp.Client) *ContributionService {
	return &ContributionService{
		storage:    storage,
		amqpClient: amqpClient,
	}
}

// CreateContribution saves a contribution locally and publishes a sync message.
func (s *ContributionService) CreateContribution(ctx context.Context, c core.Contribution) (string, error) {
	// Save to SQLite first (fast, reliable)
	ref, err := s.storage.Append(ctx, c)
	if err != nil {
		return "", fmt.Errorf("save contribution: %w", err)
	}

	// Parse ID for AMQP message
	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to parse contribution ID", "ref", ref, "error", err)
		return ref, nil // Return anyway, SQLite save succeeded
	}

	// Publish async sync message (non-blocking)
	if err := s.publishSyncMessage(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"id", id, "error", err)
		// Don't fail the request - contribution is saved locally
	}

	return ref, nil
}

func (s *ContributionService) publishSyncMessage(ctx context.Context, id int64) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping sync message")
		return nil
	}

	return s.amqpClient.PublishContributionSync(ctx, id)
}

// Close closes both storage and AMQP connections
func (s *ContributionService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close contribution service: %v", errs)
	}

	return nil
}
