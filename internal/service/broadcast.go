package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"predlozhka/internal/domain"
	"predlozhka/internal/metrics"
	"predlozhka/internal/repository"
)

// BroadcastResult is the outcome of one broadcast run
type BroadcastResult struct {
	Success int
	Failed  int
}

// BroadcastService copies an owner's message to every registered user
type BroadcastService struct {
	recipients repository.RecipientRepository
	messenger  Messenger
	delay      time.Duration
	ownerID    int64
	logger     *zap.Logger
}

// NewBroadcastService creates a new broadcast service. delay is the pause
// between two consecutive sends.
func NewBroadcastService(
	recipients repository.RecipientRepository,
	messenger Messenger,
	delay time.Duration,
	ownerID int64,
	logger *zap.Logger,
) *BroadcastService {
	return &BroadcastService{
		recipients: recipients,
		messenger:  messenger,
		delay:      delay,
		ownerID:    ownerID,
		logger:     logger,
	}
}

// Register adds userID to the broadcast audience
func (s *BroadcastService) Register(userID int64) error {
	return s.recipients.AddRecipient(userID)
}

// AudienceSize returns the number of registered users
func (s *BroadcastService) AudienceSize() (int, error) {
	return s.recipients.CountRecipients()
}

// Run copies src to a snapshot of all recipients except the owner.
// Per-recipient failures are counted and never stop the loop. A cancelled
// ctx stops the run early and returns the partial result with ctx.Err().
func (s *BroadcastService) Run(ctx context.Context, src domain.MessageRef) (BroadcastResult, error) {
	var result BroadcastResult

	recipients, err := s.recipients.ListRecipients()
	if err != nil {
		return result, fmt.Errorf("list recipients: %w", err)
	}

	runID := uuid.NewString()
	logger := s.logger.With(zap.String("broadcast_id", runID))
	logger.Info("Broadcast started", zap.Int("recipients", len(recipients)))

	limit := rate.Inf
	if s.delay > 0 {
		limit = rate.Every(s.delay)
	}
	limiter := rate.NewLimiter(limit, 1)

	for _, userID := range recipients {
		if userID == s.ownerID {
			continue
		}

		if err := limiter.Wait(ctx); err != nil {
			logger.Warn("Broadcast interrupted",
				zap.Int("success", result.Success),
				zap.Int("failed", result.Failed),
				zap.Error(err),
			)
			return result, err
		}

		if err := s.messenger.Copy(userID, src); err != nil {
			result.Failed++
			metrics.BroadcastSendsTotal.WithLabelValues(metrics.ResultFailed).Inc()
			logger.Debug("Broadcast delivery failed",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			continue
		}
		result.Success++
		metrics.BroadcastSendsTotal.WithLabelValues(metrics.ResultOK).Inc()
	}

	logger.Info("Broadcast finished",
		zap.Int("success", result.Success),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}
