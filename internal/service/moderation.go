package service

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"predlozhka/internal/domain"
	"predlozhka/internal/metrics"
	"predlozhka/internal/repository"
)

const (
	statusPublished = "\n\n✅ PUBLISHED"
	statusRejected  = "\n\n❌ REJECTED"
)

// ReviewItem is a post in the review channel as seen by the moderator
type ReviewItem struct {
	Ref     domain.MessageRef
	Content domain.Content
}

// Resolution describes a recorded moderation decision
type Resolution struct {
	AuthorID int64
	Decision domain.Decision
}

// ModerationService owns the review queue: it links review posts to their
// authors and records moderator decisions
type ModerationService struct {
	queue     repository.QueueRepository
	admission *AdmissionService
	messenger Messenger
	channels  Channels
	calendar  *domain.Calendar
	audit     *AuditLog
	logger    *zap.Logger
}

// NewModerationService creates a new moderation service
func NewModerationService(
	queue repository.QueueRepository,
	admission *AdmissionService,
	messenger Messenger,
	channels Channels,
	calendar *domain.Calendar,
	audit *AuditLog,
	logger *zap.Logger,
) *ModerationService {
	return &ModerationService{
		queue:     queue,
		admission: admission,
		messenger: messenger,
		channels:  channels,
		calendar:  calendar,
		audit:     audit,
		logger:    logger,
	}
}

// Enqueue records that the review post messageID was submitted by userID
func (s *ModerationService) Enqueue(messageID int, userID int64) error {
	return s.queue.AddPending(domain.PendingEntry{
		MessageID:   messageID,
		UserID:      userID,
		SubmittedAt: s.calendar.Now(),
	})
}

// Resolve applies the moderator's decision to a review post. The stored
// queue entry decides who the author is; claimedAuthorID only comes from
// the pressed control and may be stale.
func (s *ModerationService) Resolve(item ReviewItem, decision domain.Decision, claimedAuthorID int64) (*Resolution, error) {
	entry, err := s.queue.GetPending(item.Ref.MessageID)
	if err != nil {
		metrics.ModerationDecisionsTotal.WithLabelValues(decision.String(), metrics.ResultFailed).Inc()
		return nil, fmt.Errorf("get pending post: %w", err)
	}
	if entry == nil {
		metrics.ModerationDecisionsTotal.WithLabelValues(decision.String(), metrics.ResultNotFound).Inc()
		return nil, domain.ErrEntryNotFound
	}

	authorID := entry.UserID
	if claimedAuthorID != authorID {
		s.logger.Warn("Moderation control author differs from queue entry",
			zap.Int("message_id", item.Ref.MessageID),
			zap.Int64("claimed_author_id", claimedAuthorID),
			zap.Int64("author_id", authorID),
		)
	}

	stat := domain.ModerationStat{
		EventType:     decision.Event(),
		CreatedAt:     entry.SubmittedAt,
		ModeratedAt:   s.calendar.Now(),
		ModeratedDate: s.calendar.Today(),
	}
	if stat.CreatedAt.IsZero() {
		stat.CreatedAt = stat.ModeratedAt
	}

	var status, authorText string
	switch decision {
	case domain.DecisionPublish:
		err = s.publish(item, *entry, stat)
		status, authorText = statusPublished, "🎉 Your post has been published!"
	case domain.DecisionReject:
		err = s.reject(item, authorID, stat)
		status, authorText = statusRejected, "❌ Your post was rejected by the moderator."
	default:
		return nil, fmt.Errorf("unknown decision %d", decision)
	}
	if err != nil {
		result := metrics.ResultFailed
		if errors.Is(err, domain.ErrEntryNotFound) {
			result = metrics.ResultNotFound
		}
		metrics.ModerationDecisionsTotal.WithLabelValues(decision.String(), result).Inc()
		return nil, err
	}

	metrics.ModerationDecisionsTotal.WithLabelValues(decision.String(), metrics.ResultOK).Inc()
	s.logger.Info("Moderation decision recorded",
		zap.Int("message_id", item.Ref.MessageID),
		zap.Int64("author_id", authorID),
		zap.String("decision", decision.String()),
	)

	notify(s.messenger, s.logger, authorID, authorText)

	annotated := domain.Content{Text: item.Content.Text + status, PhotoID: item.Content.PhotoID}
	if err := s.messenger.Edit(item.Ref, annotated, nil); err != nil {
		s.logger.Warn("Failed to annotate review post",
			zap.Int("message_id", item.Ref.MessageID),
			zap.Error(err),
		)
	}

	s.audit.Record("post %d by %d: %s", item.Ref.MessageID, authorID, stat.EventType)

	return &Resolution{AuthorID: authorID, Decision: decision}, nil
}

// publish claims the entry, then republishes the post without its
// signature. A failed republication reopens the entry so the moderator can
// retry.
func (s *ModerationService) publish(item ReviewItem, entry domain.PendingEntry, stat domain.ModerationStat) error {
	statID, err := s.queue.ResolvePending(item.Ref.MessageID, stat)
	if err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			return err
		}
		return fmt.Errorf("record publication: %w", err)
	}

	content := domain.Content{
		Text:    StripSignature(item.Content.Text),
		PhotoID: item.Content.PhotoID,
	}
	if _, err := s.messenger.Send(s.channels.PublicChatID, content, nil); err != nil {
		if reopenErr := s.queue.ReopenPending(entry, statID); reopenErr != nil {
			s.logger.Error("Failed to reopen review post",
				zap.Int("message_id", item.Ref.MessageID),
				zap.Error(reopenErr),
			)
		}
		return fmt.Errorf("%w: republish to public channel: %v", domain.ErrDelivery, err)
	}
	return nil
}

// reject claims the entry, then frees the author's daily slot. Only a
// claimed entry gives a slot back, so a failed claim changes no counter.
func (s *ModerationService) reject(item ReviewItem, authorID int64, stat domain.ModerationStat) error {
	if _, err := s.queue.ResolvePending(item.Ref.MessageID, stat); err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			return err
		}
		return fmt.Errorf("record rejection: %w", err)
	}

	if err := s.admission.Decrement(authorID); err != nil {
		s.logger.Error("Failed to free daily slot",
			zap.Int64("author_id", authorID),
			zap.Error(err),
		)
	}
	return nil
}
