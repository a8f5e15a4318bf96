package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"predlozhka/internal/domain"
	"predlozhka/internal/repository"
)

// counterRetentionDays is how long daily counters are kept
const counterRetentionDays = 7

// StatsService handles statistics and cleanup
type StatsService struct {
	stats    repository.StatsRepository
	limits   repository.LimitRepository
	queue    repository.QueueRepository
	calendar *domain.Calendar
	queueTTL time.Duration
	logger   *zap.Logger
}

// NewStatsService creates a new stats service. Queue entries older than
// queueTTL are expired by CleanupOldData; zero keeps them forever.
func NewStatsService(
	stats repository.StatsRepository,
	limits repository.LimitRepository,
	queue repository.QueueRepository,
	calendar *domain.Calendar,
	queueTTL time.Duration,
	logger *zap.Logger,
) *StatsService {
	return &StatsService{
		stats:    stats,
		limits:   limits,
		queue:    queue,
		calendar: calendar,
		queueTTL: queueTTL,
		logger:   logger,
	}
}

// Counts returns moderation outcomes for the period
func (s *StatsService) Counts(period domain.Period) (domain.StatsCounts, error) {
	switch period {
	case domain.PeriodToday:
		return s.stats.CountEvents(s.calendar.Today())
	case domain.PeriodAll:
		return s.stats.CountEvents("")
	default:
		return domain.StatsCounts{}, fmt.Errorf("%w: unknown period %q", domain.ErrValidation, period)
	}
}

// Report renders the statistics view for the period
func (s *StatsService) Report(period domain.Period) (string, error) {
	counts, err := s.Counts(period)
	if err != nil {
		return "", err
	}

	title := "📈 Statistics for all time"
	if period == domain.PeriodToday {
		title = fmt.Sprintf("📊 Statistics for today (%s)", s.calendar.Today())
	}

	return fmt.Sprintf(
		"%s\n\n📦 Moderated: %d\n✅ Published: %d (%s)\n❌ Rejected: %d (%s)",
		title,
		counts.Total(),
		counts.Published, counts.PublishedPercent(),
		counts.Rejected, counts.RejectedPercent(),
	), nil
}

// CleanupOldData removes stale daily counters and expires queue entries
// that were never moderated
func (s *StatsService) CleanupOldData() error {
	s.logger.Info("Starting cleanup of old data", zap.Int("retention_days", counterRetentionDays))

	removed, err := s.limits.CleanBefore(s.calendar.DaysAgo(counterRetentionDays))
	if err != nil {
		s.logger.Error("Failed to cleanup old daily counters", zap.Error(err))
		return err
	}

	var expired int64
	if s.queueTTL > 0 {
		expired, err = s.queue.ExpirePending(s.calendar.Now().Add(-s.queueTTL))
		if err != nil {
			s.logger.Error("Failed to expire stale queue entries", zap.Error(err))
			return err
		}
	}

	s.logger.Info("Cleanup completed successfully",
		zap.Int64("counters_removed", removed),
		zap.Int64("queue_entries_expired", expired),
	)
	return nil
}
