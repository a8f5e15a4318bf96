package service

import (
	"fmt"

	"go.uber.org/zap"

	"predlozhka/internal/domain"
	"predlozhka/internal/metrics"
	"predlozhka/internal/repository"
)

// AdmissionService gates submissions: ban list and daily quota.
// The owner is exempt from the quota.
type AdmissionService struct {
	bans      repository.BanRepository
	limits    repository.LimitRepository
	calendar  *domain.Calendar
	ownerID   int64
	maxPerDay int
	logger    *zap.Logger
}

// NewAdmissionService creates a new admission service
func NewAdmissionService(
	bans repository.BanRepository,
	limits repository.LimitRepository,
	calendar *domain.Calendar,
	ownerID int64,
	maxPerDay int,
	logger *zap.Logger,
) *AdmissionService {
	return &AdmissionService{
		bans:      bans,
		limits:    limits,
		calendar:  calendar,
		ownerID:   ownerID,
		maxPerDay: maxPerDay,
		logger:    logger,
	}
}

// IsOwner reports whether userID is the configured owner
func (s *AdmissionService) IsOwner(userID int64) bool {
	return userID == s.ownerID
}

// MaxPerDay returns the configured daily limit
func (s *AdmissionService) MaxPerDay() int {
	return s.maxPerDay
}

// IsBanned checks the ban list
func (s *AdmissionService) IsBanned(userID int64) (bool, error) {
	return s.bans.IsBanned(userID)
}

// CurrentCount returns today's submissions of userID; always 0 for the owner
func (s *AdmissionService) CurrentCount(userID int64) (int, error) {
	if s.IsOwner(userID) {
		return 0, nil
	}
	return s.limits.GetCount(userID, s.calendar.Today())
}

// Remaining returns how many submissions userID has left today.
// unlimited is true for the owner.
func (s *AdmissionService) Remaining(userID int64) (remaining int, unlimited bool, err error) {
	if s.IsOwner(userID) {
		return 0, true, nil
	}
	count, err := s.CurrentCount(userID)
	if err != nil {
		return 0, false, err
	}
	remaining = s.maxPerDay - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, false, nil
}

// Increment counts one submission for today
func (s *AdmissionService) Increment(userID int64) error {
	if s.IsOwner(userID) {
		return nil
	}
	return s.limits.Increment(userID, s.calendar.Today())
}

// Decrement frees one submission slot for today. It never goes below zero.
func (s *AdmissionService) Decrement(userID int64) error {
	if s.IsOwner(userID) {
		return nil
	}
	return s.limits.Decrement(userID, s.calendar.Today())
}

// CheckSubmit verifies that userID may start a submission right now
func (s *AdmissionService) CheckSubmit(userID int64) error {
	banned, err := s.IsBanned(userID)
	if err != nil {
		return fmt.Errorf("check ban: %w", err)
	}
	if banned {
		return domain.ErrBanned
	}

	count, err := s.CurrentCount(userID)
	if err != nil {
		return fmt.Errorf("get daily count: %w", err)
	}
	if !s.IsOwner(userID) && count >= s.maxPerDay {
		return domain.ErrQuotaExceeded
	}
	return nil
}

// Reserve takes one quota slot for a submission about to be published.
// The returned reservation must be committed once the submission is
// recorded, or released to give the slot back.
func (s *AdmissionService) Reserve(userID int64) (*Reservation, error) {
	banned, err := s.IsBanned(userID)
	if err != nil {
		return nil, fmt.Errorf("check ban: %w", err)
	}
	if banned {
		return nil, domain.ErrBanned
	}

	if s.IsOwner(userID) {
		return &Reservation{admission: s, userID: userID}, nil
	}

	day := s.calendar.Today()
	ok, err := s.limits.TryIncrement(userID, day, s.maxPerDay)
	if err != nil {
		return nil, fmt.Errorf("reserve daily slot: %w", err)
	}
	if !ok {
		return nil, domain.ErrQuotaExceeded
	}

	return &Reservation{admission: s, userID: userID, day: day, counted: true}, nil
}

// Ban puts userID on the ban list
func (s *AdmissionService) Ban(userID, bannedBy int64, reason string) error {
	if s.IsOwner(userID) {
		return fmt.Errorf("%w: the owner cannot be banned", domain.ErrValidation)
	}
	if reason == "" {
		reason = domain.DefaultBanReason
	}

	err := s.bans.Ban(domain.BanEntry{
		UserID:   userID,
		BannedBy: bannedBy,
		BannedAt: s.calendar.Now(),
		Reason:   reason,
	})
	if err != nil {
		return err
	}

	metrics.BansTotal.WithLabelValues("ban").Inc()
	s.logger.Info("User banned",
		zap.Int64("user_id", userID),
		zap.Int64("banned_by", bannedBy),
		zap.String("reason", reason),
	)
	return nil
}

// Unban removes userID from the ban list, reporting whether it was there
func (s *AdmissionService) Unban(userID int64) (bool, error) {
	removed, err := s.bans.Unban(userID)
	if err != nil {
		return false, err
	}
	if removed {
		metrics.BansTotal.WithLabelValues("unban").Inc()
		s.logger.Info("User unbanned", zap.Int64("user_id", userID))
	}
	return removed, nil
}

// Reservation is a quota slot taken ahead of a publication
type Reservation struct {
	admission *AdmissionService
	userID    int64
	day       string
	counted   bool
	done      bool
}

// Commit keeps the slot
func (r *Reservation) Commit() {
	r.done = true
}

// Release returns the slot. It is a no-op after Commit or a previous Release.
func (r *Reservation) Release() error {
	if r.done {
		return nil
	}
	r.done = true
	if !r.counted {
		return nil
	}
	// r.day, which differs from today if released after midnight
	return r.admission.limits.Decrement(r.userID, r.day)
}
