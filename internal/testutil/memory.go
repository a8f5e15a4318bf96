package testutil

import (
	"sort"
	"sync"
	"time"

	"predlozhka/internal/domain"
)

type limitKey struct {
	userID int64
	day    string
}

// MemoryStore implements every repository interface in memory, with the
// same conditional semantics as the SQL store
type MemoryStore struct {
	mu         sync.Mutex
	bans       map[int64]domain.BanEntry
	limits     map[limitKey]int
	pending    map[int]domain.PendingEntry
	stats      []storedStat
	nextStatID int64
	recipients map[int64]struct{}

	// AddPendingErr, ResolveErr and ReopenErr, when set, fail the matching
	// queue call without touching the queue
	AddPendingErr error
	ResolveErr    error
	ReopenErr     error
}

type storedStat struct {
	id   int64
	stat domain.ModerationStat
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		bans:       make(map[int64]domain.BanEntry),
		limits:     make(map[limitKey]int),
		pending:    make(map[int]domain.PendingEntry),
		recipients: make(map[int64]struct{}),
	}
}

func (s *MemoryStore) IsBanned(userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.bans[userID]
	return ok, nil
}

func (s *MemoryStore) Ban(entry domain.BanEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bans[entry.UserID] = entry
	return nil
}

func (s *MemoryStore) Unban(userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.bans[userID]
	delete(s.bans, userID)
	return ok, nil
}

func (s *MemoryStore) GetCount(userID int64, day string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.limits[limitKey{userID, day}], nil
}

// SetCount seeds a daily counter
func (s *MemoryStore) SetCount(userID int64, day string, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limits[limitKey{userID, day}] = count
}

func (s *MemoryStore) Increment(userID int64, day string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limits[limitKey{userID, day}]++
	return nil
}

func (s *MemoryStore) TryIncrement(userID int64, day string, limit int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := limitKey{userID, day}
	if s.limits[key] >= limit {
		return false, nil
	}
	s.limits[key]++
	return true, nil
}

func (s *MemoryStore) Decrement(userID int64, day string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := limitKey{userID, day}
	if s.limits[key] > 0 {
		s.limits[key]--
	}
	return nil
}

func (s *MemoryStore) CleanBefore(day string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed int64
	for key := range s.limits {
		if key.day < day {
			delete(s.limits, key)
			removed++
		}
	}
	return removed, nil
}

func (s *MemoryStore) AddPending(entry domain.PendingEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.AddPendingErr != nil {
		return s.AddPendingErr
	}
	s.pending[entry.MessageID] = entry
	return nil
}

func (s *MemoryStore) GetPending(messageID int) (*domain.PendingEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.pending[messageID]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

func (s *MemoryStore) ResolvePending(messageID int, stat domain.ModerationStat) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ResolveErr != nil {
		return 0, s.ResolveErr
	}
	if _, ok := s.pending[messageID]; !ok {
		return 0, domain.ErrEntryNotFound
	}
	delete(s.pending, messageID)
	return s.appendStat(stat), nil
}

func (s *MemoryStore) ReopenPending(entry domain.PendingEntry, statID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReopenErr != nil {
		return s.ReopenErr
	}
	s.pending[entry.MessageID] = entry
	for i, st := range s.stats {
		if st.id == statID {
			s.stats = append(s.stats[:i], s.stats[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStore) appendStat(stat domain.ModerationStat) int64 {
	s.nextStatID++
	s.stats = append(s.stats, storedStat{id: s.nextStatID, stat: stat})
	return s.nextStatID
}

func (s *MemoryStore) ExpirePending(before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var expired int64
	for id, entry := range s.pending {
		if entry.SubmittedAt.Before(before) {
			delete(s.pending, id)
			expired++
		}
	}
	return expired, nil
}

// PendingCount returns the number of live queue entries
func (s *MemoryStore) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Stats returns a copy of the recorded moderation outcomes
func (s *MemoryStore) Stats() []domain.ModerationStat {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := make([]domain.ModerationStat, 0, len(s.stats))
	for _, st := range s.stats {
		stats = append(stats, st.stat)
	}
	return stats
}

// AddStat appends a moderation outcome directly
func (s *MemoryStore) AddStat(stat domain.ModerationStat) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendStat(stat)
}

func (s *MemoryStore) CountEvents(day string) (domain.StatsCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var counts domain.StatsCounts
	for _, st := range s.stats {
		if day != "" && st.stat.ModeratedDate != day {
			continue
		}
		switch st.stat.EventType {
		case domain.EventPublished:
			counts.Published++
		case domain.EventRejected:
			counts.Rejected++
		}
	}
	return counts, nil
}

func (s *MemoryStore) AddRecipient(userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipients[userID] = struct{}{}
	return nil
}

func (s *MemoryStore) ListRecipients() ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0, len(s.recipients))
	for id := range s.recipients {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *MemoryStore) CountRecipients() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.recipients), nil
}
