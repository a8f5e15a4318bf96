package sqlstore

import (
	"github.com/jmoiron/sqlx"

	"predlozhka/internal/domain"
)

// StatsRepo implements repository.StatsRepository
type StatsRepo struct {
	db *sqlx.DB
}

// NewStatsRepo creates a new statistics repository
func NewStatsRepo(db *sqlx.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

// CountEvents counts moderation outcomes of day, or of all time if day is empty
func (r *StatsRepo) CountEvents(day string) (domain.StatsCounts, error) {
	query := `SELECT event_type, COUNT(*) FROM moderation_stats GROUP BY event_type`
	args := []interface{}{}
	if day != "" {
		query = `SELECT event_type, COUNT(*) FROM moderation_stats WHERE moderated_date = ? GROUP BY event_type`
		args = append(args, day)
	}

	rows, err := r.db.Query(r.db.Rebind(query), args...)
	if err != nil {
		return domain.StatsCounts{}, err
	}
	defer rows.Close()

	var counts domain.StatsCounts
	for rows.Next() {
		var eventType string
		var n int
		if err := rows.Scan(&eventType, &n); err != nil {
			return domain.StatsCounts{}, err
		}
		switch domain.EventType(eventType) {
		case domain.EventPublished:
			counts.Published = n
		case domain.EventRejected:
			counts.Rejected = n
		}
	}

	return counts, rows.Err()
}
