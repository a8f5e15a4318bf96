package sqlstore

import (
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"predlozhka/internal/domain"
)

func TestStatsRepo_CountEvents_Today(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStatsRepo(db)

	rows := sqlmock.NewRows([]string{"event_type", "count"}).
		AddRow("published", 3).
		AddRow("rejected", 1)

	mock.ExpectQuery("SELECT event_type, COUNT\\(\\*\\) FROM moderation_stats WHERE moderated_date = \\$1 GROUP BY event_type").
		WithArgs("2024-06-15").
		WillReturnRows(rows)

	counts, err := repo.CountEvents("2024-06-15")

	assert.NoError(t, err)
	assert.Equal(t, domain.StatsCounts{Published: 3, Rejected: 1}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsRepo_CountEvents_AllTime(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStatsRepo(db)

	rows := sqlmock.NewRows([]string{"event_type", "count"}).
		AddRow("rejected", 7)

	mock.ExpectQuery("SELECT event_type, COUNT\\(\\*\\) FROM moderation_stats GROUP BY event_type").
		WillReturnRows(rows)

	counts, err := repo.CountEvents("")

	assert.NoError(t, err)
	assert.Equal(t, domain.StatsCounts{Published: 0, Rejected: 7}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsRepo_CountEvents_QueryError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStatsRepo(db)

	mock.ExpectQuery("SELECT event_type").
		WillReturnError(fmt.Errorf("db error"))

	_, err := repo.CountEvents("")

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
