package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"predlozhka/internal/domain"
)

func TestSessionStore(t *testing.T) {
	store := NewSessionStore()

	t.Run("missing session is idle", func(t *testing.T) {
		session := store.Get(testUserID)
		assert.Equal(t, domain.StateIdle, session.State)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("get returns a copy", func(t *testing.T) {
		store.Set(testUserID, &domain.Session{State: domain.StatePrice, Draft: domain.Draft{Description: "old bicycle"}})

		session := store.Get(testUserID)
		session.State = domain.StateContact
		session.Draft.Description = "changed"

		stored := store.Get(testUserID)
		assert.Equal(t, domain.StatePrice, stored.State)
		assert.Equal(t, "old bicycle", stored.Draft.Description)
	})

	t.Run("one session per user", func(t *testing.T) {
		store.Set(testUserID, domain.NewSession(domain.StateItemDesc))
		store.Set(testUserID, domain.NewSession(domain.StateConfirmation))

		assert.Equal(t, 1, store.Len())
		assert.Equal(t, domain.StateConfirmation, store.Get(testUserID).State)
	})

	t.Run("clear", func(t *testing.T) {
		store.Clear(testUserID)

		assert.Equal(t, 0, store.Len())
		assert.Equal(t, domain.StateIdle, store.Get(testUserID).State)
	})
}
