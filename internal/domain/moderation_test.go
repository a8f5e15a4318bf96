package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseModerationCallback(t *testing.T) {
	tests := []struct {
		name             string
		data             string
		expectedDecision Decision
		expectedAuthor   int64
		expectedError    bool
	}{
		{
			name:             "publish",
			data:             "mod_pub:123",
			expectedDecision: DecisionPublish,
			expectedAuthor:   123,
		},
		{
			name:             "reject",
			data:             "mod_rej:6493670021",
			expectedDecision: DecisionReject,
			expectedAuthor:   6493670021,
		},
		{
			name:          "missing separator",
			data:          "mod_pub",
			expectedError: true,
		},
		{
			name:          "unknown action",
			data:          "mod_del:1",
			expectedError: true,
		},
		{
			name:          "non numeric author",
			data:          "mod_rej:abc",
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, author, err := ParseModerationCallback(tt.data)

			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedDecision, decision)
			assert.Equal(t, tt.expectedAuthor, author)
		})
	}
}

func TestModerationKeyboard_RoundTrip(t *testing.T) {
	kb := ModerationKeyboard(42)

	decision, author, err := ParseModerationCallback((*kb)[0][0].Data)
	assert.NoError(t, err)
	assert.Equal(t, DecisionPublish, decision)
	assert.Equal(t, int64(42), author)

	decision, author, err = ParseModerationCallback((*kb)[0][1].Data)
	assert.NoError(t, err)
	assert.Equal(t, DecisionReject, decision)
	assert.Equal(t, int64(42), author)
}

func TestDecision_Event(t *testing.T) {
	assert.Equal(t, EventPublished, DecisionPublish.Event())
	assert.Equal(t, EventRejected, DecisionReject.Event())
}
