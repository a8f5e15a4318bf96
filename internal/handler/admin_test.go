package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBanArgs(t *testing.T) {
	tests := []struct {
		name           string
		payload        string
		expectedID     int64
		expectedReason string
		expectedError  bool
	}{
		{name: "id only", payload: "12345", expectedID: 12345},
		{name: "id and reason", payload: "12345 spam", expectedID: 12345, expectedReason: "spam"},
		{name: "reason with spaces", payload: " 12345  too many ads  ", expectedID: 12345, expectedReason: "too many ads"},
		{name: "missing id", payload: "", expectedError: true},
		{name: "not a number", payload: "abc spam", expectedError: true},
		{name: "negative id", payload: "-5", expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, reason, err := parseBanArgs(tt.payload)

			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedID, id)
			assert.Equal(t, tt.expectedReason, reason)
		})
	}
}

func TestParseUserID(t *testing.T) {
	id, err := parseUserID(" 42 ")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = parseUserID("0")
	assert.Error(t, err)
}
