package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"predlozhka/internal/domain"
)

func TestFormatAd(t *testing.T) {
	d := domain.Draft{Description: "Selling a mountain bike", Price: "100$", Contact: "@seller"}

	expected := "📝 Description:\nSelling a mountain bike\n\n💰 Price: 100$\n📞 Contact: @seller"
	assert.Equal(t, expected, FormatAd(d))
}

func TestAuthorHandle(t *testing.T) {
	assert.Equal(t, "@seller", AuthorHandle("seller"))
	assert.Equal(t, "no username", AuthorHandle(""))
}

func TestSignature_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		draft  domain.Draft
		id     int64
		handle string
	}{
		{
			name:   "with username",
			draft:  domain.Draft{Description: "Selling a mountain bike", Price: "100$", Contact: "@seller"},
			id:     123,
			handle: "@seller",
		},
		{
			name:   "without username",
			draft:  domain.Draft{Description: "Line one\n\nLine two with (parens)", Price: "free", Contact: "+7 900"},
			id:     6493670021,
			handle: "no username",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := FormatAd(tt.draft)
			signed := AppendSignature(body, tt.id, tt.handle)

			assert.NotEqual(t, body, signed)
			assert.Equal(t, body, StripSignature(signed))

			id, handle, ok := ParseSignature(signed)
			assert.True(t, ok)
			assert.Equal(t, tt.id, id)
			assert.Equal(t, tt.handle, handle)
		})
	}
}

func TestStripSignature_OnlyTrailingBlock(t *testing.T) {
	text := "— Author ID: 1 (@a) — in the middle\n\nreal text"
	assert.Equal(t, text, StripSignature(text))

	_, _, ok := ParseSignature(text)
	assert.False(t, ok)
}
