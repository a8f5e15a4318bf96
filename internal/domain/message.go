package domain

// MessageRef identifies a message already delivered by the transport
type MessageRef struct {
	ChatID    int64
	MessageID int
}

// Content is what gets sent: plain text, or a photo with Text as its caption
type Content struct {
	Text    string
	PhotoID string
}

// HasPhoto reports whether the content is a photo with caption
func (c Content) HasPhoto() bool {
	return c.PhotoID != ""
}

// Button is a single inline control; Data is delivered back on press
type Button struct {
	Text string
	Data string
}

// Keyboard is a grid of inline controls, one slice per row
type Keyboard [][]Button
