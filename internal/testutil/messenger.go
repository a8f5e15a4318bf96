package testutil

import (
	"errors"
	"sync"

	"predlozhka/internal/domain"
)

// ErrFakeDelivery is returned by FakeMessenger for injected failures
var ErrFakeDelivery = errors.New("fake delivery failure")

// Sent is a message recorded by FakeMessenger
type Sent struct {
	Ref      domain.MessageRef
	Content  domain.Content
	Keyboard *domain.Keyboard
}

// Edited is an edit recorded by FakeMessenger
type Edited struct {
	Ref      domain.MessageRef
	Content  domain.Content
	Keyboard *domain.Keyboard
}

// Copied is a copy-forward recorded by FakeMessenger
type Copied struct {
	ChatID int64
	Source domain.MessageRef
}

// FakeMessenger records every outgoing call. Failures are injected per
// chat (sends, copies) or globally (edits).
type FakeMessenger struct {
	mu     sync.Mutex
	nextID int

	Sent    []Sent
	Edited  []Edited
	Deleted []domain.MessageRef
	Copied  []Copied

	FailSendTo map[int64]bool
	FailCopyTo map[int64]bool
	FailEdit   bool
}

// NewFakeMessenger creates a messenger with no injected failures
func NewFakeMessenger() *FakeMessenger {
	return &FakeMessenger{
		nextID:     100,
		FailSendTo: make(map[int64]bool),
		FailCopyTo: make(map[int64]bool),
	}
}

func (m *FakeMessenger) Send(chatID int64, content domain.Content, kb *domain.Keyboard) (domain.MessageRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSendTo[chatID] {
		return domain.MessageRef{}, ErrFakeDelivery
	}
	m.nextID++
	ref := domain.MessageRef{ChatID: chatID, MessageID: m.nextID}
	m.Sent = append(m.Sent, Sent{Ref: ref, Content: content, Keyboard: kb})
	return ref, nil
}

func (m *FakeMessenger) Edit(ref domain.MessageRef, content domain.Content, kb *domain.Keyboard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailEdit {
		return ErrFakeDelivery
	}
	m.Edited = append(m.Edited, Edited{Ref: ref, Content: content, Keyboard: kb})
	return nil
}

func (m *FakeMessenger) Delete(ref domain.MessageRef) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deleted = append(m.Deleted, ref)
	return nil
}

func (m *FakeMessenger) Copy(chatID int64, src domain.MessageRef) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailCopyTo[chatID] {
		return ErrFakeDelivery
	}
	m.Copied = append(m.Copied, Copied{ChatID: chatID, Source: src})
	return nil
}

// SentTo returns the messages sent to chatID in order
func (m *FakeMessenger) SentTo(chatID int64) []Sent {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Sent
	for _, s := range m.Sent {
		if s.Ref.ChatID == chatID {
			out = append(out, s)
		}
	}
	return out
}

// LastSentTo returns the latest message sent to chatID
func (m *FakeMessenger) LastSentTo(chatID int64) (Sent, bool) {
	sent := m.SentTo(chatID)
	if len(sent) == 0 {
		return Sent{}, false
	}
	return sent[len(sent)-1], true
}

// WasDeleted reports whether ref was deleted
func (m *FakeMessenger) WasDeleted(ref domain.MessageRef) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.Deleted {
		if d == ref {
			return true
		}
	}
	return false
}
