package service

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"predlozhka/internal/domain"
)

// Sender identifies the user behind an inbound event. In a private chat the
// chat id equals the user id.
type Sender struct {
	ID       int64
	Username string
	Name     string
}

// Input is a message the user sent while in a dialogue
type Input struct {
	Ref     domain.MessageRef
	Text    string // text, or caption of a photo
	PhotoID string
	// FromCaption is set when the message was media and Text is its caption
	FromCaption bool
}

const (
	textAccessDenied = "🚫 Access denied."
	textCancelled    = "❌ Action cancelled.\n\nStart again with /start."
	textSendFailed   = "❌ Failed to send the post. Please try again later."
	textSubmitted    = "✅ Sent to moderation!"

	textStepDescription = "📝 Step 1 of 3: Description and photo\n\nSend a photo with a caption, or just a text description (at least 10 characters)."
	textStepPrice       = "💰 Step 2 of 3: Price\n\nSend the price (at least 2 characters)."
	textStepContact     = "📞 Step 3 of 3: Contact\n\nSend a way to reach you (at least 3 characters)."
)

// ConversationService drives the per-user dialogues: submission, editing,
// and the owner's broadcast and statistics menus
type ConversationService struct {
	sessions   *SessionStore
	admission  *AdmissionService
	moderation *ModerationService
	broadcast  *BroadcastService
	stats      *StatsService
	messenger  Messenger
	channels   Channels
	audit      *AuditLog
	logger     *zap.Logger
}

// NewConversationService creates a new conversation service
func NewConversationService(
	sessions *SessionStore,
	admission *AdmissionService,
	moderation *ModerationService,
	broadcast *BroadcastService,
	stats *StatsService,
	messenger Messenger,
	channels Channels,
	audit *AuditLog,
	logger *zap.Logger,
) *ConversationService {
	return &ConversationService{
		sessions:   sessions,
		admission:  admission,
		moderation: moderation,
		broadcast:  broadcast,
		stats:      stats,
		messenger:  messenger,
		channels:   channels,
		audit:      audit,
		logger:     logger,
	}
}

// Session returns a copy of the user's current session
func (s *ConversationService) Session(userID int64) *domain.Session {
	return s.sessions.Get(userID)
}

// Start registers the user for broadcasts and restarts the submission
// dialogue, dropping whatever the user was doing before
func (s *ConversationService) Start(user Sender) error {
	if err := s.broadcast.Register(user.ID); err != nil {
		s.logger.Warn("Failed to register broadcast recipient",
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
	}

	banned, err := s.admission.IsBanned(user.ID)
	if err != nil {
		return fmt.Errorf("check ban: %w", err)
	}

	s.reset(user.ID)

	if banned {
		notify(s.messenger, s.logger, user.ID, textAccessDenied)
		return domain.ErrBanned
	}

	remaining, unlimited, err := s.admission.Remaining(user.ID)
	if err != nil {
		return fmt.Errorf("get remaining quota: %w", err)
	}

	session := domain.NewSession(domain.StateStartButton)
	ref, err := s.messenger.Send(user.ID, domain.Content{Text: s.welcomeText(user, remaining, unlimited)}, domain.StartSubmitKeyboard())
	if err == nil {
		session.Instruction = &ref
	}
	s.sessions.Set(user.ID, session)

	if err != nil {
		return fmt.Errorf("%w: send welcome: %v", domain.ErrDelivery, err)
	}
	return nil
}

func (s *ConversationService) welcomeText(user Sender, remaining int, unlimited bool) string {
	limit := fmt.Sprintf("Limit: %d posts per day. Remaining today: %d", s.admission.MaxPerDay(), remaining)
	if unlimited {
		limit = "Unlimited (owner)"
	}

	name := user.Name
	if name == "" {
		name = "there"
	}

	return fmt.Sprintf(
		"Hello, %s!\n\nI collect listings for the channel.\n\n💡 Important:\n• Every listing is reviewed by a moderator\n• %s",
		name, limit,
	)
}

// Cancel abandons the current dialogue. origin is the message holding the
// pressed cancel control, nil for the /cancel command.
func (s *ConversationService) Cancel(user Sender, origin *domain.MessageRef) error {
	session := s.sessions.Get(user.ID)
	tracked := origin != nil && (sameRef(origin, session.Instruction) || sameRef(origin, session.Preview))

	s.reset(user.ID)

	if origin != nil && !tracked {
		if _, err := editOrSend(s.messenger, s.logger, *origin, domain.Content{Text: textCancelled}, nil); err != nil {
			return fmt.Errorf("%w: confirm cancel: %v", domain.ErrDelivery, err)
		}
		return nil
	}

	if _, err := s.messenger.Send(user.ID, domain.Content{Text: textCancelled}, nil); err != nil {
		return fmt.Errorf("%w: confirm cancel: %v", domain.ErrDelivery, err)
	}
	return nil
}

// HandleInput feeds a user message to the active dialogue step. handled is
// false when no dialogue expects input.
func (s *ConversationService) HandleInput(user Sender, in Input) (handled bool, err error) {
	session := s.sessions.Get(user.ID)

	if session.State.OwnerOnly() && !s.admission.IsOwner(user.ID) {
		s.sessions.Clear(user.ID)
		return true, domain.ErrOwnerOnly
	}

	switch session.State {
	case domain.StateItemDesc, domain.StateEditDesc:
		return true, s.acceptField(user, session, in, domain.FieldDescription)
	case domain.StatePrice, domain.StateEditPrice:
		return true, s.acceptField(user, session, in, domain.FieldPrice)
	case domain.StateContact, domain.StateEditContact:
		return true, s.acceptField(user, session, in, domain.FieldContact)
	case domain.StateBroadcastMessage:
		return true, s.acceptBroadcastMessage(user, session, in)
	default:
		return false, nil
	}
}

// BeginEdit switches a complete draft into editing one of its fields
func (s *ConversationService) BeginEdit(user Sender, field domain.Field) error {
	session := s.sessions.Get(user.ID)
	if session.State != domain.StateConfirmation {
		return domain.ErrStaleAction
	}

	var next domain.State
	switch field {
	case domain.FieldDescription:
		next = domain.StateEditDesc
	case domain.FieldPrice:
		next = domain.StateEditPrice
	case domain.FieldContact:
		next = domain.StateEditContact
	default:
		return fmt.Errorf("%w: unknown field %d", domain.ErrValidation, field)
	}

	deleteQuietly(s.messenger, s.logger, session.Instruction)
	session.Instruction = nil
	session.State = next

	text := fmt.Sprintf("✏️ Send the new %s (at least %d characters).", field, field.MinLength())
	if field == domain.FieldDescription {
		text = fmt.Sprintf("✏️ Send the new description (at least %d characters). Attach a photo to replace the current one.", field.MinLength())
	}
	return s.prompt(user, session, text)
}

// acceptField validates one field, stores it in the draft and moves to the
// next step. Invalid input re-prompts without changing the state.
func (s *ConversationService) acceptField(user Sender, session *domain.Session, in Input, field domain.Field) error {
	deleteQuietly(s.messenger, s.logger, session.Instruction)
	session.Instruction = nil
	deleteQuietly(s.messenger, s.logger, &in.Ref)

	// only the description may come with media
	if in.FromCaption && field != domain.FieldDescription {
		if promptErr := s.prompt(user, session, fmt.Sprintf("❌ Send the %s as a plain text message.", field)); promptErr != nil {
			s.logger.Warn("Failed to send validation prompt", zap.Int64("user_id", user.ID), zap.Error(promptErr))
		}
		return fmt.Errorf("%w: %s must be plain text", domain.ErrValidation, field)
	}

	value, err := domain.ValidateField(field, in.Text)
	if err != nil {
		if promptErr := s.prompt(user, session, fmt.Sprintf("❌ %s must be at least %d characters.", fieldLabel(field), field.MinLength())); promptErr != nil {
			s.logger.Warn("Failed to send validation prompt", zap.Int64("user_id", user.ID), zap.Error(promptErr))
		}
		return err
	}

	editing := session.State.IsEdit()
	switch field {
	case domain.FieldDescription:
		session.Draft.Description = value
		if !editing || in.PhotoID != "" {
			session.Draft.PhotoID = in.PhotoID
		}
	case domain.FieldPrice:
		session.Draft.Price = value
	case domain.FieldContact:
		session.Draft.Contact = value
	}

	if !editing {
		switch session.State {
		case domain.StateItemDesc:
			session.State = domain.StatePrice
			return s.prompt(user, session, textStepPrice)
		case domain.StatePrice:
			session.State = domain.StateContact
			return s.prompt(user, session, textStepContact)
		}
	}

	session.State = domain.StateConfirmation
	err = s.showPreview(user, session)
	s.sessions.Set(user.ID, session)
	return err
}

// showPreview renders the draft, editing the current preview in place when
// possible
func (s *ConversationService) showPreview(user Sender, session *domain.Session) error {
	content := session.Draft.Content(FormatPreview(session.Draft))
	kb := domain.DraftEditKeyboard()

	if session.Preview != nil {
		err := s.messenger.Edit(*session.Preview, content, kb)
		if err == nil {
			return nil
		}
		s.logger.Debug("Failed to edit preview, sending a new one",
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
		deleteQuietly(s.messenger, s.logger, session.Preview)
		session.Preview = nil
	}

	ref, err := s.messenger.Send(user.ID, content, kb)
	if err != nil {
		return fmt.Errorf("%w: send preview: %v", domain.ErrDelivery, err)
	}
	session.Preview = &ref
	return nil
}

// prompt sends an instruction with the cancel control, records it and
// saves the session
func (s *ConversationService) prompt(user Sender, session *domain.Session, text string) error {
	ref, err := s.messenger.Send(user.ID, domain.Content{Text: text}, domain.CancelKeyboard())
	if err == nil {
		session.Instruction = &ref
	}
	s.sessions.Set(user.ID, session)

	if err != nil {
		return fmt.Errorf("%w: send instruction: %v", domain.ErrDelivery, err)
	}
	return nil
}

// reset removes the dialogue UI of the user's session and clears it
func (s *ConversationService) reset(userID int64) {
	session := s.sessions.Get(userID)
	deleteQuietly(s.messenger, s.logger, session.Instruction)
	deleteQuietly(s.messenger, s.logger, session.Preview)
	s.sessions.Clear(userID)
}

func deniedText(err error, maxPerDay int) string {
	if errors.Is(err, domain.ErrQuotaExceeded) {
		return fmt.Sprintf("🚫 Daily post limit reached (%d per day). Try again tomorrow.", maxPerDay)
	}
	return textAccessDenied
}

func fieldLabel(f domain.Field) string {
	switch f {
	case domain.FieldDescription:
		return "Description"
	case domain.FieldPrice:
		return "Price"
	case domain.FieldContact:
		return "Contact"
	default:
		return "Value"
	}
}

func sameRef(a, b *domain.MessageRef) bool {
	return a != nil && b != nil && *a == *b
}
