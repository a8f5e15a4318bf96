package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"predlozhka/internal/domain"
)

const (
	textStatsMenu       = "📊 Statistics"
	textBroadcastPrompt = "📢 Send the message to broadcast."
	textBroadcastEmpty  = "❌ Nothing to broadcast. Start again with /broadcast."
)

// HelpText lists the commands available to userID
func (s *ConversationService) HelpText(userID int64) string {
	text := "/start - submit a listing\n/cancel - cancel the current action"
	if s.admission.IsOwner(userID) {
		text += "\n\nOwner commands:\n" +
			"/stats - moderation statistics\n" +
			"/broadcast - message every user\n" +
			"/ban <id> [reason] - ban a user\n" +
			"/unban <id> - unban a user\n" +
			"/help - this list"
	}
	return text
}

// BeginBroadcast asks the owner for the message to broadcast
func (s *ConversationService) BeginBroadcast(user Sender) error {
	if !s.admission.IsOwner(user.ID) {
		return domain.ErrOwnerOnly
	}

	s.reset(user.ID)
	return s.prompt(user, domain.NewSession(domain.StateBroadcastMessage), textBroadcastPrompt)
}

// acceptBroadcastMessage remembers the message to broadcast and asks for
// confirmation. The message itself is kept: it is the copy source.
func (s *ConversationService) acceptBroadcastMessage(user Sender, session *domain.Session, in Input) error {
	deleteQuietly(s.messenger, s.logger, session.Instruction)
	session.Instruction = nil

	src := in.Ref
	session.BroadcastSource = &src
	session.State = domain.StateBroadcastConfirm

	audience, err := s.broadcast.AudienceSize()
	if err != nil {
		s.logger.Warn("Failed to count broadcast audience", zap.Error(err))
	}

	ref, err := s.messenger.Send(user.ID, domain.Content{Text: fmt.Sprintf("Send this message to %d users?", audience)}, domain.BroadcastConfirmKeyboard())
	if err == nil {
		session.Instruction = &ref
	}
	s.sessions.Set(user.ID, session)

	if err != nil {
		return fmt.Errorf("%w: ask broadcast confirmation: %v", domain.ErrDelivery, err)
	}
	return nil
}

// ConfirmBroadcast runs the broadcast the owner confirmed on origin. It
// blocks until every recipient was tried or ctx is cancelled.
func (s *ConversationService) ConfirmBroadcast(ctx context.Context, user Sender, origin domain.MessageRef) (BroadcastResult, error) {
	if !s.admission.IsOwner(user.ID) {
		return BroadcastResult{}, domain.ErrOwnerOnly
	}

	session := s.sessions.Get(user.ID)
	if session.State != domain.StateBroadcastConfirm {
		return BroadcastResult{}, domain.ErrStaleAction
	}
	s.sessions.Clear(user.ID)

	if session.BroadcastSource == nil {
		notify(s.messenger, s.logger, user.ID, textBroadcastEmpty)
		return BroadcastResult{}, domain.ErrStaleAction
	}

	audience, err := s.broadcast.AudienceSize()
	if err != nil {
		s.logger.Warn("Failed to count broadcast audience", zap.Error(err))
	}
	if _, err := editOrSend(s.messenger, s.logger, origin, domain.Content{Text: fmt.Sprintf("📢 Broadcasting to %d users...", audience)}, nil); err != nil {
		s.logger.Warn("Failed to report broadcast start", zap.Error(err))
	}

	result, err := s.broadcast.Run(ctx, *session.BroadcastSource)
	if err != nil && ctx.Err() == nil {
		notify(s.messenger, s.logger, user.ID, "❌ Broadcast failed.")
		return result, err
	}

	notify(s.messenger, s.logger, user.ID, fmt.Sprintf("✅ Broadcast finished.\nDelivered: %d\nFailed: %d", result.Success, result.Failed))
	s.audit.Record("broadcast finished: %d delivered, %d failed", result.Success, result.Failed)
	return result, err
}

// OpenStats shows the statistics menu to the owner
func (s *ConversationService) OpenStats(user Sender) error {
	if !s.admission.IsOwner(user.ID) {
		return domain.ErrOwnerOnly
	}

	s.reset(user.ID)

	session := domain.NewSession(domain.StateStatsMenu)
	ref, err := s.messenger.Send(user.ID, domain.Content{Text: textStatsMenu}, domain.StatsMenuKeyboard())
	if err != nil {
		return fmt.Errorf("%w: send stats menu: %v", domain.ErrDelivery, err)
	}
	session.Instruction = &ref
	s.sessions.Set(user.ID, session)
	return nil
}

// ShowStats replaces the menu on origin with the report for period
func (s *ConversationService) ShowStats(user Sender, origin domain.MessageRef, period domain.Period) error {
	if !s.admission.IsOwner(user.ID) {
		return domain.ErrOwnerOnly
	}

	report, err := s.stats.Report(period)
	if err != nil {
		return fmt.Errorf("build %s report: %w", period, err)
	}
	return s.showStatsView(user, origin, report, domain.StatsBackKeyboard())
}

// ShowStatsMenu returns from a report to the menu
func (s *ConversationService) ShowStatsMenu(user Sender, origin domain.MessageRef) error {
	if !s.admission.IsOwner(user.ID) {
		return domain.ErrOwnerOnly
	}
	return s.showStatsView(user, origin, textStatsMenu, domain.StatsMenuKeyboard())
}

// CloseStats removes the menu on origin
func (s *ConversationService) CloseStats(user Sender, origin domain.MessageRef) error {
	if !s.admission.IsOwner(user.ID) {
		return domain.ErrOwnerOnly
	}

	deleteQuietly(s.messenger, s.logger, &origin)
	if s.sessions.Get(user.ID).State == domain.StateStatsMenu {
		s.sessions.Clear(user.ID)
	}
	return nil
}

func (s *ConversationService) showStatsView(user Sender, origin domain.MessageRef, text string, kb *domain.Keyboard) error {
	ref, err := editOrSend(s.messenger, s.logger, origin, domain.Content{Text: text}, kb)
	if err != nil {
		return fmt.Errorf("%w: show stats: %v", domain.ErrDelivery, err)
	}

	// a menu that outlived its session must not override another dialogue
	if s.sessions.Get(user.ID).State != domain.StateStatsMenu {
		return nil
	}
	session := domain.NewSession(domain.StateStatsMenu)
	session.Instruction = &ref
	s.sessions.Set(user.ID, session)
	return nil
}

// Ban puts target on the ban list on behalf of the owner
func (s *ConversationService) Ban(owner Sender, target int64, reason string) error {
	if !s.admission.IsOwner(owner.ID) {
		return domain.ErrOwnerOnly
	}
	if err := s.admission.Ban(target, owner.ID, reason); err != nil {
		return err
	}
	if reason == "" {
		reason = domain.DefaultBanReason
	}
	s.audit.Record("user %d banned by %d, reason: %s", target, owner.ID, reason)
	return nil
}

// Unban removes target from the ban list on behalf of the owner
func (s *ConversationService) Unban(owner Sender, target int64) (bool, error) {
	if !s.admission.IsOwner(owner.ID) {
		return false, domain.ErrOwnerOnly
	}
	removed, err := s.admission.Unban(target)
	if err != nil {
		return false, err
	}
	if removed {
		s.audit.Record("user %d unbanned by %d", target, owner.ID)
	}
	return removed, nil
}
