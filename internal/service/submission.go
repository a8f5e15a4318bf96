package service

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"predlozhka/internal/domain"
	"predlozhka/internal/metrics"
)

// BeginSubmission enters the first data-entry step. origin is the welcome
// message holding the pressed control; it is turned into the instruction.
func (s *ConversationService) BeginSubmission(user Sender, origin domain.MessageRef) error {
	session := s.sessions.Get(user.ID)
	if session.State != domain.StateStartButton {
		return domain.ErrStaleAction
	}

	if err := s.admission.CheckSubmit(user.ID); err != nil {
		if !errors.Is(err, domain.ErrAccessDenied) {
			return err
		}
		s.sessions.Clear(user.ID)
		if _, sendErr := editOrSend(s.messenger, s.logger, origin, domain.Content{Text: deniedText(err, s.admission.MaxPerDay())}, nil); sendErr != nil {
			s.logger.Warn("Failed to report denied submission", zap.Int64("user_id", user.ID), zap.Error(sendErr))
		}
		return err
	}

	session.State = domain.StateItemDesc
	ref, err := editOrSend(s.messenger, s.logger, origin, domain.Content{Text: textStepDescription}, domain.CancelKeyboard())
	if err != nil {
		session.Instruction = nil
		s.sessions.Set(user.ID, session)
		return fmt.Errorf("%w: send first step: %v", domain.ErrDelivery, err)
	}
	if ref != origin {
		deleteQuietly(s.messenger, s.logger, &origin)
	}
	if session.Instruction != nil && *session.Instruction != origin && *session.Instruction != ref {
		deleteQuietly(s.messenger, s.logger, session.Instruction)
	}
	session.Instruction = &ref
	s.sessions.Set(user.ID, session)
	return nil
}

// FinalSend posts the confirmed draft to the review channel. A quota slot
// is reserved first and released again if the post cannot be queued. The
// session is cleared in every outcome.
func (s *ConversationService) FinalSend(user Sender) error {
	session := s.sessions.Get(user.ID)
	if session.State != domain.StateConfirmation {
		return domain.ErrStaleAction
	}
	s.reset(user.ID)

	reservation, err := s.admission.Reserve(user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrAccessDenied) {
			metrics.SubmissionsTotal.WithLabelValues(metrics.ResultDenied).Inc()
			notify(s.messenger, s.logger, user.ID, deniedText(err, s.admission.MaxPerDay()))
			return err
		}
		metrics.SubmissionsTotal.WithLabelValues(metrics.ResultFailed).Inc()
		notify(s.messenger, s.logger, user.ID, textSendFailed)
		return err
	}

	messageID, err := s.postForReview(user, session.Draft)
	if err != nil {
		if releaseErr := reservation.Release(); releaseErr != nil {
			s.logger.Error("Failed to release daily slot",
				zap.Int64("user_id", user.ID),
				zap.Error(releaseErr),
			)
		}
		metrics.SubmissionsTotal.WithLabelValues(metrics.ResultFailed).Inc()
		notify(s.messenger, s.logger, user.ID, textSendFailed)
		return err
	}
	reservation.Commit()

	metrics.SubmissionsTotal.WithLabelValues(metrics.ResultOK).Inc()
	s.logger.Info("Post sent to moderation",
		zap.Int64("user_id", user.ID),
		zap.Int("message_id", messageID),
	)

	notify(s.messenger, s.logger, user.ID, textSubmitted)
	s.audit.Record("post from %d sent to review", user.ID)
	return nil
}

// postForReview publishes the signed draft to the review channel and queues
// it. A review post that could not be queued is removed again.
func (s *ConversationService) postForReview(user Sender, draft domain.Draft) (int, error) {
	text := AppendSignature(FormatAd(draft), user.ID, AuthorHandle(user.Username))

	ref, err := s.messenger.Send(s.channels.ReviewChatID, draft.Content(text), domain.ModerationKeyboard(user.ID))
	if err != nil {
		return 0, fmt.Errorf("%w: post to review channel: %v", domain.ErrDelivery, err)
	}

	if err := s.moderation.Enqueue(ref.MessageID, user.ID); err != nil {
		deleteQuietly(s.messenger, s.logger, &ref)
		return 0, fmt.Errorf("enqueue review post: %w", err)
	}
	return ref.MessageID, nil
}
