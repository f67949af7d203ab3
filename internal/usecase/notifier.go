package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go-jobmatch-bot/internal/domain"
	"go-jobmatch-bot/pkg/logger"

	"go.uber.org/zap"
)

const notificationOpenedText = "Responses opened."

func NotificationText(unread int) string {
	if unread == 1 {
		return "You have 1 new response"
	}
	return fmt.Sprintf("You have %d new responses", unread)
}

func notificationKeyboard() *domain.Keyboard {
	return domain.InlineKeyboard(domain.Row(domain.Button{Text: "View responses", Data: domain.CallbackViewResponses}))
}

type employerNotifier struct {
	employers domain.EmployerRepository
	messenger domain.Messenger
	locks     sync.Map // employer user id -> *sync.Mutex
}

func NewEmployerNotifier(employers domain.EmployerRepository, messenger domain.Messenger) domain.EmployerNotifier {
	return &employerNotifier{employers: employers, messenger: messenger}
}

func (n *employerNotifier) lock(employerUserID int64) func() {
	v, _ := n.locks.LoadOrStore(employerUserID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// Notify keeps exactly one "new responses" message per employer in sync
// with the unread count in the ledger.
func (n *employerNotifier) Notify(ctx context.Context, employerUserID int64, t domain.InteractionType) error {
	unlock := n.lock(employerUserID)
	defer unlock()

	st, err := n.employers.NotificationState(ctx, employerUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger.Log.Debug("No employer profile to notify", zap.Int64("employer_user_id", employerUserID))
			return nil
		}
		return fmt.Errorf("load notification state: %w", err)
	}

	if st.Unread == 0 {
		if st.MessageID == nil {
			return nil
		}
		n.deleteBestEffort(ctx, employerUserID, *st.MessageID)
		return n.employers.SetNotificationMessageID(ctx, st.ProfileID, nil)
	}

	text := NotificationText(st.Unread)
	kb := notificationKeyboard()

	if st.MessageID != nil {
		outcome, err := n.messenger.EditText(ctx, employerUserID, *st.MessageID, text, kb)
		if outcome == domain.EditApplied || outcome == domain.EditUnchanged {
			return nil
		}
		logger.Log.Warn("Failed to edit response notification",
			zap.Int64("employer_user_id", employerUserID),
			zap.Int("message_id", *st.MessageID),
			zap.String("trigger", string(t)),
			zap.Error(err),
		)
		n.deleteBestEffort(ctx, employerUserID, *st.MessageID)
	}

	var stored *int
	id, err := n.messenger.SendText(ctx, employerUserID, text, kb)
	if err != nil {
		logger.Log.Warn("Failed to send response notification",
			zap.Int64("employer_user_id", employerUserID), zap.Error(err))
	} else {
		stored = &id
	}

	if stored == nil && st.MessageID == nil {
		return nil
	}
	return n.employers.SetNotificationMessageID(ctx, st.ProfileID, stored)
}

// Dismiss retires the stored message once the employer has opened it: the
// button is edited away, or the message deleted when the edit fails.
func (n *employerNotifier) Dismiss(ctx context.Context, employerUserID int64) error {
	unlock := n.lock(employerUserID)
	defer unlock()

	st, err := n.employers.NotificationState(ctx, employerUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	if st.MessageID == nil {
		return nil
	}
	outcome, err := n.messenger.EditText(ctx, employerUserID, *st.MessageID, notificationOpenedText, nil)
	if outcome == domain.EditFailed {
		logger.Log.Debug("Failed to retire response notification",
			zap.Int64("employer_user_id", employerUserID),
			zap.Int("message_id", *st.MessageID),
			zap.Error(err),
		)
		n.deleteBestEffort(ctx, employerUserID, *st.MessageID)
	}
	return n.employers.SetNotificationMessageID(ctx, st.ProfileID, nil)
}

func (n *employerNotifier) deleteBestEffort(ctx context.Context, chatID int64, messageID int) {
	if err := n.messenger.DeleteMessage(ctx, chatID, messageID); err != nil {
		logger.Log.Debug("Failed to delete stale notification",
			zap.Int64("chat_id", chatID), zap.Int("message_id", messageID), zap.Error(err))
	}
}
