package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go-jobmatch-bot/internal/domain"
	"go-jobmatch-bot/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEmployerNotifierNotify(t *testing.T) {
	ctx := context.Background()
	const employer = int64(50)

	t.Run("First response sends a new message and stores its id", func(t *testing.T) {
		employers := new(MockEmployerRepo)
		messenger := new(MockMessenger)
		n := usecase.NewEmployerNotifier(employers, messenger)

		employers.On("NotificationState", ctx, employer).Return(&domain.NotificationState{ProfileID: 10, Unread: 1}, nil)
		messenger.On("SendText", ctx, employer, "You have 1 new response", mock.Anything).Return(42, nil)
		employers.On("SetNotificationMessageID", ctx, int64(10), ptr(42)).Return(nil)

		require.NoError(t, n.Notify(ctx, employer, domain.InteractionLike))
		employers.AssertExpectations(t)
		messenger.AssertNotCalled(t, "EditText", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	for _, outcome := range []domain.EditOutcome{domain.EditApplied, domain.EditUnchanged} {
		t.Run("Edit "+outcome.String()+" keeps the message", func(t *testing.T) {
			employers := new(MockEmployerRepo)
			messenger := new(MockMessenger)
			n := usecase.NewEmployerNotifier(employers, messenger)

			employers.On("NotificationState", ctx, employer).Return(&domain.NotificationState{ProfileID: 10, MessageID: ptr(42), Unread: 3}, nil)
			messenger.On("EditText", ctx, employer, 42, "You have 3 new responses", mock.Anything).Return(outcome, nil)

			require.NoError(t, n.Notify(ctx, employer, domain.InteractionQuestion))
			messenger.AssertNotCalled(t, "SendText", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			messenger.AssertNotCalled(t, "DeleteMessage", mock.Anything, mock.Anything, mock.Anything)
			employers.AssertNotCalled(t, "SetNotificationMessageID", mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("Failed edit deletes and resends", func(t *testing.T) {
		employers := new(MockEmployerRepo)
		messenger := new(MockMessenger)
		n := usecase.NewEmployerNotifier(employers, messenger)

		employers.On("NotificationState", ctx, employer).Return(&domain.NotificationState{ProfileID: 10, MessageID: ptr(42), Unread: 2}, nil)
		messenger.On("EditText", ctx, employer, 42, mock.Anything, mock.Anything).Return(domain.EditFailed, errors.New("message to edit not found"))
		messenger.On("DeleteMessage", ctx, employer, 42).Return(errors.New("already gone"))
		messenger.On("SendText", ctx, employer, "You have 2 new responses", mock.Anything).Return(77, nil)
		employers.On("SetNotificationMessageID", ctx, int64(10), ptr(77)).Return(nil)

		require.NoError(t, n.Notify(ctx, employer, domain.InteractionLike))
		messenger.AssertExpectations(t)
		employers.AssertExpectations(t)
	})

	t.Run("Failed resend clears the stored id", func(t *testing.T) {
		employers := new(MockEmployerRepo)
		messenger := new(MockMessenger)
		n := usecase.NewEmployerNotifier(employers, messenger)

		employers.On("NotificationState", ctx, employer).Return(&domain.NotificationState{ProfileID: 10, MessageID: ptr(42), Unread: 2}, nil)
		messenger.On("EditText", ctx, employer, 42, mock.Anything, mock.Anything).Return(domain.EditFailed, errors.New("boom"))
		messenger.On("DeleteMessage", ctx, employer, 42).Return(nil)
		messenger.On("SendText", ctx, employer, mock.Anything, mock.Anything).Return(0, errors.New("bot was blocked"))
		employers.On("SetNotificationMessageID", ctx, int64(10), (*int)(nil)).Return(nil)

		require.NoError(t, n.Notify(ctx, employer, domain.InteractionLike))
		employers.AssertExpectations(t)
	})

	t.Run("Zero unread removes the message", func(t *testing.T) {
		employers := new(MockEmployerRepo)
		messenger := new(MockMessenger)
		n := usecase.NewEmployerNotifier(employers, messenger)

		employers.On("NotificationState", ctx, employer).Return(&domain.NotificationState{ProfileID: 10, MessageID: ptr(42)}, nil)
		messenger.On("DeleteMessage", ctx, employer, 42).Return(nil)
		employers.On("SetNotificationMessageID", ctx, int64(10), (*int)(nil)).Return(nil)

		require.NoError(t, n.Notify(ctx, employer, domain.InteractionLike))
		messenger.AssertExpectations(t)
		employers.AssertExpectations(t)
	})

	t.Run("Employer without profile is skipped", func(t *testing.T) {
		employers := new(MockEmployerRepo)
		messenger := new(MockMessenger)
		n := usecase.NewEmployerNotifier(employers, messenger)

		employers.On("NotificationState", ctx, employer).Return(nil, domain.ErrNotFound)
		assert.NoError(t, n.Notify(ctx, employer, domain.InteractionLike))
		messenger.AssertNotCalled(t, "SendText", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Consecutive responses share one message", func(t *testing.T) {
		employers := new(MockEmployerRepo)
		messenger := new(MockMessenger)
		n := usecase.NewEmployerNotifier(employers, messenger)

		employers.On("NotificationState", ctx, employer).Return(&domain.NotificationState{ProfileID: 10, Unread: 1}, nil).Once()
		messenger.On("SendText", ctx, employer, "You have 1 new response", mock.Anything).Return(42, nil).Once()
		employers.On("SetNotificationMessageID", ctx, int64(10), ptr(42)).Return(nil).Once()

		employers.On("NotificationState", ctx, employer).Return(&domain.NotificationState{ProfileID: 10, MessageID: ptr(42), Unread: 2}, nil).Once()
		messenger.On("EditText", ctx, employer, 42, "You have 2 new responses", mock.Anything).Return(domain.EditApplied, nil).Once()

		require.NoError(t, n.Notify(ctx, employer, domain.InteractionLike))
		require.NoError(t, n.Notify(ctx, employer, domain.InteractionLike))

		messenger.AssertNumberOfCalls(t, "SendText", 1)
		messenger.AssertNumberOfCalls(t, "EditText", 1)
	})
}

func TestNotificationText(t *testing.T) {
	assert.Equal(t, "You have 1 new response", usecase.NotificationText(1))
	assert.Equal(t, "You have 4 new responses", usecase.NotificationText(4))
}

func TestEmployerNotifierDismiss(t *testing.T) {
	ctx := context.Background()
	const employer = int64(50)

	t.Run("Opened notification loses its button", func(t *testing.T) {
		employers := new(MockEmployerRepo)
		messenger := new(MockMessenger)
		n := usecase.NewEmployerNotifier(employers, messenger)

		employers.On("NotificationState", ctx, employer).Return(&domain.NotificationState{ProfileID: 10, MessageID: ptr(42), Unread: 1}, nil)
		messenger.On("EditText", ctx, employer, 42, "Responses opened.", (*domain.Keyboard)(nil)).Return(domain.EditApplied, nil)
		employers.On("SetNotificationMessageID", ctx, int64(10), (*int)(nil)).Return(nil)

		require.NoError(t, n.Dismiss(ctx, employer))
		messenger.AssertExpectations(t)
		employers.AssertExpectations(t)
		messenger.AssertNotCalled(t, "DeleteMessage", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failed edit deletes the message", func(t *testing.T) {
		employers := new(MockEmployerRepo)
		messenger := new(MockMessenger)
		n := usecase.NewEmployerNotifier(employers, messenger)

		employers.On("NotificationState", ctx, employer).Return(&domain.NotificationState{ProfileID: 10, MessageID: ptr(42), Unread: 1}, nil)
		messenger.On("EditText", ctx, employer, 42, mock.Anything, mock.Anything).Return(domain.EditFailed, errors.New("message to edit not found"))
		messenger.On("DeleteMessage", ctx, employer, 42).Return(nil)
		employers.On("SetNotificationMessageID", ctx, int64(10), (*int)(nil)).Return(nil)

		require.NoError(t, n.Dismiss(ctx, employer))
		messenger.AssertExpectations(t)
		employers.AssertExpectations(t)
	})

	t.Run("Nothing stored leaves the chat alone", func(t *testing.T) {
		employers := new(MockEmployerRepo)
		messenger := new(MockMessenger)
		n := usecase.NewEmployerNotifier(employers, messenger)

		employers.On("NotificationState", ctx, employer).Return(&domain.NotificationState{ProfileID: 10, Unread: 1}, nil)

		require.NoError(t, n.Dismiss(ctx, employer))
		messenger.AssertNotCalled(t, "EditText", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		employers.AssertNotCalled(t, "SetNotificationMessageID", mock.Anything, mock.Anything, mock.Anything)
	})
}

// notificationStore keeps the stored message id and unread count the way the
// employer profile row does.
type notificationStore struct {
	domain.EmployerRepository
	messageID *int
	unread    int
}

func (s *notificationStore) NotificationState(context.Context, int64) (*domain.NotificationState, error) {
	return &domain.NotificationState{ProfileID: 10, MessageID: s.messageID, Unread: s.unread}, nil
}

func (s *notificationStore) SetNotificationMessageID(_ context.Context, _ int64, id *int) error {
	s.messageID = id
	return nil
}

type chatMessage struct {
	text string
	kb   *domain.Keyboard
}

// chatLog is a single chat that applies sends, edits and deletes.
type chatLog struct {
	domain.Messenger
	nextID   int
	messages map[int]chatMessage
}

func newChatLog() *chatLog { return &chatLog{messages: map[int]chatMessage{}} }

func (c *chatLog) SendText(_ context.Context, _ int64, text string, kb *domain.Keyboard) (int, error) {
	c.nextID++
	c.messages[c.nextID] = chatMessage{text: text, kb: kb}
	return c.nextID, nil
}

func (c *chatLog) EditText(_ context.Context, _ int64, id int, text string, kb *domain.Keyboard) (domain.EditOutcome, error) {
	if _, ok := c.messages[id]; !ok {
		return domain.EditFailed, errors.New("message to edit not found")
	}
	c.messages[id] = chatMessage{text: text, kb: kb}
	return domain.EditApplied, nil
}

func (c *chatLog) DeleteMessage(_ context.Context, _ int64, id int) error {
	delete(c.messages, id)
	return nil
}

// withViewButton returns the messages that still offer "View responses".
func (c *chatLog) withViewButton() []int {
	var ids []int
	for id, m := range c.messages {
		if m.kb == nil {
			continue
		}
		for _, row := range m.kb.Rows {
			for _, b := range row {
				if b.Data == domain.CallbackViewResponses {
					ids = append(ids, id)
				}
			}
		}
	}
	return ids
}

func TestEmployerNotifierLifecycleAcrossView(t *testing.T) {
	ctx := context.Background()
	const employer = int64(50)

	store := &notificationStore{}
	chat := newChatLog()
	n := usecase.NewEmployerNotifier(store, chat)

	store.unread = 1
	require.NoError(t, n.Notify(ctx, employer, domain.InteractionLike))
	assert.Len(t, chat.withViewButton(), 1)

	require.NoError(t, n.Dismiss(ctx, employer))
	assert.Empty(t, chat.withViewButton())
	assert.Nil(t, store.messageID)

	store.unread = 2
	require.NoError(t, n.Notify(ctx, employer, domain.InteractionLike))

	live := chat.withViewButton()
	require.Len(t, live, 1)
	assert.Equal(t, "You have 2 new responses", chat.messages[live[0]].text)
	require.NotNil(t, store.messageID)
	assert.Equal(t, live[0], *store.messageID)

	store.unread = 3
	require.NoError(t, n.Notify(ctx, employer, domain.InteractionQuestion))
	assert.Len(t, chat.withViewButton(), 1)
	assert.Equal(t, "You have 3 new responses", chat.messages[*store.messageID].text)
}
