package domain

import "context"

type Button struct {
	Text string
	Data string
}

// Keyboard is an inline keyboard unless Reply is set, in which case Data is ignored.
// Remove hides the current reply keyboard and carries no rows.
type Keyboard struct {
	Rows   [][]Button
	Reply  bool
	Remove bool
}

func InlineKeyboard(rows ...[]Button) *Keyboard {
	return &Keyboard{Rows: rows}
}

func ReplyKeyboard(rows ...[]Button) *Keyboard {
	return &Keyboard{Rows: rows, Reply: true}
}

func RemoveKeyboard() *Keyboard {
	return &Keyboard{Remove: true}
}

func Row(buttons ...Button) []Button { return buttons }

type EditOutcome int

const (
	EditApplied EditOutcome = iota
	EditUnchanged
	EditFailed
)

func (o EditOutcome) String() string {
	switch o {
	case EditApplied:
		return "applied"
	case EditUnchanged:
		return "unchanged"
	default:
		return "failed"
	}
}

// Messenger is the outbound chat port. Send methods return the new message id.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string, kb *Keyboard) (int, error)
	SendPhoto(ctx context.Context, chatID int64, fileID, caption string, kb *Keyboard) (int, error)
	SendVideo(ctx context.Context, chatID int64, fileID, caption string, kb *Keyboard) (int, error)
	EditText(ctx context.Context, chatID int64, messageID int, text string, kb *Keyboard) (EditOutcome, error)
	EditCaption(ctx context.Context, chatID int64, messageID int, caption string, kb *Keyboard) (EditOutcome, error)
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	AnswerCallback(ctx context.Context, callbackID, text string) error
}

// Callback payloads shared by the notifier and the update router.
const (
	CallbackViewResponses         = "view_unread_responses"
	CallbackNextResponse          = "next_response"
	CallbackReportApplicantPrefix = "report_appl:"
	CallbackResumeBrowsing        = "resume_browsing"
)
