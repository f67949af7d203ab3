package telegram

import (
	"fmt"
	"strconv"

	"go-jobmatch-bot/internal/domain"
)

// Reply keyboard labels. The router matches incoming text against them.
const (
	BtnLike          = "❤️ Like"
	BtnDislike       = "👎 Skip"
	BtnQuestion      = "❓ Ask a question"
	BtnReport        = "⚠️ Report"
	BtnStopBrowsing  = "🏠 Menu"
	BtnCancel        = "↩️ Cancel"
	BtnBrowse        = "🔍 Find jobs"
	BtnStopSearch    = "⏸ Stop search"
	BtnResumeSearch  = "▶️ Resume search"
	BtnViewResponses = "📬 View responses"
)

func button(text string) domain.Button { return domain.Button{Text: text} }

func feedKeyboard() *domain.Keyboard {
	return domain.ReplyKeyboard(
		domain.Row(button(BtnLike), button(BtnDislike)),
		domain.Row(button(BtnQuestion), button(BtnReport)),
		domain.Row(button(BtnStopBrowsing)),
	)
}

func questionKeyboard() *domain.Keyboard {
	return domain.ReplyKeyboard(domain.Row(button(BtnCancel)))
}

func applicantMenuKeyboard() *domain.Keyboard {
	return domain.ReplyKeyboard(
		domain.Row(button(BtnBrowse)),
		domain.Row(button(BtnStopSearch), button(BtnResumeSearch)),
	)
}

func employerMenuKeyboard() *domain.Keyboard {
	return domain.ReplyKeyboard(domain.Row(button(BtnViewResponses)))
}

func motivationKeyboard() *domain.Keyboard {
	return domain.InlineKeyboard(domain.Row(domain.Button{Text: "▶️ Continue", Data: domain.CallbackResumeBrowsing}))
}

func responseKeyboard(applicantUserID int64, remaining int) *domain.Keyboard {
	rows := [][]domain.Button{
		domain.Row(domain.Button{Text: "🚩 Report", Data: domain.CallbackReportApplicantPrefix + strconv.FormatInt(applicantUserID, 10)}),
	}
	if remaining > 0 {
		rows = append(rows, domain.Row(domain.Button{Text: fmt.Sprintf("➡️ Next (%d)", remaining), Data: domain.CallbackNextResponse}))
	}
	return domain.InlineKeyboard(rows...)
}
