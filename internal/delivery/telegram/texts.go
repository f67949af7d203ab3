package telegram

import (
	"fmt"
	"strings"

	"go-jobmatch-bot/internal/domain"
)

const (
	textGenericError     = "Something went wrong. Please try again."
	textAccessRestricted = "Access to the bot is restricted."
	textUseButtons       = "Please use the buttons below."
	textQuestionPrompt   = "Type your question for the employer (5 to 500 characters)."
	textApplicantMenu    = "Main menu"
	textEmployerMenu     = "Employer menu"
	textRoleSelect       = "Welcome! Complete your applicant or employer profile to get started."
	textNoResponses      = "You have no new responses."
	textResponseGone     = "This response is no longer available. Take the next one."
	textReportSent       = "Complaint sent to moderators."
	textReportForbidden  = "This applicant can no longer be reported."
	textKeepWatching     = "Tap Continue to get back to vacancies."
	textMotivationBreak  = "A short break before the next vacancies."
)

var noticeTexts = map[domain.Notice]string{
	domain.NoticeLikeSent:           "Like sent! The employer will see your response.",
	domain.NoticeLikeRefreshed:      "You have already responded to this vacancy. We reminded the employer about you.",
	domain.NoticeQuestionSent:       "Your question has been sent to the employer.",
	domain.NoticeQuestionInvalid:    "The question must be between 5 and 500 characters. Try again or cancel.",
	domain.NoticeQuestionCancelled:  "Question cancelled.",
	domain.NoticeComplaintAccepted:  "Complaint accepted. Moderators will review it.",
	domain.NoticeLockStarted:        "Your activity is too high. Please slow down.",
	domain.NoticeLockEnded:          "The pause is over, let's continue.",
	domain.NoticeTryAgain:           "This vacancy is no longer available. Try the next one.",
	domain.NoticeProfileChanged:     "Your profile has changed or is no longer active.",
	domain.NoticeFeedExhausted:      "No suitable vacancies right now. Come back later!",
	domain.NoticeBrowsingStopped:    "Browsing stopped.",
	domain.NoticeSearchStopped:      "Your search is paused. Employers will not see you until you resume.",
	domain.NoticeSearchResumed:      "Search resumed!",
	domain.NoticeNothingToAct:       "There is nothing to respond to right now.",
	domain.NoticeQuestionTargetGone: "This vacancy is no longer available.",
	domain.NoticeSearchInactive:     "Your search is paused. Resume it to see vacancies.",
}

var workFormatLabels = map[domain.WorkFormat]string{
	domain.WorkFormatOffline: "Offline",
	domain.WorkFormatOnline:  "Online",
	domain.WorkFormatHybrid:  "Hybrid",
}

var genderLabels = map[domain.Gender]string{
	domain.GenderMale:   "Male",
	domain.GenderFemale: "Female",
	domain.GenderOther:  "Other",
}

func profileText(p *domain.EmployerProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🏢 %s\n", p.CompanyName)
	fmt.Fprintf(&b, "💼 %s\n", p.Position)
	fmt.Fprintf(&b, "📍 %s\n", p.City)
	if p.Salary != "" {
		fmt.Fprintf(&b, "💰 %s\n", p.Salary)
	}
	if label, ok := workFormatLabels[p.WorkFormat]; ok {
		fmt.Fprintf(&b, "🕒 %s\n", label)
	}
	if p.MinAgeCandidate != nil {
		fmt.Fprintf(&b, "👤 Age %d+\n", *p.MinAgeCandidate)
	}
	if d := strings.TrimSpace(p.Description); d != "" {
		b.WriteString("\n")
		b.WriteString(d)
	}
	return strings.TrimRight(b.String(), "\n")
}

func responseText(card *domain.ResponseCard) string {
	if card.Incomplete() {
		return textResponseGone
	}

	var b strings.Builder
	b.WriteString("New response!\n\n")
	name := card.User.DisplayName()
	if card.User.LastName != nil && *card.User.LastName != "" {
		name += " " + *card.User.LastName
	}
	fmt.Fprintf(&b, "👤 %s", name)
	if card.User.Username != nil && *card.User.Username != "" {
		fmt.Fprintf(&b, " (@%s)", *card.User.Username)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "📍 %s\n", card.Applicant.City)
	if g, ok := genderLabels[card.Applicant.Gender]; ok {
		fmt.Fprintf(&b, "⚧ %s\n", g)
	}
	fmt.Fprintf(&b, "🎂 %d\n", card.Applicant.Age)
	if e := strings.TrimSpace(card.Applicant.Experience); e != "" {
		fmt.Fprintf(&b, "📝 %s\n", e)
	}
	if card.User.ContactPhone != nil {
		fmt.Fprintf(&b, "📞 %s\n", *card.User.ContactPhone)
	}

	b.WriteString("\n")
	if q := card.Interaction.QuestionText; q != nil && card.Interaction.Type == domain.InteractionQuestion {
		fmt.Fprintf(&b, "❓ Question: %s", *q)
	} else {
		b.WriteString("❤️ Liked your vacancy")
	}
	return b.String()
}

func captionOf(text string) string {
	r := []rune(text)
	if len(r) <= domain.MaxCaptionLength {
		return text
	}
	return string(r[:domain.MaxCaptionLength])
}
