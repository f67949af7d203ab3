package domain

import (
	"context"
	"time"
)

// Notice is a one-off message shown before the next screen.
type Notice string

const (
	NoticeLikeSent           Notice = "like_sent"
	NoticeLikeRefreshed      Notice = "like_refreshed"
	NoticeQuestionSent       Notice = "question_sent"
	NoticeQuestionInvalid    Notice = "question_invalid"
	NoticeQuestionCancelled  Notice = "question_cancelled"
	NoticeComplaintAccepted  Notice = "complaint_accepted"
	NoticeLockStarted        Notice = "lock_started"
	NoticeLockEnded          Notice = "lock_ended"
	NoticeTryAgain           Notice = "try_again"
	NoticeProfileChanged     Notice = "profile_changed"
	NoticeFeedExhausted      Notice = "feed_exhausted"
	NoticeBrowsingStopped    Notice = "browsing_stopped"
	NoticeSearchStopped      Notice = "search_stopped"
	NoticeSearchResumed      Notice = "search_resumed"
	NoticeNothingToAct       Notice = "nothing_to_act"
	NoticeQuestionTargetGone Notice = "question_target_gone"
	NoticeSearchInactive     Notice = "search_inactive"
)

type ScreenKind string

const (
	ScreenProfile        ScreenKind = "profile"
	ScreenAntiSpamDummy  ScreenKind = "antispam_dummy"
	ScreenMotivation     ScreenKind = "motivation"
	ScreenQuestionPrompt ScreenKind = "question_prompt"
	ScreenApplicantMenu  ScreenKind = "applicant_menu"
	ScreenRoleSelect     ScreenKind = "role_select"
)

// Screen is the next thing the applicant should see.
type Screen struct {
	Kind       ScreenKind
	Profile    *EmployerProfile
	Content    *MotivationalContent
	DummyText  string
	DummyPhoto string
}

type FeedResponse struct {
	Notices []Notice
	Screen  *Screen
}

func (r *FeedResponse) Notice(n Notice) *FeedResponse {
	r.Notices = append(r.Notices, n)
	return r
}

type FeedAction string

const (
	ActionLike     FeedAction = "like"
	ActionDislike  FeedAction = "dislike"
	ActionQuestion FeedAction = "question"
	ActionReport   FeedAction = "report"
)

func (a FeedAction) Valid() bool {
	switch a {
	case ActionLike, ActionDislike, ActionQuestion, ActionReport:
		return true
	}
	return false
}

type FeedUsecase interface {
	StartBrowsing(ctx context.Context, userID int64) (*FeedResponse, error)
	HandleAction(ctx context.Context, userID int64, action FeedAction) (*FeedResponse, error)
	SubmitQuestion(ctx context.Context, userID int64, text string) (*FeedResponse, error)
	CancelQuestion(ctx context.Context, userID int64) (*FeedResponse, error)
	ResumeAfterMotivation(ctx context.Context, userID int64) (*FeedResponse, error)
	StopBrowsing(ctx context.Context, userID int64) (*FeedResponse, error)
	StopSearch(ctx context.Context, userID int64) (*FeedResponse, error)
	ResumeSearch(ctx context.Context, userID int64) (*FeedResponse, error)
	Mode(ctx context.Context, userID int64) (SessionMode, error)
}

// AntiSpamGovernor tracks action velocity on the session it is handed.
type AntiSpamGovernor interface {
	// Expire lifts an elapsed lock and reports whether it did.
	Expire(s *Session, now time.Time) bool
	// Record counts one action and reports whether it tripped the lock.
	Record(s *Session, now time.Time) bool
	Dummy(ctx context.Context) (text string, photoID string)
}

// QuestionInput is the free text an applicant sends to an employer.
type QuestionInput struct {
	Text string `validate:"required,min=5,max=500"`
}
