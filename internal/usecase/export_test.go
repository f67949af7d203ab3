package usecase

import (
	"time"

	"go-jobmatch-bot/internal/domain"
)

func SetSelectorClock(s domain.CandidateSelector, now func() time.Time) {
	s.(*candidateSelector).now = now
}

func SetLedgerClock(l domain.InteractionLedger, now func() time.Time) {
	l.(*interactionLedger).now = now
}

func SetResponseClock(u domain.ResponseUsecase, now func() time.Time) {
	u.(*responseUsecase).now = now
}

func SetUserClock(u domain.UserUsecase, now func() time.Time) {
	u.(*userUsecase).now = now
}

func SetReengagementClock(u domain.ReengagementUsecase, now func() time.Time) {
	u.(*reengagementUsecase).now = now
}

func SetReferralCodes(u domain.ReferralUsecase, next func() string) {
	u.(*referralUsecase).newCode = next
}
