package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-jobmatch-bot/internal/domain"
	"go-jobmatch-bot/pkg/logger"

	"go.uber.org/zap"
)

type userUsecase struct {
	users      domain.UserRepository
	applicants domain.ApplicantRepository
	employers  domain.EmployerRepository
	referrals  domain.ReferralRepository
	sessions   domain.SessionStore
	now        func() time.Time
}

func NewUserUsecase(
	users domain.UserRepository,
	applicants domain.ApplicantRepository,
	employers domain.EmployerRepository,
	referrals domain.ReferralRepository,
	sessions domain.SessionStore,
) domain.UserUsecase {
	return &userUsecase{
		users:      users,
		applicants: applicants,
		employers:  employers,
		referrals:  referrals,
		sessions:   sessions,
		now:        time.Now,
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Start resets the conversation, registers or refreshes the user and picks
// the screen to land on.
func (u *userUsecase) Start(ctx context.Context, in domain.StartInput) (*domain.StartResult, error) {
	if err := u.sessions.Delete(ctx, in.TelegramID); err != nil {
		logger.Log.Warn("Failed to clear session on start", zap.Int64("user_id", in.TelegramID), zap.Error(err))
	}

	now := u.now()
	user := &domain.User{
		TelegramID:       in.TelegramID,
		Username:         optional(in.Username),
		FirstName:        optional(in.FirstName),
		LastName:         optional(in.LastName),
		RegistrationDate: now,
		LastActivityDate: now,
	}
	if err := u.users.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	if code := strings.TrimSpace(in.ReferralCode); code != "" {
		u.recordReferral(ctx, code, in.TelegramID, now)
	}

	res := &domain.StartResult{Destination: domain.DestinationRoleSelect, DisplayName: user.DisplayName()}
	if user.Role == nil {
		return res, nil
	}

	var err error
	switch *user.Role {
	case domain.RoleApplicant:
		if _, err = u.applicants.GetByUserID(ctx, in.TelegramID); err == nil {
			res.Destination = domain.DestinationApplicantMenu
		}
	case domain.RoleEmployer:
		if _, err = u.employers.GetByUserID(ctx, in.TelegramID); err == nil {
			res.Destination = domain.DestinationEmployerMenu
		}
	}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return res, nil
}

func (u *userUsecase) recordReferral(ctx context.Context, code string, userID int64, at time.Time) {
	link, err := u.referrals.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger.Log.Warn("Unknown referral code", zap.String("code", code), zap.Int64("user_id", userID))
		} else {
			logger.Log.Error("Failed to look up referral code", zap.String("code", code), zap.Error(err))
		}
		return
	}
	if err := u.referrals.RecordUsage(ctx, link.ID, userID, at); err != nil {
		logger.Log.Error("Failed to record referral usage", zap.Int64("link_id", link.ID), zap.Error(err))
	}
}

// CheckAccess touches the activity timestamp and reports whether the user
// may continue. Unknown users and storage failures are let through.
func (u *userUsecase) CheckAccess(ctx context.Context, telegramID int64) (bool, error) {
	banned, err := u.users.TouchActivity(ctx, telegramID, u.now())
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Log.Error("Access check failed, letting update through", zap.Int64("user_id", telegramID), zap.Error(err))
		}
		return true, nil
	}
	return !banned, nil
}
