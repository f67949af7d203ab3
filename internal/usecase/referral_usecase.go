package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go-jobmatch-bot/internal/domain"
	"go-jobmatch-bot/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	referralCodeLength   = 10
	referralCodeAttempts = 3
)

type referralUsecase struct {
	repo     domain.ReferralRepository
	validate *validator.Validate
	newCode  func() string
}

func NewReferralUsecase(repo domain.ReferralRepository, validate *validator.Validate) domain.ReferralUsecase {
	return &referralUsecase{repo: repo, validate: validate, newCode: newReferralCode}
}

func newReferralCode() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:referralCodeLength]
}

func (u *referralUsecase) CreateLink(ctx context.Context, req *domain.CreateReferralLinkRequest) (*domain.ReferralLink, error) {
	if err := u.validate.Struct(req); err != nil {
		return nil, err
	}

	var err error
	for attempt := 0; attempt < referralCodeAttempts; attempt++ {
		link := &domain.ReferralLink{Code: u.newCode(), Name: strings.TrimSpace(req.Name)}
		err = u.repo.Create(ctx, link)
		if err == nil {
			return link, nil
		}
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) || appErr.Code != http.StatusConflict {
			return nil, err
		}
	}
	return nil, err
}
