package usecase

import (
	"context"

	"go-jobmatch-bot/internal/domain"
	"go-jobmatch-bot/pkg/apperror"
)

const (
	defaultComplaintPageSize = 20
	maxComplaintPageSize     = 100
)

type complaintUsecase struct {
	repo domain.ComplaintRepository
}

func NewComplaintUsecase(repo domain.ComplaintRepository) domain.ComplaintUsecase {
	return &complaintUsecase{repo: repo}
}

func (u *complaintUsecase) List(ctx context.Context, f domain.ComplaintFilter) ([]domain.Complaint, int, error) {
	if f.Status != nil && !f.Status.Valid() {
		return nil, 0, apperror.BadRequest("Unknown complaint status")
	}
	if f.Limit < 1 {
		f.Limit = defaultComplaintPageSize
	}
	if f.Limit > maxComplaintPageSize {
		f.Limit = maxComplaintPageSize
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return u.repo.List(ctx, f)
}

func (u *complaintUsecase) UpdateStatus(ctx context.Context, id int64, status domain.ComplaintStatus) (*domain.Complaint, error) {
	if !status.Valid() {
		return nil, apperror.BadRequest("Unknown complaint status")
	}
	if err := u.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return u.repo.GetByID(ctx, id)
}
