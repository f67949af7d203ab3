package domain

import (
	"context"
	"time"
)

type ComplaintStatus string

const (
	ComplaintNew      ComplaintStatus = "new"
	ComplaintViewed   ComplaintStatus = "viewed"
	ComplaintResolved ComplaintStatus = "resolved"
)

func (s ComplaintStatus) Valid() bool {
	switch s {
	case ComplaintNew, ComplaintViewed, ComplaintResolved:
		return true
	}
	return false
}

type Complaint struct {
	ID                         int64           `json:"id"`
	ReporterUserID             int64           `json:"reporter_user_id"`
	ReportedUserID             *int64          `json:"reported_user_id,omitempty"`
	ReportedEmployerProfileID  *int64          `json:"reported_employer_profile_id,omitempty"`
	ReportedApplicantProfileID *int64          `json:"reported_applicant_profile_id,omitempty"`
	ReasonText                 *string         `json:"reason_text,omitempty"`
	Status                     ComplaintStatus `json:"status"`
	CreatedAt                  time.Time       `json:"created_at"`
}

type ComplaintFilter struct {
	Status *ComplaintStatus
	Limit  int
	Offset int
}

type UpdateComplaintStatusRequest struct {
	Status ComplaintStatus `json:"status" validate:"required,oneof=new viewed resolved"`
}

type ComplaintRepository interface {
	Create(ctx context.Context, c *Complaint) error
	GetByID(ctx context.Context, id int64) (*Complaint, error)
	List(ctx context.Context, f ComplaintFilter) ([]Complaint, int, error)
	UpdateStatus(ctx context.Context, id int64, status ComplaintStatus) error
}

// ComplaintNotifier fans a fresh complaint out to the moderators.
type ComplaintNotifier interface {
	NotifyAdmins(ctx context.Context, c *Complaint)
}

type ComplaintUsecase interface {
	List(ctx context.Context, f ComplaintFilter) ([]Complaint, int, error)
	UpdateStatus(ctx context.Context, id int64, status ComplaintStatus) (*Complaint, error)
}
