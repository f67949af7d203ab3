package usecase

import (
	"context"
	"fmt"
	"strings"

	"go-jobmatch-bot/internal/domain"
	"go-jobmatch-bot/pkg/logger"

	"go.uber.org/zap"
)

type complaintNotifier struct {
	messenger  domain.Messenger
	employers  domain.EmployerRepository
	applicants domain.ApplicantRepository
	adminIDs   []int64
}

func NewComplaintNotifier(messenger domain.Messenger, employers domain.EmployerRepository, applicants domain.ApplicantRepository, adminIDs []int64) domain.ComplaintNotifier {
	return &complaintNotifier{
		messenger:  messenger,
		employers:  employers,
		applicants: applicants,
		adminIDs:   adminIDs,
	}
}

func (n *complaintNotifier) NotifyAdmins(ctx context.Context, c *domain.Complaint) {
	if len(n.adminIDs) == 0 || c == nil {
		return
	}

	text := n.describe(ctx, c)
	for _, adminID := range n.adminIDs {
		if _, err := n.messenger.SendText(ctx, adminID, text, nil); err != nil {
			logger.Log.Warn("Failed to deliver complaint to admin",
				zap.Int64("admin_id", adminID),
				zap.Int64("complaint_id", c.ID),
				zap.Error(err),
			)
		}
	}
}

func (n *complaintNotifier) describe(ctx context.Context, c *domain.Complaint) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New complaint #%d\n", c.ID)
	fmt.Fprintf(&b, "From user: %d\n", c.ReporterUserID)
	if c.ReportedUserID != nil {
		fmt.Fprintf(&b, "Against user: %d\n", *c.ReportedUserID)
	}

	if c.ReportedEmployerProfileID != nil {
		fmt.Fprintf(&b, "Employer profile #%d", *c.ReportedEmployerProfileID)
		if p, err := n.employers.GetByID(ctx, *c.ReportedEmployerProfileID); err == nil {
			fmt.Fprintf(&b, ": %s, %s (%s)", p.CompanyName, p.Position, p.City)
			if p.IsDummy {
				b.WriteString(" [dummy]")
			}
		}
		b.WriteString("\n")
	}

	if c.ReportedApplicantProfileID != nil {
		fmt.Fprintf(&b, "Applicant profile #%d", *c.ReportedApplicantProfileID)
		if c.ReportedUserID != nil {
			if p, err := n.applicants.GetByUserID(ctx, *c.ReportedUserID); err == nil {
				fmt.Fprintf(&b, ": %s, %d y.o.", p.City, p.Age)
			}
		}
		b.WriteString("\n")
	}

	if c.ReasonText != nil && *c.ReasonText != "" {
		fmt.Fprintf(&b, "Reason: %s\n", *c.ReasonText)
	}
	fmt.Fprintf(&b, "Status: %s", c.Status)
	return b.String()
}
