package postgres

import (
	"context"
	"errors"
	"fmt"

	"go-jobmatch-bot/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const complaintColumns = `id, COALESCE(reporter_user_id, 0), reported_user_id, reported_employer_profile_id,
        reported_applicant_profile_id, reason_text, status, created_at`

type complaintRepo struct {
	db *pgxpool.Pool
}

func NewComplaintRepository(db *pgxpool.Pool) domain.ComplaintRepository {
	return &complaintRepo{db: db}
}

func insertComplaint(ctx context.Context, q querier, c *domain.Complaint) error {
	if c.Status == "" {
		c.Status = domain.ComplaintNew
	}
	query := `INSERT INTO complaints
                  (reporter_user_id, reported_user_id, reported_employer_profile_id, reported_applicant_profile_id, reason_text, status)
              VALUES ($1, $2, $3, $4, $5, $6)
              RETURNING id, created_at`
	return q.QueryRow(ctx, query,
		c.ReporterUserID, c.ReportedUserID, c.ReportedEmployerProfileID, c.ReportedApplicantProfileID, c.ReasonText, string(c.Status),
	).Scan(&c.ID, &c.CreatedAt)
}

func scanComplaint(row pgx.Row) (*domain.Complaint, error) {
	var c domain.Complaint
	err := row.Scan(&c.ID, &c.ReporterUserID, &c.ReportedUserID, &c.ReportedEmployerProfileID,
		&c.ReportedApplicantProfileID, &c.ReasonText, &c.Status, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *complaintRepo) Create(ctx context.Context, c *domain.Complaint) error {
	if err := insertComplaint(ctx, r.db, c); err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			return fmt.Errorf("insert complaint: %w", domain.ErrNotFound)
		}
		return err
	}
	return nil
}

func (r *complaintRepo) GetByID(ctx context.Context, id int64) (*domain.Complaint, error) {
	c, err := scanComplaint(r.db.QueryRow(ctx, `SELECT `+complaintColumns+` FROM complaints WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return c, err
}

// List returns one page ordered newest first together with the total matching count.
func (r *complaintRepo) List(ctx context.Context, f domain.ComplaintFilter) ([]domain.Complaint, int, error) {
	where := ``
	args := []any{}
	if f.Status != nil {
		where = ` WHERE status = $1`
		args = append(args, string(*f.Status))
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM complaints`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}
	query := fmt.Sprintf(`SELECT %s FROM complaints%s ORDER BY created_at DESC, id DESC LIMIT %d OFFSET %d`,
		complaintColumns, where, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	complaints := make([]domain.Complaint, 0, limit)
	for rows.Next() {
		c, err := scanComplaint(rows)
		if err != nil {
			return nil, 0, err
		}
		complaints = append(complaints, *c)
	}
	return complaints, total, rows.Err()
}

func (r *complaintRepo) UpdateStatus(ctx context.Context, id int64, status domain.ComplaintStatus) error {
	result, err := r.db.Exec(ctx,
		`UPDATE complaints SET status = $2, updated_at = NOW() WHERE id = $1`, id, string(status))
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
