package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-jobmatch-bot/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

// Upsert inserts the user or refreshes the Telegram names. Role, phone and ban flag are
// never overwritten here; they are read back into user.
func (r *userRepo) Upsert(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (telegram_id, username, first_name, last_name, registration_date, last_activity_date)
              VALUES ($1, $2, $3, $4, $5, $5)
              ON CONFLICT (telegram_id) DO UPDATE SET
                  username = EXCLUDED.username,
                  first_name = EXCLUDED.first_name,
                  last_name = EXCLUDED.last_name,
                  last_activity_date = EXCLUDED.last_activity_date
              RETURNING role, contact_phone, registration_date, last_activity_date, is_banned, last_reengagement_notif_sent_at`

	var role *string
	err := r.db.QueryRow(ctx, query,
		user.TelegramID, user.Username, user.FirstName, user.LastName, user.LastActivityDate,
	).Scan(&role, &user.ContactPhone, &user.RegistrationDate, &user.LastActivityDate, &user.IsBanned, &user.LastReengagementNotifSentAt)
	if err != nil {
		return fmt.Errorf("upsert user %d: %w", user.TelegramID, err)
	}
	user.Role = toRole(role)
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, telegramID int64) (*domain.User, error) {
	query := `SELECT telegram_id, username, first_name, last_name, role, contact_phone,
                     registration_date, last_activity_date, is_banned, last_reengagement_notif_sent_at
              FROM users WHERE telegram_id = $1`

	var user domain.User
	var role *string
	err := r.db.QueryRow(ctx, query, telegramID).Scan(
		&user.TelegramID, &user.Username, &user.FirstName, &user.LastName, &role, &user.ContactPhone,
		&user.RegistrationDate, &user.LastActivityDate, &user.IsBanned, &user.LastReengagementNotifSentAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	user.Role = toRole(role)
	return &user, nil
}

func (r *userRepo) TouchActivity(ctx context.Context, telegramID int64, at time.Time) (bool, error) {
	query := `UPDATE users SET last_activity_date = $2 WHERE telegram_id = $1 RETURNING is_banned`

	var banned bool
	if err := r.db.QueryRow(ctx, query, telegramID, at).Scan(&banned); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, domain.ErrNotFound
		}
		return false, err
	}
	return banned, nil
}

func (r *userRepo) MarkReengagementSent(ctx context.Context, telegramID int64, at time.Time) error {
	result, err := r.db.Exec(ctx,
		`UPDATE users SET last_reengagement_notif_sent_at = $2 WHERE telegram_id = $1`, telegramID, at)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var profileTables = map[domain.UserRole]string{
	domain.RoleApplicant: "applicant_profiles",
	domain.RoleEmployer:  "employer_profiles",
}

func (r *userRepo) ListReengagementTargets(ctx context.Context, q domain.ReengagementQuery) ([]domain.ReengagementTarget, error) {
	table, ok := profileTables[q.Role]
	if !ok {
		return nil, fmt.Errorf("reengagement: unknown role %q", q.Role)
	}

	var condition string
	switch q.Reason {
	case domain.ReasonStoppedSearch:
		condition = `NOT p.is_active AND p.deactivation_date IS NOT NULL AND p.deactivation_date <= $2`
	case domain.ReasonInactive:
		condition = `p.is_active AND u.last_activity_date <= $2`
	default:
		return nil, fmt.Errorf("reengagement: unknown reason %q", q.Reason)
	}

	query := fmt.Sprintf(`SELECT u.telegram_id
              FROM users u
              JOIN %s p ON p.user_id = u.telegram_id
              WHERE u.role = $1
                AND NOT u.is_banned
                AND %s
                AND (u.last_reengagement_notif_sent_at IS NULL OR u.last_reengagement_notif_sent_at <= $3)
              ORDER BY u.telegram_id`, table, condition)

	rows, err := r.db.Query(ctx, query, string(q.Role), q.Cutoff, q.NotifiedBefore)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var targets []domain.ReengagementTarget
	for rows.Next() {
		t := domain.ReengagementTarget{Role: q.Role, Reason: q.Reason}
		if err := rows.Scan(&t.TelegramID); err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, rows.Err()
}

func toRole(s *string) *domain.UserRole {
	if s == nil {
		return nil
	}
	role := domain.UserRole(*s)
	return &role
}
