package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"smartlibrary-backend/internal/domains/membership/model"
	"smartlibrary-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{
		pool: pool,
	}
}

// Create inserts the users row (role Member) and the members row atomically.
// A failure at either step leaves nothing behind.
func (r *postgresRepository) Create(ctx context.Context, m *model.Member) (*model.Member, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Member, error) {
		var userID uuid.UUID
		err := tx.QueryRow(ctx, `
            INSERT INTO users (name, email, role_id)
            VALUES ($1, $2, (SELECT id FROM roles WHERE name = 'Member'))
            RETURNING id
        `, m.Name, m.Email).Scan(&userID)

		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
				return nil, model.ErrDuplicateMemberEmail
			}
			return nil, fmt.Errorf("failed to create user: %w", err)
		}

		var created model.Member
		err = tx.QueryRow(ctx, `
            INSERT INTO members (user_id, member_code, contact)
            VALUES ($1, $2, $3)
            RETURNING id, user_id, member_code, contact, created_at
        `, userID, m.MemberCode, m.Contact).Scan(
			&created.ID,
			&created.UserID,
			&created.MemberCode,
			&created.Contact,
			&created.CreatedAt,
		)

		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) {
				if pgErr.Code == "23505" && strings.Contains(pgErr.Message, "member_code") {
					return nil, model.ErrDuplicateMemberCode
				}
			}
			return nil, fmt.Errorf("failed to create member: %w", err)
		}

		created.Name = m.Name
		created.Email = m.Email

		return &created, nil
	})
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Member, error) {
	query := `
        SELECT m.id, m.user_id, u.name, u.email, m.member_code, m.contact, m.created_at,
               (SELECT COUNT(*) FROM loans WHERE member_id = m.id AND status = 'Active')
        FROM members m
        JOIN users u ON m.user_id = u.id
        WHERE m.id = $1
    `

	var m model.Member
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&m.ID,
		&m.UserID,
		&m.Name,
		&m.Email,
		&m.MemberCode,
		&m.Contact,
		&m.CreatedAt,
		&m.ActiveLoanCount,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to get member by id: %w", err)
	}

	return &m, nil
}

// List returns members ordered by member code. The loan count covers Active
// loans only (an Overdue loan has left that state) and is computed on every
// read so it can never drift from the loans table.
func (r *postgresRepository) List(ctx context.Context, filter model.MemberFilter) ([]model.Member, int64, error) {
	query := `
        SELECT m.id, m.user_id, u.name, u.email, m.member_code, m.contact, m.created_at,
               (SELECT COUNT(*) FROM loans WHERE member_id = m.id AND status = 'Active')
        FROM members m
        JOIN users u ON m.user_id = u.id
        ORDER BY m.member_code
        LIMIT $1 OFFSET $2
    `

	rows, err := r.pool.Query(ctx, query, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	var members []model.Member
	for rows.Next() {
		var m model.Member
		err := rows.Scan(
			&m.ID,
			&m.UserID,
			&m.Name,
			&m.Email,
			&m.MemberCode,
			&m.Contact,
			&m.CreatedAt,
			&m.ActiveLoanCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating members: %w", err)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM members`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count members: %w", err)
	}

	return members, total, nil
}
