package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"smartlibrary-backend/internal/domains/club/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{
		pool: pool,
	}
}

func (r *postgresRepository) Create(ctx context.Context, club *model.BookClub) (*model.BookClub, error) {
	query := `
        INSERT INTO book_clubs (name, description)
        VALUES ($1, $2)
        RETURNING id, name, description, created_at
    `

	var created model.BookClub
	err := r.pool.QueryRow(ctx, query, club.Name, club.Description).Scan(
		&created.ID,
		&created.Name,
		&created.Description,
		&created.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return nil, model.ErrDuplicateClubName
		}
		return nil, fmt.Errorf("failed to create book club: %w", err)
	}

	return &created, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]model.BookClub, error) {
	query := `
        SELECT bc.id, bc.name, bc.description, bc.created_at,
               (SELECT COUNT(*) FROM book_club_members WHERE club_id = bc.id)
        FROM book_clubs bc
        ORDER BY bc.name
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query book clubs: %w", err)
	}
	defer rows.Close()

	var clubs []model.BookClub
	for rows.Next() {
		var c model.BookClub
		err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.MemberCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book club: %w", err)
		}
		clubs = append(clubs, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating book clubs: %w", err)
	}

	return clubs, nil
}

func (r *postgresRepository) AddMember(ctx context.Context, clubID, memberID uuid.UUID) error {
	query := `
        INSERT INTO book_club_members (club_id, member_id)
        VALUES ($1, $2)
    `

	_, err := r.pool.Exec(ctx, query, clubID, memberID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // composite PK violation
				return model.ErrAlreadyInClub
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				if strings.Contains(pgErr.Message, "member_id") {
					return model.ErrMemberNotFound
				}
				return model.ErrClubNotFound
			}
		}
		return fmt.Errorf("failed to add club member: %w", err)
	}

	return nil
}
