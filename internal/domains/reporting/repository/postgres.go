package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"smartlibrary-backend/internal/domains/reporting/model"
)

// postgresRepository computes the reporting views on demand. Everything here
// is a projection over current Book/Member/Loan state; nothing is stored.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{
		pool: pool,
	}
}

// DashboardStats fetches all five counters in one round trip.
func (r *postgresRepository) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	query := `
        SELECT
            (SELECT COUNT(*) FROM books),
            (SELECT COUNT(*) FROM books WHERE available = TRUE),
            (SELECT COUNT(*) FROM members),
            (SELECT COUNT(*) FROM loans WHERE status = 'Active'),
            (SELECT COUNT(*) FROM loans WHERE status = 'Overdue')
    `

	var stats model.DashboardStats
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.TotalBooks,
		&stats.AvailableBooks,
		&stats.TotalMembers,
		&stats.ActiveLoans,
		&stats.OverdueLoans,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query dashboard stats: %w", err)
	}

	return &stats, nil
}

// RecentActivity lists open loans closest to (or past) their due date first.
func (r *postgresRepository) RecentActivity(ctx context.Context, limit int) ([]model.OpenLoan, error) {
	query := `
        SELECT l.id, b.title, u.name, l.due_date, l.status
        FROM loans l
        JOIN books b ON l.book_id = b.id
        JOIN members m ON l.member_id = m.id
        JOIN users u ON m.user_id = u.id
        WHERE l.status IN ('Active', 'Overdue')
        ORDER BY l.due_date
        LIMIT $1
    `

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent activity: %w", err)
	}
	defer rows.Close()

	var loans []model.OpenLoan
	for rows.Next() {
		var l model.OpenLoan
		err := rows.Scan(&l.LoanID, &l.BookTitle, &l.MemberName, &l.DueDate, &l.Status)
		if err != nil {
			return nil, fmt.Errorf("failed to scan open loan: %w", err)
		}
		loans = append(loans, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating open loans: %w", err)
	}

	return loans, nil
}
