package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AssignmentRecord is one audit row for a ticket assignment decision.
type AssignmentRecord struct {
	ID             string
	TicketID       string
	TechnicianID   string
	TechnicianName string
	Source         string
	Score          *float64
	MatchReasons   []string
	CreatedAt      time.Time
}

// AssignmentHistoryRepository records assignment decisions for auditing.
type AssignmentHistoryRepository interface {
	Create(ctx context.Context, record *AssignmentRecord) error
	ListByTicket(ctx context.Context, ticketID string) ([]AssignmentRecord, error)
}

type assignmentHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewAssignmentHistoryRepository instantiates repository.
func NewAssignmentHistoryRepository(pool *pgxpool.Pool) AssignmentHistoryRepository {
	return &assignmentHistoryRepository{pool: pool}
}

func (r *assignmentHistoryRepository) Create(ctx context.Context, record *AssignmentRecord) error {
	const query = `
        INSERT INTO assignment_history (ticket_id, technician_id, technician_name, source, score, match_reasons)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		record.TicketID,
		record.TechnicianID,
		record.TechnicianName,
		record.Source,
		record.Score,
		record.MatchReasons,
	).Scan(&record.ID, &record.CreatedAt)
}

func (r *assignmentHistoryRepository) ListByTicket(ctx context.Context, ticketID string) ([]AssignmentRecord, error) {
	const query = `
        SELECT id, ticket_id, technician_id, technician_name, source, score, match_reasons, created_at
        FROM assignment_history WHERE ticket_id=$1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []AssignmentRecord
	for rows.Next() {
		var record AssignmentRecord
		if err := rows.Scan(
			&record.ID,
			&record.TicketID,
			&record.TechnicianID,
			&record.TechnicianName,
			&record.Source,
			&record.Score,
			&record.MatchReasons,
			&record.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, rows.Err()
}
