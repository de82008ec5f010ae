package outbox

import (
	"context"
	"time"

	"go-grocer-api/internal/shared/database"

	"github.com/google/uuid"
)

type OutboxEvent struct {
	ID            uuid.UUID
	AggregateType string
	AggregateID   uuid.UUID
	EventType     string
	Payload       []byte
	Status        string
	CreatedAt     time.Time
}

type CreateEventParams struct {
	AggregateType string
	AggregateID   uuid.UUID
	EventType     string
	Payload       []byte
}

type Repository interface {
	WithTx(tx database.DBTX) Repository
	CreateEvent(ctx context.Context, arg CreateEventParams) error
	ListPending(ctx context.Context, limit int32) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db database.DBTX
}

func NewRepository(db database.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx database.DBTX) Repository {
	return &repository{db: tx}
}

func (r *repository) CreateEvent(ctx context.Context, arg CreateEventParams) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO outbox_events (id, aggregate_type, aggregate_id, event_type, payload, status)
		 VALUES ($1, $2, $3, $4, $5, 'PENDING')`,
		uuid.New(), arg.AggregateType, arg.AggregateID, arg.EventType, string(arg.Payload),
	)
	return err
}

func (r *repository) ListPending(ctx context.Context, limit int32) ([]OutboxEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, aggregate_type, aggregate_id, event_type, payload, status, created_at
		 FROM outbox_events
		 WHERE status = 'PENDING'
		 ORDER BY created_at
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []OutboxEvent
	for rows.Next() {
		var e OutboxEvent
		if err := rows.Scan(&e.ID, &e.AggregateType, &e.AggregateID, &e.EventType, &e.Payload, &e.Status, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *repository) MarkSent(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE outbox_events SET status = 'SENT' WHERE id = $1`,
		id,
	)
	return err
}

func (r *repository) MarkFailed(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE outbox_events SET status = 'FAILED' WHERE id = $1`,
		id,
	)
	return err
}
