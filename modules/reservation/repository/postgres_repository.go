package repository

import (
	"context"
	"database/sql"
	"errors"

	"roombook/core/database"
	"roombook/core/logger"
	"roombook/modules/reservation/entity"
)

// PostgresRepository backs the EventStore contract with a relational
// table. The id sequence gives the same monotonic, never-reused
// assignment the file store maintains with its counter.
type PostgresRepository struct {
	DB database.IDatabase
}

func NewPostgresRepository(db database.IDatabase) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

// EnsureSchema creates the reservations table when missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS reservations (
			id         BIGSERIAL PRIMARY KEY,
			title      TEXT NOT NULL,
			event_date TEXT NOT NULL,
			start_time TEXT NOT NULL,
			end_time   TEXT NOT NULL,
			email      TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if err := r.DB.ExecContext(ctx, query); err != nil {
		logger.Error("PostgresRepository:EnsureSchema", err)
		return err
	}
	return nil
}

func (r *PostgresRepository) Load(ctx context.Context) ([]entity.Reservation, error) {
	query := `
		SELECT id, title, event_date, start_time, end_time, email, created_at
		FROM reservations
		ORDER BY event_date, start_time
	`

	reservations := []entity.Reservation{}
	if err := r.DB.SelectContext(ctx, &reservations, query); err != nil {
		logger.Error("PostgresRepository:Load", err)
		return nil, err
	}
	return reservations, nil
}

func (r *PostgresRepository) Append(ctx context.Context, res *entity.Reservation) (*entity.Reservation, error) {
	query := `
		INSERT INTO reservations (title, event_date, start_time, end_time, email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, title, event_date, start_time, end_time, email, created_at
	`

	var created entity.Reservation
	err := r.DB.GetContext(ctx, &created, query,
		res.Title, res.EventDate, res.StartTime, res.EndTime, res.Email)
	if err != nil {
		logger.Error("PostgresRepository:Append", err)
		return nil, err
	}
	return &created, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int, eventDate, startTime, endTime string) error {
	query := `
		UPDATE reservations
		SET event_date = $2, start_time = $3, end_time = $4
		WHERE id = $1
		RETURNING id
	`

	var updated int
	err := r.DB.GetContext(ctx, &updated, query, id, eventDate, startTime, endTime)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		logger.Error("PostgresRepository:Update", err)
		return err
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM reservations WHERE id = $1 RETURNING id`

	var deleted int
	err := r.DB.GetContext(ctx, &deleted, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		logger.Error("PostgresRepository:Delete", err)
		return err
	}
	return nil
}

func (r *PostgresRepository) QueryRange(ctx context.Context, startDate, endDate string) ([]entity.Reservation, error) {
	query := `
		SELECT id, title, event_date, start_time, end_time, email, created_at
		FROM reservations
		WHERE event_date >= $1 AND event_date < $2
		ORDER BY event_date, start_time
	`

	reservations := []entity.Reservation{}
	if err := r.DB.SelectContext(ctx, &reservations, query, startDate, endDate); err != nil {
		logger.Error("PostgresRepository:QueryRange", err)
		return nil, err
	}
	return reservations, nil
}
