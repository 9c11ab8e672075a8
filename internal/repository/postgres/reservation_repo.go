package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"trainingadmin/internal/domain"

	"github.com/lib/pq"
)

type reservationRepository struct {
	DB *sql.DB
}

// NewReservationRepository creates a ReservationRepository backed by Postgres.
// The classroom_reservations table carries an exclusion constraint on
// (classroom_id, date, timerange(start_time, end_time)) so overlapping writes
// are rejected at commit time even when two requests pass the read check
// concurrently.
func NewReservationRepository(db *sql.DB) domain.ReservationRepository {
	return &reservationRepository{
		DB: db,
	}
}

const reservationColumns = `id, curriculum_item_id, classroom_id, date, start_time, end_time, subject, instructor_name, round_name, created_at, updated_at`

func (r *reservationRepository) ListByClassroomAndDate(ctx context.Context, classroomID string, date time.Time) ([]*domain.ResourceReservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM classroom_reservations
		WHERE classroom_id = $1 AND date = $2
		ORDER BY start_time
	`
	rows, err := r.DB.QueryContext(ctx, query, classroomID, domain.DateOnly(date))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReservations(rows)
}

func (r *reservationRepository) ListByClassroomAndRange(ctx context.Context, classroomID string, startDate, endDate time.Time) ([]*domain.ResourceReservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM classroom_reservations
		WHERE classroom_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date, start_time
	`
	rows, err := r.DB.QueryContext(ctx, query, classroomID, domain.DateOnly(startDate), domain.DateOnly(endDate))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReservations(rows)
}

func (r *reservationRepository) Upsert(ctx context.Context, res *domain.ResourceReservation) error {
	query := `
		INSERT INTO classroom_reservations (curriculum_item_id, classroom_id, date, start_time, end_time, subject, instructor_name, round_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (curriculum_item_id) DO UPDATE
		SET classroom_id = EXCLUDED.classroom_id, date = EXCLUDED.date,
		    start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time,
		    subject = EXCLUDED.subject, instructor_name = EXCLUDED.instructor_name,
		    round_name = EXCLUDED.round_name, updated_at = EXCLUDED.updated_at
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		res.CurriculumItemID, res.ClassroomID, res.Date,
		res.StartTime, res.EndTime,
		res.Subject, res.InstructorName, res.RoundName,
		res.CreatedAt, res.UpdatedAt,
	).Scan(&res.ID)
	if err != nil {
		if isOverlapViolation(err) {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (r *reservationRepository) Delete(ctx context.Context, curriculumItemID string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM classroom_reservations WHERE curriculum_item_id = $1`, curriculumItemID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// isOverlapViolation reports whether err is the exclusion constraint
// (23P01, overlapping time range for the same classroom and date) or a
// unique violation (23505) raised by the conflict guard.
func isOverlapViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23P01" || pqErr.Code == "23505"
	}
	return false
}

func scanReservations(rows *sql.Rows) ([]*domain.ResourceReservation, error) {
	var reservations []*domain.ResourceReservation
	for rows.Next() {
		res := &domain.ResourceReservation{}
		var instructorNull, roundNull sql.NullString
		if err := rows.Scan(
			&res.ID, &res.CurriculumItemID, &res.ClassroomID, &res.Date,
			&res.StartTime, &res.EndTime,
			&res.Subject, &instructorNull, &roundNull,
			&res.CreatedAt, &res.UpdatedAt,
		); err != nil {
			return nil, err
		}
		res.Date = domain.DateOnly(res.Date)
		if instructorNull.Valid {
			res.InstructorName = instructorNull.String
		}
		if roundNull.Valid {
			res.RoundName = roundNull.String
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}
