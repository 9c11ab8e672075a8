package postgres

import (
	"context"
	"database/sql"
	"errors"

	"trainingadmin/internal/domain"
)

type curriculumScheduleRepository struct {
	DB *sql.DB
}

// NewCurriculumScheduleRepository creates a CurriculumScheduleRepository backed
// by the curriculum_items table owned by the course administration modules.
func NewCurriculumScheduleRepository(db *sql.DB) domain.CurriculumScheduleRepository {
	return &curriculumScheduleRepository{
		DB: db,
	}
}

func (r *curriculumScheduleRepository) GetScheduledWindow(ctx context.Context, curriculumItemID string) (*domain.ScheduledWindow, error) {
	query := `
		SELECT date, start_time, end_time, subject, instructor_name, instructor_email, round_name
		FROM curriculum_items
		WHERE id = $1
	`
	var (
		dateNull             sql.NullTime
		startNull, endNull   sql.NullString
		instructorNull       sql.NullString
		instructorEmailNull  sql.NullString
		roundNull            sql.NullString
		w                    domain.ScheduledWindow
	)
	err := r.DB.QueryRowContext(ctx, query, curriculumItemID).Scan(
		&dateNull, &startNull, &endNull, &w.Subject,
		&instructorNull, &instructorEmailNull, &roundNull,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	// An item that exists but was never scheduled has NULL date/times; to the
	// assignment path that is the same as the item not existing.
	if !dateNull.Valid || !startNull.Valid || !endNull.Valid {
		return nil, domain.ErrNotFound
	}
	w.Date = domain.DateOnly(dateNull.Time)
	start, err := domain.ParseTimeOfDay(startNull.String)
	if err != nil {
		return nil, err
	}
	end, err := domain.ParseTimeOfDay(endNull.String)
	if err != nil {
		return nil, err
	}
	w.StartTime = start
	w.EndTime = end
	if instructorNull.Valid {
		w.InstructorName = instructorNull.String
	}
	if instructorEmailNull.Valid {
		w.InstructorEmail = instructorEmailNull.String
	}
	if roundNull.Valid {
		w.RoundName = roundNull.String
	}
	return &w, nil
}
