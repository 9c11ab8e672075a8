package postgres

import (
	"context"
	"database/sql"
	"errors"

	"trainingadmin/internal/domain"

	"github.com/lib/pq"
)

type classroomRepository struct {
	DB *sql.DB
}

// NewClassroomRepository creates a ClassroomCatalog backed by Postgres.
func NewClassroomRepository(db *sql.DB) domain.ClassroomCatalog {
	return &classroomRepository{
		DB: db,
	}
}

func (r *classroomRepository) ListAll(ctx context.Context) ([]*domain.Classroom, error) {
	query := `
		SELECT id, name, location, capacity, facilities, equipment, created_at, updated_at
		FROM classrooms
		ORDER BY name
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var classrooms []*domain.Classroom
	for rows.Next() {
		room := &domain.Classroom{}
		if err := rows.Scan(
			&room.ID, &room.Name, &room.Location, &room.Capacity,
			pq.Array(&room.Facilities), pq.Array(&room.Equipment),
			&room.CreatedAt, &room.UpdatedAt,
		); err != nil {
			return nil, err
		}
		classrooms = append(classrooms, room)
	}
	return classrooms, rows.Err()
}

func (r *classroomRepository) GetByID(ctx context.Context, id string) (*domain.Classroom, error) {
	query := `
		SELECT id, name, location, capacity, facilities, equipment, created_at, updated_at
		FROM classrooms
		WHERE id = $1
	`
	room := &domain.Classroom{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&room.ID, &room.Name, &room.Location, &room.Capacity,
		pq.Array(&room.Facilities), pq.Array(&room.Equipment),
		&room.CreatedAt, &room.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return room, nil
}
