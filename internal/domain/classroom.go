package domain

import (
	"context"
	"time"
)

// Classroom is a physical room that curriculum sessions can be assigned to.
// swagger:model Classroom
type Classroom struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Location   string    `json:"location"`
	Capacity   int       `json:"capacity"`
	Facilities []string  `json:"facilities"`
	Equipment  []string  `json:"equipment"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AvailableClassroom is a read-only projection of a classroom for a specific
// queried window. IsAvailable is computed per query, never stored.
// swagger:model AvailableClassroom
type AvailableClassroom struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Capacity    int      `json:"capacity"`
	Facilities  []string `json:"facilities"`
	Equipment   []string `json:"equipment"`
	IsAvailable bool     `json:"is_available"`
}

// ClassroomCatalog defines read access to the classroom inventory.
type ClassroomCatalog interface {
	ListAll(ctx context.Context) ([]*Classroom, error)
	GetByID(ctx context.Context, id string) (*Classroom, error)
}
