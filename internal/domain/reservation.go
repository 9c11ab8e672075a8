package domain

import (
	"context"
	"time"
)

// ResourceReservation binds a curriculum item to a classroom for a time window
// on a specific date. A curriculum item has at most one active reservation;
// reassignment replaces it.
// swagger:model ResourceReservation
type ResourceReservation struct {
	ID               string    `json:"id"`
	CurriculumItemID string    `json:"curriculum_item_id"`
	ClassroomID      string    `json:"classroom_id"`
	Date             time.Time `json:"date"`
	StartTime        TimeOfDay `json:"start_time"`
	EndTime          TimeOfDay `json:"end_time"`
	Subject          string    `json:"subject"`
	InstructorName   string    `json:"instructor_name,omitempty"`
	RoundName        string    `json:"round_name,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewResourceReservation returns a new ResourceReservation. ID is typically set
// by the repository on upsert.
func NewResourceReservation(curriculumItemID, classroomID string, date time.Time, start, end TimeOfDay, subject, instructorName, roundName string, createdAt, updatedAt time.Time) *ResourceReservation {
	return &ResourceReservation{
		CurriculumItemID: curriculumItemID,
		ClassroomID:      classroomID,
		Date:             DateOnly(date),
		StartTime:        start,
		EndTime:          end,
		Subject:          subject,
		InstructorName:   instructorName,
		RoundName:        roundName,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}
}

// Slot returns the reservation's time window.
func (r *ResourceReservation) Slot() TimeSlot {
	return TimeSlot{Start: r.StartTime, End: r.EndTime}
}

// ReservationRepository defines storage operations for classroom reservations.
// Upsert is keyed by curriculum item ID: re-assigning an item replaces its
// prior reservation in a single atomic write. Implementations must return
// ErrConflict when the write violates the storage-level overlap guard for
// (classroom_id, date).
type ReservationRepository interface {
	ListByClassroomAndDate(ctx context.Context, classroomID string, date time.Time) ([]*ResourceReservation, error)
	ListByClassroomAndRange(ctx context.Context, classroomID string, startDate, endDate time.Time) ([]*ResourceReservation, error)
	Upsert(ctx context.Context, reservation *ResourceReservation) error
	Delete(ctx context.Context, curriculumItemID string) error
}
