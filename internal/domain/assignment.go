package domain

import (
	"context"
	"time"
)

// ConflictInfo is the outcome of a conflict check. ConflictingReservations
// holds every overlapping reservation, ordered by start time ascending.
// swagger:model ConflictInfo
type ConflictInfo struct {
	HasConflict             bool                   `json:"has_conflict"`
	ConflictingReservations []*ResourceReservation `json:"conflicting_reservations"`
	Message                 string                 `json:"message,omitempty"`
}

// ClassroomAssignmentRequest asks for a curriculum item to be assigned to a
// classroom at its planned window.
// swagger:model ClassroomAssignmentRequest
type ClassroomAssignmentRequest struct {
	CurriculumItemID string `json:"curriculum_item_id"`
	ClassroomID      string `json:"classroom_id"`
}

// ClassroomAssignmentResult is the outcome of one assignment attempt.
// Validation failures, conflicts, and storage faults are all reported here;
// none of them surface as errors from the assignment path.
// swagger:model ClassroomAssignmentResult
type ClassroomAssignmentResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// BulkAssignmentResult aggregates a bulk operation. Success+Failed == Total
// and len(Errors) == Failed, with Errors in input order of the failing items.
// swagger:model BulkAssignmentResult
type BulkAssignmentResult struct {
	Total   int      `json:"total"`
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}

// ConflictChecker decides whether a candidate reservation overlaps any active
// reservation for the same classroom and date. Pure read, no side effects.
type ConflictChecker interface {
	// CheckConflict ignores the reservation belonging to
	// excludeCurriculumItemID, so a reassignment is checked against everything
	// except the item's own current slot. Pass "" to exclude nothing.
	CheckConflict(ctx context.Context, candidate *ResourceReservation, excludeCurriculumItemID string) (*ConflictInfo, error)
}

// AssignmentService orchestrates single and bulk classroom assignment.
type AssignmentService interface {
	// Assign validates, conflict-checks, and persists one assignment. Expected
	// failures (validation, conflict, missing schedule, storage fault) are
	// reported in the result, never returned as an error.
	Assign(ctx context.Context, req *ClassroomAssignmentRequest) *ClassroomAssignmentResult
	// AssignBulk processes requests independently in input order; a failure
	// never blocks subsequent items.
	AssignBulk(ctx context.Context, reqs []*ClassroomAssignmentRequest) *BulkAssignmentResult
	// Unassign releases the curriculum item's reservation. Returns ErrNotFound
	// when the item has no active reservation.
	Unassign(ctx context.Context, curriculumItemID string) error
}

// AvailabilityService answers "which classrooms are free in this window".
type AvailabilityService interface {
	// FindAvailable returns classrooms with no conflicting reservation in the
	// window and capacity >= minCapacity (0 disables the capacity filter),
	// ordered by capacity ascending then name ascending.
	FindAvailable(ctx context.Context, date time.Time, start, end TimeOfDay, minCapacity int) ([]*AvailableClassroom, error)
}

// ScheduleQueryService returns reservations for calendar rendering.
type ScheduleQueryService interface {
	// GetSchedule lists a classroom's reservations within [startDate, endDate],
	// ordered by date then start time. An inverted range yields an empty list.
	GetSchedule(ctx context.Context, classroomID string, startDate, endDate time.Time) ([]*ResourceReservation, error)
}
