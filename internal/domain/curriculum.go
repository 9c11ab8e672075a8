package domain

import (
	"context"
	"time"
)

// ScheduledWindow is the intended date and time window of a curriculum item,
// as planned in the course round. Reservations are created against it.
type ScheduledWindow struct {
	Date            time.Time `json:"date"`
	StartTime       TimeOfDay `json:"start_time"`
	EndTime         TimeOfDay `json:"end_time"`
	Subject         string    `json:"subject"`
	InstructorName  string    `json:"instructor_name,omitempty"`
	InstructorEmail string    `json:"instructor_email,omitempty"`
	RoundName       string    `json:"round_name,omitempty"`
}

// CurriculumScheduleRepository looks up the planned window for a curriculum
// item. Returns ErrNotFound when the item does not exist or has no scheduled
// time yet.
type CurriculumScheduleRepository interface {
	GetScheduledWindow(ctx context.Context, curriculumItemID string) (*ScheduledWindow, error)
}
