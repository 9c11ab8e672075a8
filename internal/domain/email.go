package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// AssignmentNoticeData holds data for the classroom-assignment notice sent to
// an instructor after a successful (re)assignment.
type AssignmentNoticeData struct {
	InstructorName  string
	InstructorEmail string
	Subject         string
	RoundName       string
	ClassroomName   string
	Location        string
	Date            string
	Window          string
}

// AssignmentNotifier sends domain-level notices about classroom assignments.
// Delivery is best-effort; failures must never affect the assignment outcome.
type AssignmentNotifier interface {
	NotifyAssigned(ctx context.Context, data *AssignmentNoticeData)
}
