package services

import (
	"context"
	"fmt"
	"log/slog"

	"trainingadmin/internal/domain"
)

type assignmentNotifier struct {
	mailer domain.Mailer
	logger *slog.Logger
}

// NewAssignmentNotifier creates an AssignmentNotifier that emails instructors
// through the given mailer. Sending happens in the background; failures are
// logged and swallowed.
func NewAssignmentNotifier(mailer domain.Mailer, logger *slog.Logger) domain.AssignmentNotifier {
	return &assignmentNotifier{mailer: mailer, logger: logger}
}

func (n *assignmentNotifier) NotifyAssigned(ctx context.Context, data *domain.AssignmentNoticeData) {
	subject := fmt.Sprintf("Classroom assigned: %s on %s", data.Subject, data.Date)
	text := fmt.Sprintf(
		"Hello %s,\n\nYour session %q has been assigned a classroom.\n\n"+
			"Round: %s\nClassroom: %s (%s)\nDate: %s\nTime: %s\n",
		data.InstructorName, data.Subject, data.RoundName,
		data.ClassroomName, data.Location, data.Date, data.Window,
	)

	go func() {
		if err := n.mailer.Send(data.InstructorEmail, subject, "", text); err != nil {
			n.logger.WarnContext(ctx, "assignment notice failed",
				"to", data.InstructorEmail,
				"subject", data.Subject,
				"err", err,
			)
		}
	}()
}
