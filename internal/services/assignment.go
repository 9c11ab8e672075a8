package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trainingadmin/internal/domain"
)

type assignmentService struct {
	reservationRepo domain.ReservationRepository
	catalog         domain.ClassroomCatalog
	curriculumRepo  domain.CurriculumScheduleRepository
	checker         domain.ConflictChecker
	notifier        domain.AssignmentNotifier
	contextTimeout  time.Duration
}

// NewAssignmentService creates an AssignmentService. notifier may be nil, in
// which case no assignment notices are sent.
func NewAssignmentService(
	reservationRepo domain.ReservationRepository,
	catalog domain.ClassroomCatalog,
	curriculumRepo domain.CurriculumScheduleRepository,
	checker domain.ConflictChecker,
	notifier domain.AssignmentNotifier,
	timeout time.Duration,
) domain.AssignmentService {
	return &assignmentService{
		reservationRepo: reservationRepo,
		catalog:         catalog,
		curriculumRepo:  curriculumRepo,
		checker:         checker,
		notifier:        notifier,
		contextTimeout:  timeout,
	}
}

const msgStorageFailure = "temporary storage failure, please retry"

func (s *assignmentService) Assign(ctx context.Context, req *domain.ClassroomAssignmentRequest) *domain.ClassroomAssignmentResult {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if req == nil || req.CurriculumItemID == "" || req.ClassroomID == "" {
		return &domain.ClassroomAssignmentResult{Success: false, Message: "invalid request: curriculum_item_id and classroom_id are required"}
	}

	room, err := s.catalog.GetByID(ctx, req.ClassroomID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.ClassroomAssignmentResult{Success: false, Message: fmt.Sprintf("classroom %s not found", req.ClassroomID)}
		}
		return &domain.ClassroomAssignmentResult{Success: false, Message: msgStorageFailure}
	}

	window, err := s.curriculumRepo.GetScheduledWindow(ctx, req.CurriculumItemID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.ClassroomAssignmentResult{Success: false, Message: fmt.Sprintf("curriculum item %s has no schedule defined", req.CurriculumItemID)}
		}
		return &domain.ClassroomAssignmentResult{Success: false, Message: msgStorageFailure}
	}
	if _, err := domain.NewTimeSlot(window.StartTime, window.EndTime); err != nil {
		return &domain.ClassroomAssignmentResult{Success: false, Message: fmt.Sprintf("curriculum item %s has an invalid scheduled window", req.CurriculumItemID)}
	}

	now := time.Now()
	candidate := domain.NewResourceReservation(
		req.CurriculumItemID, req.ClassroomID,
		window.Date, window.StartTime, window.EndTime,
		window.Subject, window.InstructorName, window.RoundName,
		now, now,
	)

	// Excluding the item's own reservation makes re-assigning the same slot
	// idempotent instead of self-conflicting.
	info, err := s.checker.CheckConflict(ctx, candidate, req.CurriculumItemID)
	if err != nil {
		return &domain.ClassroomAssignmentResult{Success: false, Message: msgStorageFailure}
	}
	if info.HasConflict {
		return &domain.ClassroomAssignmentResult{Success: false, Message: info.Message}
	}

	if err := s.reservationRepo.Upsert(ctx, candidate); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// A concurrent writer won the window between check and write. The
			// storage guard kept the invariant; re-check to name the winner.
			return &domain.ClassroomAssignmentResult{Success: false, Message: s.lateConflictMessage(ctx, candidate, req.CurriculumItemID)}
		}
		return &domain.ClassroomAssignmentResult{Success: false, Message: msgStorageFailure}
	}

	if s.notifier != nil && window.InstructorEmail != "" {
		s.notifier.NotifyAssigned(ctx, &domain.AssignmentNoticeData{
			InstructorName:  window.InstructorName,
			InstructorEmail: window.InstructorEmail,
			Subject:         window.Subject,
			RoundName:       window.RoundName,
			ClassroomName:   room.Name,
			Location:        room.Location,
			Date:            candidate.Date.Format("2006-01-02"),
			Window:          candidate.Slot().String(),
		})
	}
	return &domain.ClassroomAssignmentResult{Success: true, Message: fmt.Sprintf("assigned %q to %s", window.Subject, room.Name)}
}

func (s *assignmentService) lateConflictMessage(ctx context.Context, candidate *domain.ResourceReservation, excludeID string) string {
	info, err := s.checker.CheckConflict(ctx, candidate, excludeID)
	if err != nil || !info.HasConflict {
		return "classroom was booked concurrently, please retry"
	}
	return info.Message
}

func (s *assignmentService) AssignBulk(ctx context.Context, reqs []*domain.ClassroomAssignmentRequest) *domain.BulkAssignmentResult {
	result := &domain.BulkAssignmentResult{Errors: []string{}}
	for _, req := range reqs {
		result.Total++
		res := s.Assign(ctx, req)
		if res.Success {
			result.Success++
			continue
		}
		result.Failed++
		label := "request"
		if req != nil && req.CurriculumItemID != "" {
			label = req.CurriculumItemID
		}
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", label, res.Message))
	}
	return result
}

func (s *assignmentService) Unassign(ctx context.Context, curriculumItemID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if curriculumItemID == "" {
		return fmt.Errorf("%w: curriculum_item_id is required", domain.ErrInvalidInput)
	}
	if err := s.reservationRepo.Delete(ctx, curriculumItemID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete reservation: %w", err)
	}
	return nil
}
