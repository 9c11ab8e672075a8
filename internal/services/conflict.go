package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"trainingadmin/internal/domain"
)

type conflictChecker struct {
	reservationRepo domain.ReservationRepository
}

// NewConflictChecker creates a ConflictChecker backed by the given repository.
func NewConflictChecker(reservationRepo domain.ReservationRepository) domain.ConflictChecker {
	return &conflictChecker{reservationRepo: reservationRepo}
}

func (c *conflictChecker) CheckConflict(ctx context.Context, candidate *domain.ResourceReservation, excludeCurriculumItemID string) (*domain.ConflictInfo, error) {
	existing, err := c.reservationRepo.ListByClassroomAndDate(ctx, candidate.ClassroomID, candidate.Date)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	slot := candidate.Slot()
	var conflicting []*domain.ResourceReservation
	for _, r := range existing {
		if excludeCurriculumItemID != "" && r.CurriculumItemID == excludeCurriculumItemID {
			continue
		}
		if slot.Overlaps(r.Slot()) {
			conflicting = append(conflicting, r)
		}
	}
	sort.Slice(conflicting, func(i, j int) bool {
		return conflicting[i].StartTime < conflicting[j].StartTime
	})

	info := &domain.ConflictInfo{
		HasConflict:             len(conflicting) > 0,
		ConflictingReservations: conflicting,
	}
	if info.ConflictingReservations == nil {
		info.ConflictingReservations = []*domain.ResourceReservation{}
	}
	if info.HasConflict {
		info.Message = conflictMessage(conflicting)
	}
	return info, nil
}

// conflictMessage names each conflicting session with its window, e.g.
// `classroom already booked by "Algebra I" (09:00-11:00)`.
func conflictMessage(conflicting []*domain.ResourceReservation) string {
	parts := make([]string, 0, len(conflicting))
	for _, r := range conflicting {
		parts = append(parts, fmt.Sprintf("%q (%s)", r.Subject, r.Slot()))
	}
	return "classroom already booked by " + strings.Join(parts, ", ")
}
