package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"trainingadmin/internal/domain"
)

type scheduleQueryService struct {
	reservationRepo domain.ReservationRepository
	contextTimeout  time.Duration
}

// NewScheduleQueryService creates a ScheduleQueryService over the reservation
// repository.
func NewScheduleQueryService(reservationRepo domain.ReservationRepository, timeout time.Duration) domain.ScheduleQueryService {
	return &scheduleQueryService{
		reservationRepo: reservationRepo,
		contextTimeout:  timeout,
	}
}

func (s *scheduleQueryService) GetSchedule(ctx context.Context, classroomID string, startDate, endDate time.Time) ([]*domain.ResourceReservation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if classroomID == "" {
		return nil, fmt.Errorf("%w: classroom_id is required", domain.ErrInvalidInput)
	}

	start := domain.DateOnly(startDate)
	end := domain.DateOnly(endDate)
	// An inverted range is a caller mistake, not a fault.
	if start.After(end) {
		return []*domain.ResourceReservation{}, nil
	}

	reservations, err := s.reservationRepo.ListByClassroomAndRange(ctx, classroomID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	if reservations == nil {
		reservations = []*domain.ResourceReservation{}
	}
	// Calendar ordering is part of this service's contract, not the store's.
	sort.Slice(reservations, func(i, j int) bool {
		if !reservations[i].Date.Equal(reservations[j].Date) {
			return reservations[i].Date.Before(reservations[j].Date)
		}
		return reservations[i].StartTime < reservations[j].StartTime
	})
	return reservations, nil
}
