package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"trainingadmin/internal/domain"
)

type availabilityService struct {
	catalog        domain.ClassroomCatalog
	checker        domain.ConflictChecker
	contextTimeout time.Duration
}

// NewAvailabilityService creates an AvailabilityService over the classroom
// catalog and conflict checker.
func NewAvailabilityService(catalog domain.ClassroomCatalog, checker domain.ConflictChecker, timeout time.Duration) domain.AvailabilityService {
	return &availabilityService{
		catalog:        catalog,
		checker:        checker,
		contextTimeout: timeout,
	}
}

func (s *availabilityService) FindAvailable(ctx context.Context, date time.Time, start, end domain.TimeOfDay, minCapacity int) ([]*domain.AvailableClassroom, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := domain.NewTimeSlot(start, end); err != nil {
		return nil, err
	}
	if minCapacity < 0 {
		return nil, fmt.Errorf("%w: min_capacity must not be negative", domain.ErrInvalidInput)
	}

	classrooms, err := s.catalog.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list classrooms: %w", err)
	}

	// Re-evaluated against current reservations on every call; availability is
	// never cached because reservations may change between queries.
	available := []*domain.AvailableClassroom{}
	for _, room := range classrooms {
		if minCapacity > 0 && room.Capacity < minCapacity {
			continue
		}
		candidate := &domain.ResourceReservation{
			ClassroomID: room.ID,
			Date:        domain.DateOnly(date),
			StartTime:   start,
			EndTime:     end,
		}
		info, err := s.checker.CheckConflict(ctx, candidate, "")
		if err != nil {
			return nil, fmt.Errorf("check classroom %s: %w", room.ID, err)
		}
		if info.HasConflict {
			continue
		}
		available = append(available, &domain.AvailableClassroom{
			ID:          room.ID,
			Name:        room.Name,
			Location:    room.Location,
			Capacity:    room.Capacity,
			Facilities:  room.Facilities,
			Equipment:   room.Equipment,
			IsAvailable: true,
		})
	}

	// Smallest adequate room first to minimize wasted capacity.
	sort.Slice(available, func(i, j int) bool {
		if available[i].Capacity != available[j].Capacity {
			return available[i].Capacity < available[j].Capacity
		}
		return available[i].Name < available[j].Name
	})
	return available, nil
}
