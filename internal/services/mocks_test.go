package services

import (
	"context"
	"sync"
	"time"

	"trainingadmin/internal/domain"
)

// mockReservationRepository is an in-memory domain.ReservationRepository keyed
// by curriculum item ID, mirroring the upsert semantics of the real store.
type mockReservationRepository struct {
	mu           sync.Mutex
	byItem       map[string]*domain.ResourceReservation
	listErr      error
	upsertErr    error
	deleteErr    error
	guardActive  bool // emulate the storage-level overlap guard on Upsert
	upsertCalled int
}

func newMockReservationRepository(seed ...*domain.ResourceReservation) *mockReservationRepository {
	m := &mockReservationRepository{byItem: make(map[string]*domain.ResourceReservation)}
	for _, r := range seed {
		m.byItem[r.CurriculumItemID] = r
	}
	return m
}

func (m *mockReservationRepository) ListByClassroomAndDate(_ context.Context, classroomID string, date time.Time) ([]*domain.ResourceReservation, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.ResourceReservation
	for _, r := range m.byItem {
		if r.ClassroomID == classroomID && r.Date.Equal(domain.DateOnly(date)) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockReservationRepository) ListByClassroomAndRange(_ context.Context, classroomID string, startDate, endDate time.Time) ([]*domain.ResourceReservation, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.ResourceReservation
	for _, r := range m.byItem {
		if r.ClassroomID == classroomID && !r.Date.Before(startDate) && !r.Date.After(endDate) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockReservationRepository) Upsert(_ context.Context, candidate *domain.ResourceReservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upsertCalled++
	if m.upsertErr != nil {
		return m.upsertErr
	}
	if m.guardActive {
		slot := candidate.Slot()
		for _, r := range m.byItem {
			if r.CurriculumItemID == candidate.CurriculumItemID {
				continue
			}
			if r.ClassroomID == candidate.ClassroomID && r.Date.Equal(candidate.Date) && slot.Overlaps(r.Slot()) {
				return domain.ErrConflict
			}
		}
	}
	m.byItem[candidate.CurriculumItemID] = candidate
	return nil
}

func (m *mockReservationRepository) Delete(_ context.Context, curriculumItemID string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byItem[curriculumItemID]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byItem, curriculumItemID)
	return nil
}

type mockClassroomCatalog struct {
	rooms map[string]*domain.Classroom
	err   error
}

func newMockClassroomCatalog(rooms ...*domain.Classroom) *mockClassroomCatalog {
	m := &mockClassroomCatalog{rooms: make(map[string]*domain.Classroom)}
	for _, r := range rooms {
		m.rooms[r.ID] = r
	}
	return m
}

func (m *mockClassroomCatalog) ListAll(_ context.Context) ([]*domain.Classroom, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Classroom
	for _, r := range m.rooms {
		out = append(out, r)
	}
	return out, nil
}

func (m *mockClassroomCatalog) GetByID(_ context.Context, id string) (*domain.Classroom, error) {
	if m.err != nil {
		return nil, m.err
	}
	room, ok := m.rooms[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return room, nil
}

type mockCurriculumRepository struct {
	windows map[string]*domain.ScheduledWindow
	err     error
}

func (m *mockCurriculumRepository) GetScheduledWindow(_ context.Context, curriculumItemID string) (*domain.ScheduledWindow, error) {
	if m.err != nil {
		return nil, m.err
	}
	w, ok := m.windows[curriculumItemID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return w, nil
}

type mockNotifier struct {
	mu      sync.Mutex
	notices []*domain.AssignmentNoticeData
}

func (m *mockNotifier) NotifyAssigned(_ context.Context, data *domain.AssignmentNoticeData) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notices = append(m.notices, data)
}

// mustTime parses "HH:MM" or fails the build of the test fixture.
func mustTime(s string) domain.TimeOfDay {
	t, err := domain.ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func testDate(day int) time.Time {
	return time.Date(2025, 4, day, 0, 0, 0, 0, time.UTC)
}

func reservation(itemID, classroomID string, day int, start, end, subject string) *domain.ResourceReservation {
	return domain.NewResourceReservation(
		itemID, classroomID, testDate(day),
		mustTime(start), mustTime(end),
		subject, "", "",
		time.Now(), time.Now(),
	)
}
