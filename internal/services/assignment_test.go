package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"trainingadmin/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type assignmentFixture struct {
	repo       *mockReservationRepository
	catalog    *mockClassroomCatalog
	curriculum *mockCurriculumRepository
	notifier   *mockNotifier
	svc        domain.AssignmentService
}

func newAssignmentFixture() *assignmentFixture {
	f := &assignmentFixture{
		repo: newMockReservationRepository(),
		catalog: newMockClassroomCatalog(
			classroom("room-1", "Room 101", 20),
			classroom("room-2", "Room 102", 30),
		),
		curriculum: &mockCurriculumRepository{windows: map[string]*domain.ScheduledWindow{}},
		notifier:   &mockNotifier{},
	}
	f.svc = NewAssignmentService(f.repo, f.catalog, f.curriculum, NewConflictChecker(f.repo), f.notifier, 2*time.Second)
	return f
}

func (f *assignmentFixture) schedule(itemID, start, end, subject string) {
	f.curriculum.windows[itemID] = &domain.ScheduledWindow{
		Date:      testDate(1),
		StartTime: mustTime(start),
		EndTime:   mustTime(end),
		Subject:   subject,
	}
}

func TestAssignmentService_Assign(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := newAssignmentFixture()
		f.schedule("item-1", "09:00", "10:00", "Algebra")

		res := f.svc.Assign(ctx, &domain.ClassroomAssignmentRequest{CurriculumItemID: "item-1", ClassroomID: "room-1"})
		require.True(t, res.Success)
		assert.Contains(t, res.Message, "Algebra")
		assert.Contains(t, res.Message, "Room 101")

		stored := f.repo.byItem["item-1"]
		require.NotNil(t, stored)
		assert.Equal(t, "room-1", stored.ClassroomID)
		assert.Equal(t, mustTime("09:00"), stored.StartTime)
	})

	t.Run("missing ids", func(t *testing.T) {
		f := newAssignmentFixture()
		for _, req := range []*domain.ClassroomAssignmentRequest{
			nil,
			{ClassroomID: "room-1"},
			{CurriculumItemID: "item-1"},
		} {
			res := f.svc.Assign(ctx, req)
			require.False(t, res.Success)
			assert.Contains(t, res.Message, "invalid request")
		}
		assert.Zero(t, f.repo.upsertCalled)
	})

	t.Run("classroom not found", func(t *testing.T) {
		f := newAssignmentFixture()
		f.schedule("item-1", "09:00", "10:00", "Algebra")

		res := f.svc.Assign(ctx, &domain.ClassroomAssignmentRequest{CurriculumItemID: "item-1", ClassroomID: "room-missing"})
		require.False(t, res.Success)
		assert.Contains(t, res.Message, "classroom room-missing not found")
	})

	t.Run("no schedule defined", func(t *testing.T) {
		f := newAssignmentFixture()

		res := f.svc.Assign(ctx, &domain.ClassroomAssignmentRequest{CurriculumItemID: "item-unplanned", ClassroomID: "room-1"})
		require.False(t, res.Success)
		assert.Contains(t, res.Message, "no schedule defined")
	})

	t.Run("overlap rejected and names the holder", func(t *testing.T) {
		f := newAssignmentFixture()
		f.schedule("item-x", "09:00", "11:00", "Algebra")
		f.schedule("item-y", "10:00", "12:00", "Biology")

		require.True(t, f.svc.Assign(ctx, &domain.ClassroomAssignmentRequest{CurriculumItemID: "item-x", ClassroomID: "room-1"}).Success)

		res := f.svc.Assign(ctx, &domain.ClassroomAssignmentRequest{CurriculumItemID: "item-y", ClassroomID: "room-1"})
		require.False(t, res.Success)
		assert.Contains(t, res.Message, `"Algebra"`)
		assert.Contains(t, res.Message, "09:00-11:00")
		assert.NotContains(t, f.repo.byItem, "item-y")
	})

	t.Run("touching boundary succeeds", func(t *testing.T) {
		f := newAssignmentFixture()
		f.schedule("item-a", "09:00", "10:00", "Algebra")
		f.schedule("item-b", "10:00", "11:00", "Biology")

		require.True(t, f.svc.Assign(ctx, &domain.ClassroomAssignmentRequest{CurriculumItemID: "item-a", ClassroomID: "room-1"}).Success)
		require.True(t, f.svc.Assign(ctx, &domain.ClassroomAssignmentRequest{CurriculumItemID: "item-b", ClassroomID: "room-1"}).Success)
	})

	t.Run("idempotent reassignment to same slot", func(t *testing.T) {
		f := newAssignmentFixture()
		f.schedule("item-1", "09:00", "10:00", "Algebra")

		require.True(t, f.svc.Assign(ctx, &domain.ClassroomAssignmentRequest{CurriculumItemID: "item-1", ClassroomID: "room-1"}).Success)
		res := f.svc.Assign(ctx, &domain.ClassroomAssignmentRequest{CurriculumItemID: "item-1", ClassroomID: "room-1"})
		require.True(t, res.Success)
		assert.Len(t, f.repo.byItem, 1)
	})

	t.Run("reassignment to another classroom replaces the binding", func(t *testing.T) {
		f := newAssignmentFixture()
		f.schedule("item-1", "09:00", "10:00", "Algebra")

		require.True(t, f.svc.Assign(ctx, &domain.ClassroomAssignmentRequest{CurriculumItemID: "item-1", ClassroomID: "room-1"}).Success)
		require.True(t, f.svc.Assign(ctx, &domain.ClassroomAssignmentRequest{CurriculumItemID: "item-1", ClassroomID: "room-2"}).Success)

		require.Len(t, f.repo.byItem, 1)
		assert.Equal(t, "room-2", f.repo.byItem["item-1"].ClassroomID)
	})

	t.Run("write-time guard violation reported as conflict", func(t *testing.T) {
		f := newAssignmentFixture()
		f.repo.upsertErr = domain.ErrConflict
		f.schedule("item-1", "09:00", "10:00", "Algebra")

		res := f.svc.Assign(ctx, &domain.ClassroomAssignmentRequest{CurriculumItemID: "item-1", ClassroomID: "room-1"})
		require.False(t, res.Success)
		assert.Contains(t, res.Message, "booked concurrently")
	})

	t.Run("storage failure surfaces generic message", func(t *testing.T) {
		f := newAssignmentFixture()
		f.repo.upsertErr = errors.New("broken pipe")
		f.schedule("item-1", "09:00", "10:00", "Algebra")

		res := f.svc.Assign(ctx, &domain.ClassroomAssignmentRequest{CurriculumItemID: "item-1", ClassroomID: "room-1"})
		require.False(t, res.Success)
		assert.Equal(t, msgStorageFailure, res.Message)
	})

	t.Run("notice sent when instructor email present", func(t *testing.T) {
		f := newAssignmentFixture()
		f.curriculum.windows["item-1"] = &domain.ScheduledWindow{
			Date:            testDate(1),
			StartTime:       mustTime("09:00"),
			EndTime:         mustTime("10:00"),
			Subject:         "Algebra",
			InstructorName:  "R. Lee",
			InstructorEmail: "lee@example.com",
		}

		require.True(t, f.svc.Assign(ctx, &domain.ClassroomAssignmentRequest{CurriculumItemID: "item-1", ClassroomID: "room-1"}).Success)
		require.Len(t, f.notifier.notices, 1)
		assert.Equal(t, "lee@example.com", f.notifier.notices[0].InstructorEmail)
		assert.Equal(t, "Room 101", f.notifier.notices[0].ClassroomName)
	})
}

func TestAssignmentService_AssignBulk(t *testing.T) {
	ctx := context.Background()

	t.Run("empty input", func(t *testing.T) {
		f := newAssignmentFixture()
		res := f.svc.AssignBulk(ctx, nil)
		assert.Equal(t, &domain.BulkAssignmentResult{Total: 0, Success: 0, Failed: 0, Errors: []string{}}, res)
	})

	t.Run("partial failure accounting", func(t *testing.T) {
		f := newAssignmentFixture()
		// Items 2 and 4 collide with pre-existing bookings in room-1.
		f.schedule("item-1", "08:00", "09:00", "Algebra")
		f.schedule("item-2", "09:30", "10:30", "Biology")
		f.schedule("item-3", "11:00", "12:00", "Chemistry")
		f.schedule("item-4", "13:30", "14:30", "History")
		f.schedule("item-5", "15:00", "16:00", "Physics")
		require.NoError(t, f.repo.Upsert(ctx, reservation("held-a", "room-1", 1, "09:00", "10:00", "Staff meeting")))
		require.NoError(t, f.repo.Upsert(ctx, reservation("held-b", "room-1", 1, "13:00", "14:00", "Maintenance")))

		reqs := []*domain.ClassroomAssignmentRequest{
			{CurriculumItemID: "item-1", ClassroomID: "room-1"},
			{CurriculumItemID: "item-2", ClassroomID: "room-1"},
			{CurriculumItemID: "item-3", ClassroomID: "room-1"},
			{CurriculumItemID: "item-4", ClassroomID: "room-1"},
			{CurriculumItemID: "item-5", ClassroomID: "room-1"},
		}
		res := f.svc.AssignBulk(ctx, reqs)

		assert.Equal(t, 5, res.Total)
		assert.Equal(t, 3, res.Success)
		assert.Equal(t, 2, res.Failed)
		require.Len(t, res.Errors, 2)
		assert.Contains(t, res.Errors[0], "item-2")
		assert.Contains(t, res.Errors[1], "item-4")
		assert.Equal(t, res.Total, res.Success+res.Failed)
	})

	t.Run("failure does not block later items", func(t *testing.T) {
		f := newAssignmentFixture()
		f.schedule("item-ok", "09:00", "10:00", "Algebra")

		res := f.svc.AssignBulk(ctx, []*domain.ClassroomAssignmentRequest{
			{CurriculumItemID: "item-unplanned", ClassroomID: "room-1"},
			{CurriculumItemID: "item-ok", ClassroomID: "room-1"},
		})
		assert.Equal(t, 2, res.Total)
		assert.Equal(t, 1, res.Success)
		assert.Equal(t, 1, res.Failed)
		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0], "item-unplanned")
	})

	t.Run("same-batch collision loses with conflict not overwrite", func(t *testing.T) {
		f := newAssignmentFixture()
		f.repo.guardActive = true
		f.schedule("item-a", "09:00", "10:00", "Algebra")
		f.schedule("item-b", "09:30", "10:30", "Biology")

		res := f.svc.AssignBulk(ctx, []*domain.ClassroomAssignmentRequest{
			{CurriculumItemID: "item-a", ClassroomID: "room-1"},
			{CurriculumItemID: "item-b", ClassroomID: "room-1"},
		})
		assert.Equal(t, 1, res.Success)
		assert.Equal(t, 1, res.Failed)
		assert.NotContains(t, f.repo.byItem, "item-b")
	})
}

func TestAssignmentService_Unassign(t *testing.T) {
	ctx := context.Background()

	t.Run("releases reservation", func(t *testing.T) {
		f := newAssignmentFixture()
		f.schedule("item-1", "09:00", "10:00", "Algebra")
		require.True(t, f.svc.Assign(ctx, &domain.ClassroomAssignmentRequest{CurriculumItemID: "item-1", ClassroomID: "room-1"}).Success)

		require.NoError(t, f.svc.Unassign(ctx, "item-1"))
		assert.Empty(t, f.repo.byItem)
	})

	t.Run("missing reservation", func(t *testing.T) {
		f := newAssignmentFixture()
		require.ErrorIs(t, f.svc.Unassign(ctx, "item-none"), domain.ErrNotFound)
	})

	t.Run("empty id", func(t *testing.T) {
		f := newAssignmentFixture()
		require.ErrorIs(t, f.svc.Unassign(ctx, ""), domain.ErrInvalidInput)
	})
}
