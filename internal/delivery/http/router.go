package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"trainingadmin/internal/delivery/http/controllers"
	"trainingadmin/internal/delivery/http/middleware"
	"trainingadmin/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(
	assignmentController *controllers.AssignmentController,
	classroomController *controllers.ClassroomController,
	verifier domain.TokenVerifier,
	logger *slog.Logger,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Assignments
	mux.HandleFunc("POST /assignments", auth(assignmentController.Assign))
	mux.HandleFunc("POST /assignments/bulk", auth(assignmentController.AssignBulk))
	mux.HandleFunc("DELETE /assignments/{curriculumItemID}", auth(assignmentController.Unassign))

	// Classrooms
	mux.HandleFunc("GET /classrooms/available", auth(classroomController.FindAvailable))
	mux.HandleFunc("GET /classrooms/{classroomID}/schedule", auth(classroomController.GetSchedule))

	// Health
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
