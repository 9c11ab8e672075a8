package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"trainingadmin/internal/delivery/http/helpers"
	"trainingadmin/internal/domain"
)

// AssignClassroomRequest is the request body for POST /assignments.
type AssignClassroomRequest struct {
	CurriculumItemID string `json:"curriculum_item_id"`
	ClassroomID      string `json:"classroom_id"`
}

// Validate implements Validator. Returns error messages for required fields.
func (r AssignClassroomRequest) Validate() []string {
	var errs []string
	if r.CurriculumItemID == "" {
		errs = append(errs, "curriculum_item_id is required")
	}
	if r.ClassroomID == "" {
		errs = append(errs, "classroom_id is required")
	}
	return errs
}

// BulkAssignRequest is the request body for POST /assignments/bulk.
type BulkAssignRequest struct {
	Assignments []AssignClassroomRequest `json:"assignments"`
}

// AssignSuccessResponse is the response envelope for POST /assignments (200).
type AssignSuccessResponse struct {
	Data  *domain.ClassroomAssignmentResult `json:"data"`
	Error *helpers.APIError                 `json:"error"`
}

// BulkAssignSuccessResponse is the response envelope for POST /assignments/bulk (200).
type BulkAssignSuccessResponse struct {
	Data  *domain.BulkAssignmentResult `json:"data"`
	Error *helpers.APIError            `json:"error"`
}

type AssignmentController struct {
	Logger  *slog.Logger
	Service domain.AssignmentService
}

func NewAssignmentController(logger *slog.Logger, svc domain.AssignmentService) *AssignmentController {
	return &AssignmentController{
		Logger:  logger,
		Service: svc,
	}
}

// Assign godoc
// @Summary Assign a classroom to a curriculum item
// @Description Validates the request, checks the classroom for time conflicts at the item's planned window, and persists the reservation. Conflicts and validation failures are reported in the result body with success=false, not as HTTP errors.
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param assignment body AssignClassroomRequest true "Assignment request"
// @Success 200 {object} controllers.AssignSuccessResponse "data contains the assignment result"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /assignments [post]
func (c *AssignmentController) Assign(w http.ResponseWriter, r *http.Request) {
	var req AssignClassroomRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	result := c.Service.Assign(r.Context(), &domain.ClassroomAssignmentRequest{
		CurriculumItemID: req.CurriculumItemID,
		ClassroomID:      req.ClassroomID,
	})
	if !result.Success {
		c.Logger.InfoContext(r.Context(), "assignment rejected",
			"curriculum_item_id", req.CurriculumItemID,
			"classroom_id", req.ClassroomID,
			"reason", result.Message,
		)
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// AssignBulk godoc
// @Summary Assign classrooms in bulk
// @Description Processes each assignment independently in input order; a failed item never blocks the rest. Per-item failures are accumulated in the errors array.
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param assignments body BulkAssignRequest true "Bulk assignment request"
// @Success 200 {object} controllers.BulkAssignSuccessResponse "data contains per-item accounting"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /assignments/bulk [post]
func (c *AssignmentController) AssignBulk(w http.ResponseWriter, r *http.Request) {
	var req BulkAssignRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	reqs := make([]*domain.ClassroomAssignmentRequest, 0, len(req.Assignments))
	for _, a := range req.Assignments {
		reqs = append(reqs, &domain.ClassroomAssignmentRequest{
			CurriculumItemID: a.CurriculumItemID,
			ClassroomID:      a.ClassroomID,
		})
	}
	result := c.Service.AssignBulk(r.Context(), reqs)
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// Unassign godoc
// @Summary Release a curriculum item's reservation
// @Description Deletes the active reservation for the curriculum item, freeing its classroom slot.
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param curriculumItemID path string true "Curriculum item ID"
// @Success 204 "reservation released"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /assignments/{curriculumItemID} [delete]
func (c *AssignmentController) Unassign(w http.ResponseWriter, r *http.Request) {
	curriculumItemID := r.PathValue("curriculumItemID")
	if curriculumItemID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing curriculumItemID")
		return
	}
	if err := c.Service.Unassign(r.Context(), curriculumItemID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "no active reservation for curriculum item")
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "could not release reservation")
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
