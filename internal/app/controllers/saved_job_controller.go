package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/atcampus/internal/app/models/dto"
	"github.com/yigit/atcampus/internal/app/services"
	"github.com/yigit/atcampus/internal/middleware"
	"github.com/yigit/atcampus/internal/pkg/helpers"
)

// SavedJobController handles the job board and bookmarks
type SavedJobController struct {
	savedJobService services.SavedJobService
	logger          zerolog.Logger
}

// NewSavedJobController creates a new SavedJobController
func NewSavedJobController(savedJobService services.SavedJobService, logger zerolog.Logger) *SavedJobController {
	return &SavedJobController{
		savedJobService: savedJobService,
		logger:          logger,
	}
}

// CreateJob posts a job
// @Summary Post a job
// @Description Posts a job on the board
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateJobRequest true "Job"
// @Success 201 {object} dto.APIResponse{data=dto.JobResponse} "Posted job"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Job already posted for this company"
// @Router /jobs [post]
func (c *SavedJobController) CreateJob(ctx *gin.Context) {
	viewer, ok := requireViewer(ctx)
	if !ok {
		return
	}
	req, ok := middleware.BindJSON[dto.CreateJobRequest](ctx)
	if !ok {
		return
	}

	job, err := c.savedJobService.CreateJob(ctx.Request.Context(), viewer, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(job))
}

// GetJob returns a job
// @Summary Get job
// @Description Returns a job with the viewer's bookmark state
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID" format(uuid)
// @Success 200 {object} dto.APIResponse{data=dto.JobResponse} "Job"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Router /jobs/{id} [get]
func (c *SavedJobController) GetJob(ctx *gin.Context) {
	viewer, ok := requireViewer(ctx)
	if !ok {
		return
	}

	job, err := c.savedJobService.GetJob(ctx.Request.Context(), ctx.Param("id"), viewer)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(job))
}

// SaveJob bookmarks a job
// @Summary Save job
// @Description Bookmarks a job. Saving twice keeps the first save time.
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID" format(uuid)
// @Success 200 {object} dto.APIResponse{data=dto.SavedJobResponse} "Bookmark"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Router /jobs/{id}/save [put]
func (c *SavedJobController) SaveJob(ctx *gin.Context) {
	viewer, ok := requireViewer(ctx)
	if !ok {
		return
	}

	saved, err := c.savedJobService.SaveJob(ctx.Request.Context(), ctx.Param("id"), viewer)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(saved))
}

// UnsaveJob removes a bookmark
// @Summary Unsave job
// @Description Removes a bookmark. Removing a missing bookmark succeeds.
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID" format(uuid)
// @Success 200 {object} dto.APIResponse "Bookmark removed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /jobs/{id}/save [delete]
func (c *SavedJobController) UnsaveJob(ctx *gin.Context) {
	viewer, ok := requireViewer(ctx)
	if !ok {
		return
	}

	if err := c.savedJobService.UnsaveJob(ctx.Request.Context(), ctx.Param("id"), viewer); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Bookmark removed"))
}

// ListSavedJobs lists the viewer's bookmarks
// @Summary List saved jobs
// @Description Lists the viewer's bookmarks, most recently saved first
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.SavedJobListResponse} "Bookmarks"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /jobs/saved [get]
func (c *SavedJobController) ListSavedJobs(ctx *gin.Context) {
	viewer, ok := requireViewer(ctx)
	if !ok {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	list, err := c.savedJobService.ListSavedJobs(ctx.Request.Context(), viewer, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(list))
}
