package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/atcampus/internal/app/models/dto"
	"github.com/yigit/atcampus/internal/app/services"
	"github.com/yigit/atcampus/internal/middleware"
	"github.com/yigit/atcampus/internal/pkg/helpers"
)

// ResearchController handles research pages and collaboration requests
type ResearchController struct {
	researchService services.ResearchService
	logger          zerolog.Logger
}

// NewResearchController creates a new ResearchController
func NewResearchController(researchService services.ResearchService, logger zerolog.Logger) *ResearchController {
	return &ResearchController{
		researchService: researchService,
		logger:          logger,
	}
}

// GetResearch returns the research page for the viewer
// @Summary Get research page
// @Description Returns the research with owner and collaborator avatars, attachments and rendered description. pendingRequests is only populated for the owner and is null otherwise.
// @Tags research
// @Produce json
// @Security BearerAuth
// @Param id path string true "Research ID" format(uuid)
// @Success 200 {object} dto.APIResponse{data=dto.ResearchViewResponse} "Research page"
// @Failure 400 {object} dto.ErrorResponse "Invalid research ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Research not found"
// @Router /researches/{id} [get]
func (c *ResearchController) GetResearch(ctx *gin.Context) {
	viewer, ok := requireViewer(ctx)
	if !ok {
		return
	}

	view, err := c.researchService.GetResearchView(ctx.Request.Context(), ctx.Param("id"), viewer)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(view))
}

// CreateResearch publishes a new research
// @Summary Create research
// @Description Creates a research owned by the viewer. The description is the rich-text editor's JSON document.
// @Tags research
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateResearchRequest true "Research description"
// @Success 201 {object} dto.APIResponse{data=dto.ResearchViewResponse} "Created research"
// @Failure 400 {object} dto.ErrorResponse "Invalid description"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /researches [post]
func (c *ResearchController) CreateResearch(ctx *gin.Context) {
	viewer, ok := requireViewer(ctx)
	if !ok {
		return
	}
	req, ok := middleware.BindJSON[dto.CreateResearchRequest](ctx)
	if !ok {
		return
	}

	view, err := c.researchService.CreateResearch(ctx.Request.Context(), viewer, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(view))
}

// ListMyResearches lists the viewer's own researches
// @Summary List my researches
// @Description Lists researches owned by the viewer, newest first
// @Tags research
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.ResearchListResponse} "Researches"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /researches/mine [get]
func (c *ResearchController) ListMyResearches(ctx *gin.Context) {
	viewer, ok := requireViewer(ctx)
	if !ok {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	list, err := c.researchService.ListMyResearches(ctx.Request.Context(), viewer, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(list))
}

// RequestCollaboration asks to join a research
// @Summary Request collaboration
// @Description Opens a PENDING collaboration request from the viewer. The owner is notified over the realtime channel.
// @Tags research
// @Produce json
// @Security BearerAuth
// @Param id path string true "Research ID" format(uuid)
// @Success 201 {object} dto.APIResponse{data=dto.CollaborationRequestResponse} "Request created"
// @Failure 400 {object} dto.ErrorResponse "Owner cannot request to join own research"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Research not found"
// @Failure 409 {object} dto.ErrorResponse "Already a collaborator or request already pending"
// @Router /researches/{id}/requests [post]
func (c *ResearchController) RequestCollaboration(ctx *gin.Context) {
	viewer, ok := requireViewer(ctx)
	if !ok {
		return
	}

	request, err := c.researchService.RequestCollaboration(ctx.Request.Context(), ctx.Param("id"), viewer)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(request))
}

// ListPendingRequests lists pending collaboration requests
// @Summary List pending requests
// @Description Lists PENDING collaboration requests in creation order. Owner only.
// @Tags research
// @Produce json
// @Security BearerAuth
// @Param id path string true "Research ID" format(uuid)
// @Success 200 {object} dto.APIResponse{data=[]dto.CollaborationRequestResponse} "Pending requests"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the research owner"
// @Failure 404 {object} dto.ErrorResponse "Research not found"
// @Router /researches/{id}/requests [get]
func (c *ResearchController) ListPendingRequests(ctx *gin.Context) {
	viewer, ok := requireViewer(ctx)
	if !ok {
		return
	}

	requests, err := c.researchService.ListPendingRequests(ctx.Request.Context(), ctx.Param("id"), viewer)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(requests))
}

// ResolveRequest accepts or declines a collaboration request
// @Summary Resolve collaboration request
// @Description Accepts or declines a PENDING request. Owner only. Accepting adds the requester to the collaborators exactly once. A request can be resolved only once; concurrent attempts after the first get 409.
// @Tags research
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Research ID" format(uuid)
// @Param requestId path string true "Request ID" format(uuid)
// @Param request body dto.ResolveRequestRequest true "Decision"
// @Success 200 {object} dto.APIResponse{data=dto.ResolutionResponse} "Resolved request"
// @Failure 400 {object} dto.ErrorResponse "Decision must be ACCEPT or DECLINE"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the research owner"
// @Failure 404 {object} dto.ErrorResponse "Research or request not found"
// @Failure 409 {object} dto.ErrorResponse "Request already handled"
// @Router /researches/{id}/requests/{requestId} [put]
func (c *ResearchController) ResolveRequest(ctx *gin.Context) {
	viewer, ok := requireViewer(ctx)
	if !ok {
		return
	}
	req, ok := middleware.BindJSON[dto.ResolveRequestRequest](ctx)
	if !ok {
		return
	}

	resolution, err := c.researchService.ResolveRequest(ctx.Request.Context(),
		ctx.Param("id"), ctx.Param("requestId"), viewer, req.Decision)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resolution))
}

// AddAttachment uploads a PDF to a research
// @Summary Upload attachment
// @Description Attaches a PDF file to the research. Owner only.
// @Tags research
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Research ID" format(uuid)
// @Param file formData file true "PDF file"
// @Success 201 {object} dto.APIResponse{data=dto.AttachmentResponse} "Attachment stored"
// @Failure 400 {object} dto.ErrorResponse "Missing file or not a PDF"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the research owner"
// @Failure 404 {object} dto.ErrorResponse "Research not found"
// @Failure 413 {object} dto.ErrorResponse "File too large"
// @Router /researches/{id}/attachments [post]
func (c *ResearchController) AddAttachment(ctx *gin.Context) {
	viewer, ok := requireViewer(ctx)
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeBadRequest, "File too large")
			ctx.JSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponse(errorDetail))
			return
		}
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "File is required").WithField("file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	attachment, err := c.researchService.AddAttachment(ctx.Request.Context(), ctx.Param("id"), viewer, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(attachment))
}

// DeleteAttachment removes an attachment
// @Summary Delete attachment
// @Description Removes an attachment and its stored file. Owner only.
// @Tags research
// @Produce json
// @Security BearerAuth
// @Param id path string true "Research ID" format(uuid)
// @Param attachmentId path string true "Attachment ID" format(uuid)
// @Success 200 {object} dto.APIResponse "Attachment deleted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the research owner"
// @Failure 404 {object} dto.ErrorResponse "Research or attachment not found"
// @Router /researches/{id}/attachments/{attachmentId} [delete]
func (c *ResearchController) DeleteAttachment(ctx *gin.Context) {
	viewer, ok := requireViewer(ctx)
	if !ok {
		return
	}

	if err := c.researchService.DeleteAttachment(ctx.Request.Context(), ctx.Param("id"), ctx.Param("attachmentId"), viewer); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Attachment deleted"))
}
