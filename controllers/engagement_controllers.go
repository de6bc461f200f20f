package controllers

import (
	"context"

	"jobboard/dto"
	"jobboard/models"
	"jobboard/response"
	"jobboard/services"

	"github.com/gin-gonic/gin"
)

type EngagementController struct {
	engagement *services.EngagementService
}

func NewEngagementController(engagement *services.EngagementService) *EngagementController {
	return &EngagementController{engagement: engagement}
}

// ToggleLike godoc
// @Summary  Bấm like; bấm lần nữa để bỏ like, like thay thế dislike
// @Tags     engagement
// @Produce  json
// @Security BearerAuth
// @Param    id path int true "Job ID"
// @Success  200 {object} response.Response
// @Router   /jobs/{id}/like [post]
func (ctrl *EngagementController) ToggleLike(c *gin.Context) {
	ctrl.react(c, ctrl.engagement.ToggleLike)
}

// ToggleDislike godoc
// @Summary  Bấm dislike; bấm lần nữa để bỏ, dislike thay thế like
// @Tags     engagement
// @Produce  json
// @Security BearerAuth
// @Param    id path int true "Job ID"
// @Success  200 {object} response.Response
// @Router   /jobs/{id}/dislike [post]
func (ctrl *EngagementController) ToggleDislike(c *gin.Context) {
	ctrl.react(c, ctrl.engagement.ToggleDislike)
}

func (ctrl *EngagementController) react(c *gin.Context, toggle func(ctx context.Context, actor models.Actor, jobID uint) (dto.ReactionCounts, error)) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	jobID, ok := paramID(c, "id")
	if !ok {
		return
	}

	counts, err := toggle(c.Request.Context(), actor, jobID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, counts)
}

// ToggleSave godoc
// @Summary  Lưu hoặc bỏ lưu job
// @Tags     engagement
// @Produce  json
// @Security BearerAuth
// @Param    id path int true "Job ID"
// @Success  200 {object} response.Response
// @Router   /jobs/{id}/save [post]
func (ctrl *EngagementController) ToggleSave(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	jobID, ok := paramID(c, "id")
	if !ok {
		return
	}

	saved, err := ctrl.engagement.ToggleSave(c.Request.Context(), actor, jobID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, dto.SaveResponse{Saved: saved})
}

// GetSavedJobs godoc
// @Summary  Danh sách job đã lưu
// @Tags     engagement
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} response.Response
// @Router   /savedJobs [get]
func (ctrl *EngagementController) GetSavedJobs(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	jobs, err := ctrl.engagement.SavedJobs(c.Request.Context(), actor)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, jobs)
}

// GetUniqueViews godoc
// @Summary  Danh sách viewer không trùng lặp của một job
// @Tags     engagement
// @Produce  json
// @Security BearerAuth
// @Param    id path int true "Job ID"
// @Success  200 {object} response.Response
// @Failure  403 {object} response.Response
// @Router   /jobs/{id}/views [get]
func (ctrl *EngagementController) GetUniqueViews(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	jobID, ok := paramID(c, "id")
	if !ok {
		return
	}

	views, err := ctrl.engagement.UniqueViews(c.Request.Context(), actor, jobID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, views)
}
