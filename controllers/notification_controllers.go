package controllers

import (
	"strconv"

	"jobboard/dto"
	"jobboard/response"
	"jobboard/services"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	feed *services.FeedService
}

func NewNotificationController(feed *services.FeedService) *NotificationController {
	return &NotificationController{feed: feed}
}

// GetFeed godoc
// @Summary  Notification của user và announcement đang hoạt động, mới nhất trước
// @Tags     notifications
// @Produce  json
// @Security BearerAuth
// @Param    limit query int false "Số phần tử tối đa"
// @Success  200 {object} response.Response
// @Router   /notifications [get]
func (ctrl *NotificationController) GetFeed(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		response.BadRequest(c, "limit không hợp lệ")
		return
	}

	items, err := ctrl.feed.Feed(c.Request.Context(), actor, limit)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, items)
}

// CreateAnnouncement godoc
// @Summary  Admin tạo announcement cho một nhóm user
// @Tags     notifications
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body dto.CreateAnnouncementRequest true "Nội dung announcement"
// @Success  201 {object} response.Response
// @Router   /announcements [post]
func (ctrl *NotificationController) CreateAnnouncement(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateAnnouncementRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := ctrl.feed.CreateAnnouncement(c.Request.Context(), actor, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, "Tạo thông báo thành công", a)
}

// GetAnnouncements godoc
// @Summary  Danh sách announcement cho admin
// @Tags     notifications
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} response.Response
// @Router   /announcements [get]
func (ctrl *NotificationController) GetAnnouncements(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	list, err := ctrl.feed.ListAnnouncements(c.Request.Context(), actor)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, list)
}

// DeactivateAnnouncement godoc
// @Summary  Tắt một announcement
// @Tags     notifications
// @Produce  json
// @Security BearerAuth
// @Param    id path int true "Announcement ID"
// @Success  200 {object} response.Response
// @Failure  404 {object} response.Response
// @Router   /announcements/{id} [delete]
func (ctrl *NotificationController) DeactivateAnnouncement(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.feed.DeactivateAnnouncement(c.Request.Context(), actor, id); err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, gin.H{"id": id, "isActive": false})
}
