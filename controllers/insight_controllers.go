package controllers

import (
	"jobboard/dto"
	"jobboard/response"
	"jobboard/services"

	"github.com/gin-gonic/gin"
)

type InsightController struct {
	insights *services.InsightService
}

func NewInsightController(insights *services.InsightService) *InsightController {
	return &InsightController{insights: insights}
}

// GetEmployerInsights godoc
// @Summary  Thống kê job, đơn ứng tuyển, lượt xem và like của employer
// @Tags     insights
// @Produce  json
// @Security BearerAuth
// @Param    bucket  query string false "day | week | month"
// @Param    periods query int    false "Số bucket gần nhất"
// @Success  200 {object} response.Response
// @Router   /insights/employer [get]
func (ctrl *InsightController) GetEmployerInsights(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var q dto.InsightQuery
	if !bindQuery(c, &q) {
		return
	}

	res, err := ctrl.insights.Employer(c.Request.Context(), actor, q)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, res)
}

// GetPlatformInsights godoc
// @Summary  Thống kê toàn hệ thống cho admin
// @Tags     insights
// @Produce  json
// @Security BearerAuth
// @Param    bucket  query string false "day | week | month"
// @Param    periods query int    false "Số bucket gần nhất"
// @Success  200 {object} response.Response
// @Router   /insights/platform [get]
func (ctrl *InsightController) GetPlatformInsights(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var q dto.InsightQuery
	if !bindQuery(c, &q) {
		return
	}

	res, err := ctrl.insights.Platform(c.Request.Context(), actor, q)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, res)
}
