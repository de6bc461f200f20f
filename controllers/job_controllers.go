package controllers

import (
	"jobboard/dto"
	apperr "jobboard/errors"
	"jobboard/middleware"
	"jobboard/models"
	"jobboard/response"
	"jobboard/services"
	"jobboard/services/logger"

	"github.com/gin-gonic/gin"
)

type JobController struct {
	jobs       *services.JobService
	engagement *services.EngagementService
	logger     logger.Logger
}

func NewJobController(jobs *services.JobService, engagement *services.EngagementService, log logger.Logger) *JobController {
	return &JobController{jobs: jobs, engagement: engagement, logger: log}
}

// GetAllJobs godoc
// @Summary  Danh sách job, hỗ trợ lọc, sắp xếp và tìm kiếm gần đúng theo q
// @Tags     jobs
// @Produce  json
// @Param    q        query string false "Từ khóa"
// @Param    category query string false "Ngành"
// @Param    sort     query string false "newest | deadline | trending"
// @Param    page     query int    false "Trang"
// @Param    limit    query int    false "Số phần tử mỗi trang"
// @Success  200 {object} response.Response
// @Router   /jobs [get]
func (ctrl *JobController) GetAllJobs(c *gin.Context) {
	var q dto.JobListQuery
	if !bindQuery(c, &q) {
		return
	}

	result, err := ctrl.jobs.List(c.Request.Context(), q)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, result)
}

// GetMyJobs godoc
// @Summary  Danh sách job của employer đang đăng nhập
// @Tags     jobs
// @Produce  json
// @Security BearerAuth
// @Param    status query string false "Active | Inactive | Closed"
// @Param    page   query int    false "Trang"
// @Param    limit  query int    false "Số phần tử mỗi trang"
// @Success  200 {object} response.Response
// @Router   /myJobs [get]
func (ctrl *JobController) GetMyJobs(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var q dto.JobListQuery
	if !bindQuery(c, &q) {
		return
	}

	result, err := ctrl.jobs.ListMine(c.Request.Context(), actor, q)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, result)
}

// GetJobDetail godoc
// @Summary  Chi tiết job; mỗi lần xem được ghi nhận tối đa một lượt/ngày cho mỗi IP
// @Tags     jobs
// @Produce  json
// @Param    id path int true "Job ID"
// @Success  200 {object} response.Response
// @Failure  404 {object} response.Response
// @Router   /jobs/{id} [get]
func (ctrl *JobController) GetJobDetail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	// lỗi ghi lượt xem không chặn việc trả chi tiết job
	if err := ctrl.engagement.RecordView(ctx, id, viewerIdentity(c)); err != nil && !apperr.HasCode(err, apperr.ErrCodeNotFound) {
		ctrl.logger.Warn("⚠️ Không ghi được lượt xem job %d: %v", id, err)
	}

	detail, err := ctrl.jobs.Detail(ctx, id, optionalActor(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, detail)
}

// CreateJob godoc
// @Summary  Employer đăng job mới
// @Tags     jobs
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body dto.CreateJobRequest true "Thông tin job"
// @Success  201 {object} response.Response
// @Failure  400 {object} response.Response
// @Router   /jobs [post]
func (ctrl *JobController) CreateJob(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateJobRequest
	if !bindJSON(c, &req) {
		return
	}

	job, err := ctrl.jobs.Create(c.Request.Context(), actor, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, "Tạo job thành công", job)
}

// UpdateJob godoc
// @Summary  Sửa job; field bỏ trống được giữ nguyên
// @Tags     jobs
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id   path int                  true "Job ID"
// @Param    body body dto.UpdateJobRequest true "Các field cần sửa"
// @Success  200 {object} response.Response
// @Failure  403 {object} response.Response
// @Router   /jobs/{id} [put]
func (ctrl *JobController) UpdateJob(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateJobRequest
	if !bindJSON(c, &req) {
		return
	}

	job, err := ctrl.jobs.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, job)
}

// ChangeJobStatus godoc
// @Summary  Đổi trạng thái job
// @Tags     jobs
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id   path int                  true "Job ID"
// @Param    body body dto.JobStatusRequest true "Active | Inactive | Closed"
// @Success  200 {object} response.Response
// @Failure  400 {object} response.Response
// @Router   /jobs/{id}/status [put]
func (ctrl *JobController) ChangeJobStatus(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.JobStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	job, err := ctrl.jobs.SetStatus(c.Request.Context(), actor, id, req.Status)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, job)
}

// ChangeJobTrending godoc
// @Summary  Bật/tắt cờ trending của job
// @Tags     jobs
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id   path int                    true "Job ID"
// @Param    body body dto.JobTrendingRequest true "Cờ trending"
// @Success  200 {object} response.Response
// @Router   /jobs/{id}/trending [put]
func (ctrl *JobController) ChangeJobTrending(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.JobTrendingRequest
	if !bindJSON(c, &req) {
		return
	}

	job, err := ctrl.jobs.SetTrending(c.Request.Context(), actor, id, *req.Trending)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, job)
}

// DeleteJob godoc
// @Summary  Chủ job hoặc admin xóa job
// @Tags     jobs
// @Produce  json
// @Security BearerAuth
// @Param    id path int true "Job ID"
// @Success  200 {object} response.Response
// @Failure  403 {object} response.Response
// @Router   /jobs/{id} [delete]
func (ctrl *JobController) DeleteJob(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.jobs.Delete(c.Request.Context(), actor, id); err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": id})
}

func optionalActor(c *gin.Context) *models.Actor {
	if actor, ok := middleware.CurrentActor(c); ok {
		return &actor
	}
	return nil
}
