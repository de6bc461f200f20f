package controllers

import (
	"jobboard/dto"
	"jobboard/response"
	"jobboard/services"

	"github.com/gin-gonic/gin"
)

type ApplicationController struct {
	applications *services.ApplicationService
	uploads      *services.UploadService
}

func NewApplicationController(applications *services.ApplicationService, uploads *services.UploadService) *ApplicationController {
	return &ApplicationController{applications: applications, uploads: uploads}
}

// ApplyJob godoc
// @Summary  Ứng tuyển job bằng multipart form; CV ở field resume
// @Tags     applications
// @Accept   mpfd
// @Produce  json
// @Security BearerAuth
// @Param    id            path     int    true  "Job ID"
// @Param    coverLetter   formData string true  "Thư giới thiệu"
// @Param    howDidYouHear formData string false "Biết đến job qua đâu"
// @Param    resume        formData file   true  "CV (pdf, doc, docx)"
// @Success  201 {object} response.Response
// @Failure  400 {object} response.Response
// @Router   /jobs/{id}/apply [post]
func (ctrl *ApplicationController) ApplyJob(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	jobID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.ApplyRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Thiếu thư giới thiệu")
		return
	}
	file, err := c.FormFile("resume")
	if err != nil {
		response.BadRequest(c, "Thiếu file CV")
		return
	}

	// kiểm tra trước để đơn bị từ chối không để lại CV trên storage
	if err := ctrl.applications.CheckEligible(c.Request.Context(), actor, jobID); err != nil {
		response.Fail(c, err)
		return
	}

	resume, err := ctrl.uploads.UploadResume(c.Request.Context(), file)
	if err != nil {
		response.Fail(c, err)
		return
	}

	app, err := ctrl.applications.Apply(c.Request.Context(), actor, services.ApplyInput{
		JobID:         jobID,
		CoverLetter:   req.CoverLetter,
		HowDidYouHear: req.HowDidYouHear,
		Resume:        resume,
	})
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, "Ứng tuyển thành công", dto.ApplyResponse{ApplicationID: app.ID})
}

// ChangeApplicationStatus godoc
// @Summary  Employer sở hữu job (hoặc admin) đổi trạng thái đơn ứng tuyển
// @Tags     applications
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id   path int                          true "Application ID"
// @Param    body body dto.ApplicationStatusRequest true "Pending | Reviewed | Accepted | Rejected"
// @Success  200 {object} response.Response
// @Router   /applications/{id}/status [put]
func (ctrl *ApplicationController) ChangeApplicationStatus(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.ApplicationStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	app, err := ctrl.applications.SetStatus(c.Request.Context(), actor, id, req.Status)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, dto.ApplicationStatusResponse{ApplicationID: app.ID, Status: app.Status})
}

// GetApplication godoc
// @Summary  Xem một đơn ứng tuyển: admin, người nộp hoặc chủ job
// @Tags     applications
// @Produce  json
// @Security BearerAuth
// @Param    id path int true "Application ID"
// @Success  200 {object} response.Response
// @Failure  403 {object} response.Response
// @Failure  404 {object} response.Response
// @Router   /applications/{id} [get]
func (ctrl *ApplicationController) GetApplication(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	app, err := ctrl.applications.Get(c.Request.Context(), actor, id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, dto.NewApplicationSummary(app))
}

// GetJobApplicants godoc
// @Summary  Danh sách ứng viên của một job
// @Tags     applications
// @Produce  json
// @Security BearerAuth
// @Param    id path int true "Job ID"
// @Success  200 {object} response.Response
// @Failure  403 {object} response.Response
// @Router   /jobs/{id}/applications [get]
func (ctrl *ApplicationController) GetJobApplicants(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	jobID, ok := paramID(c, "id")
	if !ok {
		return
	}

	list, err := ctrl.applications.ListForJob(c.Request.Context(), actor, jobID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, list)
}

// GetEmployerApplicants godoc
// @Summary  Gom ứng viên theo từng job của employer đang đăng nhập
// @Tags     applications
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} response.Response
// @Router   /applications/employer [get]
func (ctrl *ApplicationController) GetEmployerApplicants(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	list, err := ctrl.applications.ListForEmployer(c.Request.Context(), actor.UserID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, list)
}

// GetAppliedJobs godoc
// @Summary  Các job ứng viên đã nộp đơn kèm trạng thái
// @Tags     applications
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} response.Response
// @Router   /applications/applied [get]
func (ctrl *ApplicationController) GetAppliedJobs(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	list, err := ctrl.applications.ListApplied(c.Request.Context(), actor)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, list)
}
