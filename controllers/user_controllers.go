package controllers

import (
	"jobboard/dto"
	"jobboard/response"
	"jobboard/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	users   *services.UserService
	uploads *services.UploadService
}

func NewUserController(users *services.UserService, uploads *services.UploadService) *UserController {
	return &UserController{users: users, uploads: uploads}
}

// GetProfile godoc
// @Summary  Hồ sơ của user đang đăng nhập
// @Tags     users
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} response.Response
// @Router   /profile [get]
func (ctrl *UserController) GetProfile(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	user, err := ctrl.users.GetProfile(c.Request.Context(), actor)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, dto.NewUserResponse(user))
}

// UpdateProfile godoc
// @Summary  Sửa hồ sơ; field rỗng được giữ nguyên
// @Tags     users
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body dto.UpdateProfileRequest true "Các field cần sửa"
// @Success  200 {object} response.Response
// @Router   /profile [put]
func (ctrl *UserController) UpdateProfile(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := ctrl.users.UpdateProfile(c.Request.Context(), actor, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, dto.NewUserResponse(user))
}

// UploadAvatar godoc
// @Summary  Tải ảnh đại diện ở field file
// @Tags     users
// @Accept   mpfd
// @Produce  json
// @Security BearerAuth
// @Param    file formData file true "Ảnh jpeg, png hoặc webp"
// @Success  200 {object} response.Response
// @Failure  400 {object} response.Response
// @Router   /profile/avatar [post]
func (ctrl *UserController) UploadAvatar(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Không có file")
		return
	}

	url, err := ctrl.uploads.UploadAvatar(c.Request.Context(), file)
	if err != nil {
		response.Fail(c, err)
		return
	}
	user, err := ctrl.users.SetAvatar(c.Request.Context(), actor, url)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, dto.NewUserResponse(user))
}

// GetUsers godoc
// @Summary  Danh sách user cho admin
// @Tags     users
// @Produce  json
// @Security BearerAuth
// @Param    role     query string false "jobseeker | employer | admin"
// @Param    verified query bool   false "Lọc theo xác minh"
// @Param    name     query string false "Tên"
// @Param    page     query int    false "Trang"
// @Param    limit    query int    false "Số phần tử mỗi trang"
// @Success  200 {object} response.Response
// @Router   /users [get]
func (ctrl *UserController) GetUsers(c *gin.Context) {
	var q dto.UserListQuery
	if !bindQuery(c, &q) {
		return
	}

	users, total, page, limit, err := ctrl.users.List(c.Request.Context(), q)
	if err != nil {
		response.Fail(c, err)
		return
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserResponse(&users[i]))
	}
	response.SuccessWithPagination(c, out, page, limit, total)
}

// ChangeUserVerified godoc
// @Summary  Bật/tắt xác minh user
// @Tags     users
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id   path int                   true "User ID"
// @Param    body body dto.UserVerifyRequest true "Trạng thái xác minh"
// @Success  200 {object} response.Response
// @Router   /users/{id}/verify [put]
func (ctrl *UserController) ChangeUserVerified(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.UserVerifyRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := ctrl.users.SetVerified(c.Request.Context(), id, *req.Verified)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, dto.NewUserResponse(user))
}

// DeleteUser godoc
// @Summary  Xóa user; tài khoản admin không thể bị xóa
// @Tags     users
// @Produce  json
// @Security BearerAuth
// @Param    id path int true "User ID"
// @Success  200 {object} response.Response
// @Failure  403 {object} response.Response
// @Router   /users/{id} [delete]
func (ctrl *UserController) DeleteUser(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.users.Delete(c.Request.Context(), actor, id); err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": id})
}
