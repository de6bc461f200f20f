package controllers

import (
	"jobboard/dto"
	"jobboard/response"
	"jobboard/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// RegisterUser godoc
// @Summary  Đăng ký tài khoản jobseeker hoặc employer
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body dto.RegisterInput true "Thông tin đăng ký"
// @Success  201 {object} response.Response
// @Router   /auth/register [post]
func (ctrl *AuthController) RegisterUser(c *gin.Context) {
	var input dto.RegisterInput
	if !bindJSON(c, &input) {
		return
	}

	session, err := ctrl.auth.Register(c.Request.Context(), input)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, "Đăng ký thành công", session)
}

// Login godoc
// @Summary  Đăng nhập bằng email và mật khẩu
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body dto.LoginInput true "Thông tin đăng nhập"
// @Success  200 {object} response.Response
// @Router   /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var input dto.LoginInput
	if !bindJSON(c, &input) {
		return
	}

	session, err := ctrl.auth.Login(c.Request.Context(), input)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, session)
}

// AuthGoogle godoc
// @Summary  Đăng nhập bằng Google ID token
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body dto.GoogleLoginInput true "ID token"
// @Success  200 {object} response.Response
// @Router   /auth/google [post]
func (ctrl *AuthController) AuthGoogle(c *gin.Context) {
	var input dto.GoogleLoginInput
	if !bindJSON(c, &input) {
		return
	}

	session, err := ctrl.auth.GoogleLogin(c.Request.Context(), input)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, session)
}
