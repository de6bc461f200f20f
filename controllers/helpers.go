package controllers

import (
	"net"
	"strconv"
	"strings"

	apperr "jobboard/errors"
	"jobboard/middleware"
	"jobboard/models"
	"jobboard/response"
	"jobboard/validator"

	"github.com/gin-gonic/gin"
)

// paramID đọc id dạng số từ path, trả lỗi 400 nếu sai
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "ID không hợp lệ")
		return 0, false
	}
	return uint(id), true
}

// actorOrAbort lấy actor từ context; route nào gọi hàm này đều đã qua AuthMiddleware
func actorOrAbort(c *gin.Context) (models.Actor, bool) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Fail(c, apperr.Unauthenticated("authentication required"))
		return models.Actor{}, false
	}
	return actor, true
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, validator.BindingMessage(err))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		response.BadRequest(c, validator.BindingMessage(err))
		return false
	}
	return true
}

// viewerIdentity lấy địa chỉ đầu tiên trong X-Forwarded-For, nếu không có thì dùng địa chỉ socket
func viewerIdentity(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		if first := strings.TrimSpace(strings.Split(fwd, ",")[0]); first != "" {
			return first
		}
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(c.Request.RemoteAddr))
	if err != nil {
		return c.Request.RemoteAddr
	}
	return host
}
