package response

import (
	"net/http"

	apperr "jobboard/errors"

	"github.com/gin-gonic/gin"
)

// Response định nghĩa cấu trúc response
type Response struct {
	Code       int         `json:"code"`
	Mess       string      `json:"mess"`
	ErrorCode  string      `json:"errorCode,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination định nghĩa cấu trúc phân trang
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// Success trả về response thành công
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Success",
		Data: data,
	})
}

// Created trả về 201 cho các thao tác tạo mới
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code: 1,
		Mess: message,
		Data: data,
	})
}

// SuccessWithPagination trả về response thành công có phân trang
func SuccessWithPagination(c *gin.Context, data interface{}, page, limit int, total int64) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Success",
		Data: data,
		Pagination: &Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	})
}

// Error trả về response lỗi
func Error(c *gin.Context, code int, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Code: code,
		Mess: message,
	})
}

// ServerError trả về response lỗi server
func ServerError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, Response{
		Code: 0,
		Mess: "Internal server error",
	})
}

// Unauthorized trả về response chưa xác thực
func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, Response{
		Code:      0,
		Mess:      "Unauthenticated",
		ErrorCode: string(apperr.ErrCodeUnauthenticated),
	})
}

// Forbidden trả về response không có quyền
func Forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, Response{
		Code:      0,
		Mess:      "Forbidden",
		ErrorCode: string(apperr.ErrCodeForbidden),
	})
}

// NotFound trả về response không tìm thấy
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, Response{
		Code:      0,
		Mess:      "Not found",
		ErrorCode: string(apperr.ErrCodeNotFound),
	})
}

// BadRequest trả về response lỗi bad request
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Code:      0,
		Mess:      message,
		ErrorCode: string(apperr.ErrCodeInvalidInput),
	})
}

// StatusFor maps an error code onto the HTTP status it is reported with.
func StatusFor(code apperr.ErrorCode) int {
	switch code {
	case apperr.ErrCodeNotFound:
		return http.StatusNotFound
	case apperr.ErrCodeForbidden:
		return http.StatusForbidden
	case apperr.ErrCodeUnauthenticated, apperr.ErrCodeInvalidToken, apperr.ErrCodeInvalidPassword:
		return http.StatusUnauthorized
	case apperr.ErrCodeConflict:
		return http.StatusConflict
	case apperr.ErrCodeInvalidInput, apperr.ErrCodeInvalidStatus, apperr.ErrCodeDuplicateApplication:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Fail viết lỗi nghiệp vụ ra response. Lỗi không phải AppError được coi là lỗi server.
func Fail(c *gin.Context, err error) {
	appErr := apperr.GetAppError(err)
	if appErr == nil {
		_ = c.Error(err)
		ServerError(c)
		return
	}

	status := StatusFor(appErr.Code)
	message := appErr.Message
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		message = "Internal server error"
	}

	c.JSON(status, Response{
		Code:      0,
		Mess:      message,
		ErrorCode: string(appErr.Code),
	})
}
