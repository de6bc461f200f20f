package errors

import (
	"errors"
	"fmt"
)

// ErrorCode định danh loại lỗi nghiệp vụ, được map sang HTTP status ở tầng response.
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthenticated ErrorCode = "UNAUTHENTICATED"
	ErrCodeInvalidToken    ErrorCode = "INVALID_TOKEN"
	ErrCodeInvalidPassword ErrorCode = "INVALID_PASSWORD"
	ErrCodeForbidden       ErrorCode = "FORBIDDEN"

	// Lookup errors
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	ErrCodeConflict ErrorCode = "CONFLICT"

	// Validation errors
	ErrCodeInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrCodeInvalidStatus ErrorCode = "INVALID_STATUS"

	// Workflow errors
	ErrCodeDuplicateApplication ErrorCode = "DUPLICATE_APPLICATION"

	// Infrastructure errors
	ErrCodeDBError      ErrorCode = "DB_ERROR"
	ErrCodeUploadFailed ErrorCode = "UPLOAD_FAILED"
)

// AppError là lỗi chuẩn của ứng dụng.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError tạo một AppError mới
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsAppError kiểm tra xem error có phải là AppError không
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError lấy AppError từ chuỗi lỗi
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code ErrorCode) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

func NotFound(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, nil)
}

func Forbidden(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, nil)
}

func InvalidInput(message string) *AppError {
	return NewAppError(ErrCodeInvalidInput, message, nil)
}

func InvalidStatus(message string) *AppError {
	return NewAppError(ErrCodeInvalidStatus, message, nil)
}

func Unauthenticated(message string) *AppError {
	return NewAppError(ErrCodeUnauthenticated, message, nil)
}

func Conflict(message string) *AppError {
	return NewAppError(ErrCodeConflict, message, nil)
}

func DuplicateApplication() *AppError {
	return NewAppError(ErrCodeDuplicateApplication, "you have already applied to this job", nil)
}

// Database wraps a storage failure.
func Database(message string, err error) *AppError {
	return NewAppError(ErrCodeDBError, message, err)
}

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrInvalidInput   = errors.New("invalid input")
)
