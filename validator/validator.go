package validator

import (
	"fmt"
	"strings"
	"time"

	apperr "jobboard/errors"
	"jobboard/models"

	"github.com/gin-gonic/gin/binding"
	playground "github.com/go-playground/validator/v10"
)

// RegisterBindingTags đăng ký các tag tùy chỉnh lên validator của gin
func RegisterBindingTags() error {
	v, ok := binding.Validator.Engine().(*playground.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return RegisterTags(v)
}

// RegisterTags đăng ký các tag jobcategory, joblevel, jobtype, jobstatus, appstatus, role
func RegisterTags(v *playground.Validate) error {
	tags := map[string]func(string) bool{
		"jobcategory": models.ValidJobCategory,
		"joblevel":    models.ValidJobLevel,
		"jobtype":     models.ValidJobType,
		"jobstatus":   func(s string) bool { return models.JobStatus(s).Valid() },
		"appstatus":   func(s string) bool { return models.ApplicationStatus(s).Valid() },
		"role": func(s string) bool {
			_, err := models.ParseRole(s)
			return err == nil
		},
	}
	for tag, check := range tags {
		check := check
		if err := v.RegisterValidation(tag, func(fl playground.FieldLevel) bool {
			return check(fl.Field().String())
		}); err != nil {
			return err
		}
	}
	return nil
}

// BindingMessage đổi lỗi bind của gin thành câu thông báo ngắn gọn
func BindingMessage(err error) string {
	verrs, ok := err.(playground.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return "Dữ liệu không hợp lệ"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fe.Field()+" is required")
		case "min", "max", "len":
			parts = append(parts, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s is not a valid %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

// ValidateSalaryRange kiểm tra min <= max khi cả hai đều được nhập
func ValidateSalaryRange(min, max int64) error {
	if min < 0 || max < 0 {
		return apperr.InvalidInput("salary must not be negative")
	}
	if max > 0 && min > max {
		return apperr.InvalidInput("salaryMin must not exceed salaryMax")
	}
	return nil
}

// ValidateDeadline: hạn nộp nếu có phải ở tương lai
func ValidateDeadline(deadline *time.Time, now time.Time) error {
	if deadline != nil && !deadline.After(now) {
		return apperr.InvalidInput("deadline must be in the future")
	}
	return nil
}

// ParseApplicationStatus kiểm tra trạng thái thuộc tập đóng
func ParseApplicationStatus(s string) (models.ApplicationStatus, error) {
	status := models.ApplicationStatus(strings.TrimSpace(s))
	if !status.Valid() {
		return "", apperr.InvalidStatus(fmt.Sprintf("invalid status %q", s))
	}
	return status, nil
}

// NormalizeSkills bỏ khoảng trắng, bỏ trùng (không phân biệt hoa thường) và giữ thứ tự
func NormalizeSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
