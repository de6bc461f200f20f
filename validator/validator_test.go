package validator

import (
	"testing"
	"time"

	apperr "jobboard/errors"
	"jobboard/models"

	playground "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type jobForm struct {
	Category string `validate:"required,jobcategory"`
	Level    string `validate:"omitempty,joblevel"`
	Type     string `validate:"omitempty,jobtype"`
	Status   string `validate:"omitempty,appstatus"`
	Role     string `validate:"omitempty,role"`
}

func TestRegisterTags(t *testing.T) {
	v := playground.New()
	require.NoError(t, RegisterTags(v))

	assert.NoError(t, v.Struct(jobForm{Category: "Engineering", Level: "Senior", Type: "Remote", Status: "Reviewed", Role: "employer"}))

	err := v.Struct(jobForm{Category: "Astrology"})
	require.Error(t, err)
	assert.Contains(t, BindingMessage(err), "Category is not a valid jobcategory")

	err = v.Struct(jobForm{Category: "Design", Status: "Hired"})
	require.Error(t, err)
	assert.Contains(t, BindingMessage(err), "appstatus")

	err = v.Struct(jobForm{})
	assert.Contains(t, BindingMessage(err), "Category is required")
}

func TestValidateSalaryRange(t *testing.T) {
	assert.NoError(t, ValidateSalaryRange(1000, 2000))
	assert.NoError(t, ValidateSalaryRange(1000, 0))
	assert.True(t, apperr.HasCode(ValidateSalaryRange(3000, 2000), apperr.ErrCodeInvalidInput))
	assert.Error(t, ValidateSalaryRange(-1, 10))
}

func TestValidateDeadline(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.NoError(t, ValidateDeadline(nil, now))
	assert.NoError(t, ValidateDeadline(&future, now))
	assert.Error(t, ValidateDeadline(&past, now))
}

func TestParseApplicationStatus(t *testing.T) {
	s, err := ParseApplicationStatus(" Accepted ")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationAccepted, s)

	_, err = ParseApplicationStatus("accepted")
	assert.True(t, apperr.HasCode(err, apperr.ErrCodeInvalidStatus))
}

func TestNormalizeSkills(t *testing.T) {
	assert.Equal(t, []string{"Go", "SQL"}, NormalizeSkills([]string{" Go", "go", "", "SQL "}))
}
