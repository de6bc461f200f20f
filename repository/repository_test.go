package repository

import (
	"errors"
	"testing"

	apperr "jobboard/errors"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil, "job"))

	err := translate(gorm.ErrRecordNotFound, "job")
	assert.True(t, apperr.HasCode(err, apperr.ErrCodeNotFound))
	assert.Equal(t, "job not found", apperr.GetAppError(err).Message)

	err = translate(gorm.ErrDuplicatedKey, "user")
	assert.True(t, apperr.HasCode(err, apperr.ErrCodeConflict))

	boom := errors.New("connection reset")
	err = translate(boom, "application")
	assert.True(t, apperr.HasCode(err, apperr.ErrCodeDBError))
	assert.ErrorIs(t, err, boom)
}
