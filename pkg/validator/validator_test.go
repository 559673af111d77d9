package validator

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name     string   `json:"name" binding:"required"`
	FolderID string   `json:"folderId" binding:"omitempty,objectid"`
	Tags     []string `json:"tags" binding:"omitempty,dive,objectid"`
}

func TestCustomValidator_JSONFieldNames(t *testing.T) {
	v := NewCustomValidator()

	err := v.ValidateStruct(&sample{})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "name", verrs[0].Field())
	assert.Equal(t, "required", verrs[0].Tag())
}

func TestCustomValidator_ObjectID(t *testing.T) {
	v := NewCustomValidator()

	assert.NoError(t, v.ValidateStruct(&sample{Name: "a", FolderID: "111111111111111111111100"}))
	assert.NoError(t, v.ValidateStruct(&sample{Name: "a"}))

	err := v.ValidateStruct(&sample{Name: "a", Tags: []string{"222222222222222222222200", "bad"}})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "tags[1]", verrs[0].Field())
	assert.Equal(t, TagObjectID, verrs[0].Tag())
}

func TestSetup_Translations(t *testing.T) {
	uni, err := Setup()
	require.NoError(t, err)

	err = binding.Validator.ValidateStruct(&sample{Name: "a", FolderID: "nope"})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))

	enTrans, _ := uni.GetTranslator("en")
	assert.Equal(t, "folderId must be a 24 character hex identifier", verrs[0].Translate(enTrans))

	zhTrans, _ := uni.GetTranslator("zh")
	assert.Equal(t, "folderId 必须是 24 位十六进制标识", verrs[0].Translate(zhTrans))
}
