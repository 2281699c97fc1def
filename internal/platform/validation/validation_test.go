package validation

import (
	"errors"
	"testing"

	"cat-registry/internal/platform/apierror"

	"github.com/stretchr/testify/assert"
)

type signup struct {
	UserName string `json:"user_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

func TestStruct_UsesJSONNames(t *testing.T) {
	err := Struct(signup{Email: "not-an-email"})

	assert.True(t, errors.Is(err, apierror.ErrBadRequest))
	assert.Contains(t, err.Error(), "user_name is required")
	assert.Contains(t, err.Error(), "email must be a valid email")
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(signup{UserName: "ana", Email: "ana@example.com"}))
}

func TestVar_NamesTheField(t *testing.T) {
	err := Var("email", "nope", "email")
	assert.True(t, errors.Is(err, apierror.ErrBadRequest))
	assert.Equal(t, "email must be a valid email", err.Error())

	assert.NoError(t, Var("email", "ana@example.com", "email"))
}
