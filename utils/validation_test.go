package utils

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupBody struct {
	Name            string `json:"name" binding:"required,min=2"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone" binding:"required,len=10"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
}

func TestBindingError_FieldIssues(t *testing.T) {
	RegisterJSONFieldNames()

	body := signupBody{Name: "A", Email: "nope", Phone: "123", Password: "secret1", ConfirmPassword: "secret2"}
	err := binding.Validator.ValidateStruct(&body)
	require.Error(t, err)

	appErr := BindingError(err)
	assert.Equal(t, KindInvalid, appErr.Kind)
	assert.Equal(t, http.StatusBadRequest, appErr.Status())

	fields := map[string]string{}
	for _, issue := range appErr.Issues {
		fields[issue.Field] = issue.Message
	}
	assert.Equal(t, "must be at least 2 characters", fields["name"])
	assert.Equal(t, "must be a valid email address", fields["email"])
	assert.Equal(t, "must be exactly 10 characters", fields["phone"])
	assert.Equal(t, "passwords do not match", fields["confirmPassword"])
}

func TestBindingError_Unknown(t *testing.T) {
	appErr := BindingError(errors.New("EOF"))
	assert.Equal(t, "Invalid request body", appErr.Message)
	assert.Empty(t, appErr.Issues)
}

func TestAppErrorStatus(t *testing.T) {
	cases := map[int]*AppError{
		http.StatusBadRequest:          Invalid("bad"),
		http.StatusUnauthorized:        Unauthorized("who"),
		http.StatusForbidden:           Forbidden("no"),
		http.StatusNotFound:            NotFound("gone"),
		http.StatusConflict:            Conflict("again"),
		http.StatusInternalServerError: Internal("boom", errors.New("db down")),
	}
	for status, err := range cases {
		assert.Equal(t, status, err.Status(), err.Message)
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	err := errors.Join(errors.New("context"), NotFound("Booking not found"))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}
