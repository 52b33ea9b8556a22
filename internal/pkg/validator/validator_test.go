package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type signupForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=CUSTOMER PROVIDER"`
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	errs := Validate(signupForm{Email: "nope", Password: "123", Role: "ADMIN"})

	assert.ElementsMatch(t, []FieldError{
		{Field: "email", Message: "must be a valid email"},
		{Field: "password", Message: "must be at least 6 characters"},
		{Field: "role", Message: "must be one of: CUSTOMER, PROVIDER"},
	}, errs)
}

func TestValidate_Valid(t *testing.T) {
	assert.Nil(t, Validate(signupForm{Email: "a@b.co", Password: "secret"}))
}

func TestFromError_UnknownError(t *testing.T) {
	errs := FromError(errors.New("EOF"))
	assert.Equal(t, []FieldError{{Field: "body", Message: "Invalid request body"}}, errs)
}
