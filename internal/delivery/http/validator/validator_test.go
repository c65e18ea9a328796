package validator

import (
	"testing"

	domainerrors "addrbook/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerForm struct {
	Name            string `validate:"required,min=3,max=50,personname"`
	Email           string `validate:"required,email,max=50"`
	Password        string `validate:"required,min=8,max=50,passwordcomplexity"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
	Mobile          string `validate:"omitempty,mobile"`
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	v := New()

	err := v.Validate(registerForm{
		Name:            "x",
		Email:           "not-an-email",
		Password:        "short",
		ConfirmPassword: "different",
		Mobile:          "abc",
	})
	require.Error(t, err)

	var appErr *domainerrors.ValidationError
	require.ErrorAs(t, err, &appErr)

	fields := make([]string, 0, len(appErr.Violations()))
	for _, violation := range appErr.Violations() {
		fields = append(fields, violation.Field)
	}
	// Every invalid field is reported, not just the first.
	assert.Contains(t, fields, "Name")
	assert.Contains(t, fields, "Email")
	assert.Contains(t, fields, "Password")
	assert.Contains(t, fields, "ConfirmPassword")
	assert.Contains(t, fields, "Mobile")
}

func TestValidate_ValidInput(t *testing.T) {
	v := New()

	err := v.Validate(registerForm{
		Name:            "Jane O'Neil-Tan",
		Email:           "jane@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
		Mobile:          "+6591234567",
	})
	assert.NoError(t, err)
}

func TestValidate_PersonNameRule(t *testing.T) {
	v := New()

	type form struct {
		Name string `validate:"required,min=3,max=50,personname"`
	}

	assert.NoError(t, v.Validate(form{Name: "Mary-Anne d'Souza, Jr."}))
	assert.Error(t, v.Validate(form{Name: "robot_99"}))
	assert.Error(t, v.Validate(form{Name: "名前"}))
}

func TestValidate_MobileRule(t *testing.T) {
	v := New()

	type form struct {
		Mobile string `validate:"omitempty,mobile"`
	}

	assert.NoError(t, v.Validate(form{Mobile: ""}))
	assert.NoError(t, v.Validate(form{Mobile: "91234567"}))
	assert.NoError(t, v.Validate(form{Mobile: "+6591234567"}))
	assert.Error(t, v.Validate(form{Mobile: "1234"}))
	assert.Error(t, v.Validate(form{Mobile: "+12-3456-7890"}))
}

func TestValidate_PasswordComplexityRule(t *testing.T) {
	v := New()

	type form struct {
		Password string `validate:"required,min=8,max=50,passwordcomplexity"`
	}

	assert.NoError(t, v.Validate(form{Password: "abcdefg1"}))
	assert.Error(t, v.Validate(form{Password: "abcdefgh"}))
	assert.Error(t, v.Validate(form{Password: "12345678"}))
}
