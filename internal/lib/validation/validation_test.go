package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupPayload struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Name     string `validate:"required,min=2"`
	Phone    string `validate:"omitempty,loosephone"`
	Role     string `validate:"omitempty,oneof=buyer producer admin"`
	FarmName string `validate:"required_if=Role producer"`
}

func TestLoosephone(t *testing.T) {
	v := New()

	type payload struct {
		Phone string `validate:"loosephone"`
	}

	valid := []string{
		"0612345678",
		"+33 6 12 34 56 78",
		"(06) 12-34-56-78",
	}
	for _, p := range valid {
		assert.NoError(t, v.Struct(payload{Phone: p}), p)
	}

	invalid := []string{
		"12345",          // too short
		"06 12 34 56 ab", // letters
		"",
	}
	for _, p := range invalid {
		assert.Error(t, v.Struct(payload{Phone: p}), p)
	}
}

func TestWrap_CollectsAllViolations(t *testing.T) {
	v := New()

	err := Wrap(v.Struct(signupPayload{
		Email:    "not-an-email",
		Password: "abc",
		Name:     "x",
	}))
	require.Error(t, err)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{
		"email must be a valid address",
		"password must be at least 6 characters",
		"name must be at least 2 characters",
	}, verr.Violations)
}

func TestWrap_ProducerNeedsFarmName(t *testing.T) {
	v := New()

	err := Wrap(v.Struct(signupPayload{
		Email:    "p@exemple.fr",
		Password: "secret1",
		Name:     "Paul",
		Role:     "producer",
	}))
	require.Error(t, err)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Violations, "farm name is required for producer accounts")
}

func TestWrap_PassThrough(t *testing.T) {
	assert.NoError(t, Wrap(nil))

	sentinel := errors.New("boom")
	assert.Same(t, sentinel, Wrap(sentinel))
}
