package validation

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" binding:"required,eqfield=Password"`
}

func bindJSON(t *testing.T, payload string, out any) error {
	t.Helper()
	return binding.JSON.BindBody([]byte(payload), out)
}

func TestToDetails(t *testing.T) {
	Init()

	t.Run("reports every violated field with json tag names", func(t *testing.T) {
		var form signupForm
		err := bindJSON(t, `{}`, &form)
		require.Error(t, err)

		assert.Equal(t, map[string]string{
			"email":            "Email is required.",
			"password":         "Password is required.",
			"password_confirm": "Password confirmation is required.",
		}, ToDetails(err))
	})

	t.Run("per-tag wording", func(t *testing.T) {
		var form signupForm
		err := bindJSON(t, `{"email":"nope","password":"short","password_confirm":"other"}`, &form)
		require.Error(t, err)

		assert.Equal(t, map[string]string{
			"email":            "Please enter a valid email address.",
			"password":         "Password must be at least 8 characters long.",
			"password_confirm": "Passwords do not match.",
		}, ToDetails(err))
	})

	t.Run("malformed json collapses to a payload error", func(t *testing.T) {
		var form signupForm
		err := bindJSON(t, `{"email":`, &form)
		require.Error(t, err)
		assert.Equal(t, map[string]string{"payload": "Invalid request body."}, ToDetails(err))

		err = bindJSON(t, `{"email": 42}`, &form)
		require.Error(t, err)
		assert.Equal(t, map[string]string{"payload": "Invalid request body."}, ToDetails(err))
	})

	t.Run("nil error yields nil", func(t *testing.T) {
		assert.Nil(t, ToDetails(nil))
	})
}
