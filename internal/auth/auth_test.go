package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frotaops/fleetledger/internal/auth"
)

func TestService_LoginAndVerify(t *testing.T) {
	svc := auth.NewService("test-secret", "admin", "hunter2")

	token, err := svc.Login("admin", "hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", subject)
}

func TestService_Login_BadCredentials(t *testing.T) {
	svc := auth.NewService("test-secret", "admin", "hunter2")

	type testCase struct {
		name     string
		user     string
		password string
	}

	tests := []testCase{
		{name: "WrongPassword", user: "admin", password: "nope"},
		{name: "WrongUser", user: "root", password: "hunter2"},
		{name: "Empty", user: "", password: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := svc.Login(tt.user, tt.password)
			assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
			assert.Empty(t, token)
		})
	}
}

func TestService_Verify_Errors(t *testing.T) {
	svc := auth.NewService("test-secret", "admin", "hunter2")

	type testCase struct {
		name  string
		token string
	}

	other := auth.NewService("other-secret", "admin", "hunter2")
	foreign, err := other.Login("admin", "hunter2")
	require.NoError(t, err)

	tests := []testCase{
		{name: "Garbage", token: "not-a-token"},
		{name: "Empty", token: ""},
		{name: "WrongSecret", token: foreign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, err := svc.Verify(tt.token)
			assert.ErrorIs(t, err, auth.ErrInvalidToken)
			assert.Empty(t, subject)
		})
	}
}
