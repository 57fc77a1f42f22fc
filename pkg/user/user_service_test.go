package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userRepoStub = NewStubUserRepo()

func setup(t *testing.T) (Service, func()) {
	service := NewUserService(userRepoStub)
	return service, func() {
		t.Log("Teardown after test")
		userRepoStub.Cleanup()
	}
}

func TestServiceImpl_Register(t *testing.T) {
	t.Run("should register a user and hash the password", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		// when
		created, err := service.Register(context.Background(), "maya", "Maya", "s3cret-pass")

		// then
		assert.NoError(t, err)
		assert.NotZero(t, created.Id)
		assert.NotEmpty(t, created.Uid)
		assert.NotEqual(t, "s3cret-pass", created.PasswordHash)
	})

	t.Run("should reject a duplicate username", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		// given
		_, err := service.Register(context.Background(), "maya", "", "s3cret-pass")
		require.NoError(t, err)

		// when
		_, err = service.Register(context.Background(), "maya", "", "other-pass-123")

		// then
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("should reject a short password", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		_, err := service.Register(context.Background(), "maya", "", "short")
		assert.Error(t, err)
	})
}

func TestServiceImpl_Authenticate(t *testing.T) {
	t.Run("should authenticate with the right password", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		// given
		created, err := service.Register(context.Background(), "maya", "", "s3cret-pass")
		require.NoError(t, err)

		// when
		found, err := service.Authenticate(context.Background(), "maya", "s3cret-pass")

		// then
		assert.NoError(t, err)
		assert.Equal(t, created.Id, found.Id)
	})

	t.Run("should reject a wrong password", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		_, err := service.Register(context.Background(), "maya", "", "s3cret-pass")
		require.NoError(t, err)

		_, err = service.Authenticate(context.Background(), "maya", "wrong-pass-1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("should reject an unknown username", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		_, err := service.Authenticate(context.Background(), "nobody", "whatever-123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestServiceImpl_GetCurrentUser(t *testing.T) {
	t.Run("should return error when context has no user", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		_, err := service.GetCurrentUser(context.Background())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get current user")
	})
}
