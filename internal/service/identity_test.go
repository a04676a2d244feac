package service

import (
	"context"
	"testing"

	"event_marketplace/internal/domain"
	"event_marketplace/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupUserCreatesAccountAndNotifies(t *testing.T) {
	svc, _, rec := newTestServices(t)
	ctx := context.Background()

	acc, err := svc.Identity.SignupUser(ctx, Signup{Username: " u1 ", Password: "pw", Name: "User One", Email: "u1@example.com", Phone: "123"})
	require.NoError(t, err)
	assert.Equal(t, "u1", acc.Username)
	assert.NotEqual(t, "pw", acc.Password)

	list := svc.Notifications.AdminList()
	require.Len(t, list, 1)
	assert.Equal(t, domain.KindUserSignup, list[0].Kind)
	assert.Equal(t, "u1", list[0].Username)
	assert.False(t, list[0].Read)
	assert.Equal(t, []string{events.KeyAccountSignup}, rec.Keys())

	got, err := svc.Identity.Authenticate(domain.RoleUser, "u1", "pw")
	require.NoError(t, err)
	assert.Equal(t, "User One", got.Name)
}

func TestSignupRejectsTakenUsernameInAnyTable(t *testing.T) {
	svc, st, _ := newTestServices(t)
	ctx := context.Background()
	seedAccount(t, st, domain.RoleAdmin, "boss")
	seedAccount(t, st, domain.RoleVendor, "acme")
	seedAccount(t, st, domain.RoleUser, "joe")

	for _, name := range []string{"boss", "acme", "joe"} {
		_, err := svc.Identity.SignupUser(ctx, Signup{Username: name, Password: "pw", Name: "x"})
		assert.ErrorIs(t, err, domain.ErrConflict, name)
		_, err = svc.Identity.SignupVendor(ctx, Signup{Username: name, Name: "x"})
		assert.ErrorIs(t, err, domain.ErrConflict, name)
	}
	assert.Empty(t, svc.Notifications.AdminList())
}

func TestSignupVendorIsPendingUntilApproved(t *testing.T) {
	svc, _, _ := newTestServices(t)
	ctx := context.Background()

	n, err := svc.Identity.SignupVendor(ctx, Signup{Username: "v1", Password: "ignored", Name: "Vendor One", Email: "v@x.com", Phone: "9"})
	require.NoError(t, err)
	assert.Equal(t, domain.KindVendorSignup, n.Kind)

	_, err = svc.Identity.Authenticate(domain.RoleVendor, "v1", "ignored")
	assert.ErrorIs(t, err, domain.ErrAuthentication)
	assert.Empty(t, svc.Identity.Vendors())

	// the pending registration reserves the username
	_, err = svc.Identity.SignupUser(ctx, Signup{Username: "v1", Password: "pw", Name: "x"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSignupValidation(t *testing.T) {
	svc, _, _ := newTestServices(t)
	_, err := svc.Identity.SignupUser(context.Background(), Signup{Username: "u", Name: "x"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = svc.Identity.SignupVendor(context.Background(), Signup{Username: "  ", Name: "x"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAuthenticateChecksRoleTable(t *testing.T) {
	svc, _, _ := newTestServices(t)
	_, err := svc.Identity.SignupUser(context.Background(), Signup{Username: "u1", Password: "pw", Name: "x"})
	require.NoError(t, err)

	_, err = svc.Identity.Authenticate(domain.RoleUser, "u1", "wrong")
	assert.ErrorIs(t, err, domain.ErrAuthentication)
	_, err = svc.Identity.Authenticate(domain.RoleAdmin, "u1", "pw")
	assert.ErrorIs(t, err, domain.ErrAuthentication)
	_, err = svc.Identity.Authenticate(domain.RoleNone, "u1", "pw")
	assert.ErrorIs(t, err, domain.ErrAuthentication)
}

func TestEnsureAdminSeedsOnce(t *testing.T) {
	svc, _, _ := newTestServices(t)
	ctx := context.Background()

	require.NoError(t, svc.Identity.EnsureAdmin(ctx, "admin", "admin123"))
	require.NoError(t, svc.Identity.EnsureAdmin(ctx, "root", "other"))

	_, err := svc.Identity.Authenticate(domain.RoleAdmin, "admin", "admin123")
	require.NoError(t, err)
	_, err = svc.Identity.Account(domain.RoleAdmin, "root")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _ := newTestServices(t)
	ctx := context.Background()
	require.NoError(t, svc.Identity.EnsureAdmin(ctx, "admin", "admin123"))

	acc, err := svc.Identity.UpdateProfile(ctx, domain.RoleAdmin, "admin", ProfileUpdate{Name: "Chief", Email: "c@x.com", Phone: "555"})
	require.NoError(t, err)
	assert.Equal(t, "Chief", acc.Name)
	assert.Empty(t, acc.Phone, "admins carry no phone")

	// empty password keeps the old one
	_, err = svc.Identity.Authenticate(domain.RoleAdmin, "admin", "admin123")
	require.NoError(t, err)

	_, err = svc.Identity.UpdateProfile(ctx, domain.RoleAdmin, "admin", ProfileUpdate{Name: "Chief", NewPassword: "new-pass"})
	require.NoError(t, err)
	_, err = svc.Identity.Authenticate(domain.RoleAdmin, "admin", "new-pass")
	require.NoError(t, err)

	_, err = svc.Identity.UpdateProfile(ctx, domain.RoleUser, "ghost", ProfileUpdate{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
