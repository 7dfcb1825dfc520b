package user

import (
	"context"
	"testing"
	"time"

	"grambazaar/database/repository/memstore"
	"grambazaar/models"
	"grambazaar/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCleaner struct {
	bookings []string
	carts    []string
}

func (r *recordingCleaner) DeleteUserBookings(_ context.Context, userID string) (int64, error) {
	r.bookings = append(r.bookings, userID)
	return 3, nil
}

func (r *recordingCleaner) DeleteUserCart(_ context.Context, userID string) error {
	r.carts = append(r.carts, userID)
	return nil
}

func newTestService() (*DefaultUserService, *recordingCleaner) {
	cleaner := &recordingCleaner{}
	return &DefaultUserService{
		Repo:     memstore.NewUserRepo(),
		Bookings: cleaner,
		Carts:    cleaner,
		TokenTTL: time.Hour,
	}, cleaner
}

func registration(email string) models.UserRegistration {
	return models.UserRegistration{
		Name:            "Meera",
		Email:           email,
		Phone:           "9876543210",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}
}

func TestRegister_NormalizesAndHashes(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, registration("  Meera@Example.COM "))
	require.NoError(t, err)
	assert.Equal(t, "meera@example.com", u.Email)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.Empty(t, u.PasswordHash)

	stored, err := svc.Repo.GetByEmail(ctx, "meera@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestRegister_Duplicate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, registration("meera@example.com"))
	require.NoError(t, err)
	_, err = svc.Register(ctx, registration("MEERA@example.com"))
	require.Error(t, err)
	assert.Equal(t, utils.KindInvalid, utils.KindOf(err))
	assert.Equal(t, "User already exists", err.Error())
}

func TestLoginAndAuthenticate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	u, err := svc.Register(ctx, registration("meera@example.com"))
	require.NoError(t, err)

	_, err = svc.Login(ctx, "meera@example.com", "wrong-password")
	assert.Equal(t, utils.KindUnauthorized, utils.KindOf(err))
	_, err = svc.Login(ctx, "nobody@example.com", "secret123")
	assert.Equal(t, utils.KindUnauthorized, utils.KindOf(err))

	resp, err := svc.Login(ctx, "Meera@Example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, 5*time.Second)

	identity, err := svc.Authenticate(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, models.Identity{UserID: u.ID, Role: models.RoleUser}, identity)

	// Role changes apply to existing tokens.
	_, err = svc.UpdateRole(ctx, u.ID, models.RoleAdmin)
	require.NoError(t, err)
	identity, err = svc.Authenticate(ctx, resp.Token)
	require.NoError(t, err)
	assert.True(t, identity.IsAdmin())

	_, err = svc.Authenticate(ctx, "garbage")
	assert.Equal(t, utils.KindUnauthorized, utils.KindOf(err))
	_, err = svc.Authenticate(ctx, "")
	assert.Equal(t, utils.KindUnauthorized, utils.KindOf(err))
}

func TestAuthenticate_DeletedUser(t *testing.T) {
	svc, cleaner := newTestService()
	ctx := context.Background()
	u, err := svc.Register(ctx, registration("meera@example.com"))
	require.NoError(t, err)
	resp, err := svc.Login(ctx, "meera@example.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, u.ID))
	assert.Equal(t, []string{u.ID}, cleaner.bookings)
	assert.Equal(t, []string{u.ID}, cleaner.carts)

	_, err = svc.Authenticate(ctx, resp.Token)
	assert.Equal(t, utils.KindUnauthorized, utils.KindOf(err))

	err = svc.DeleteUser(ctx, u.ID)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}

func TestLogout_IgnoresBadTokens(t *testing.T) {
	svc, _ := newTestService()
	assert.NoError(t, svc.Logout(context.Background(), ""))
	assert.NoError(t, svc.Logout(context.Background(), "not-a-token"))
}

func TestUpdateRole_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.UpdateRole(ctx, "missing", "superuser")
	assert.Equal(t, utils.KindInvalid, utils.KindOf(err))
	_, err = svc.UpdateRole(ctx, "missing", models.RoleAdmin)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}

func TestProfileAndSearch(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	u, err := svc.Register(ctx, registration("meera@example.com"))
	require.NoError(t, err)
	other := registration("ravi@example.com")
	other.Name = "Ravi"
	_, err = svc.Register(ctx, other)
	require.NoError(t, err)

	me := models.Identity{UserID: u.ID, Role: models.RoleUser}
	_, err = svc.UpdateProfile(ctx, me, models.ProfileUpdate{Name: " ", Phone: "123"})
	assert.Equal(t, utils.KindInvalid, utils.KindOf(err))

	updated, err := svc.UpdateProfile(ctx, me, models.ProfileUpdate{Name: "Meera K", Phone: "9000000000"})
	require.NoError(t, err)
	assert.Equal(t, "Meera K", updated.Name)

	got, err := svc.GetProfile(ctx, me)
	require.NoError(t, err)
	assert.Equal(t, "9000000000", got.Phone)

	found, err := svc.ListUsers(ctx, "RAVI")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "ravi@example.com", found[0].Email)

	all, err := svc.ListUsers(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestPromoteByEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	_, err := svc.Register(ctx, registration("meera@example.com"))
	require.NoError(t, err)

	u, err := svc.PromoteByEmail(ctx, "MEERA@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)

	_, err = svc.PromoteByEmail(ctx, "ghost@example.com")
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}
