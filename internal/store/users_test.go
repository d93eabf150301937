package store_test

import (
	"testing"

	"github.com/Trend4Media/AffenMitWaffen/internal/models"
	"github.com/Trend4Media/AffenMitWaffen/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	conn := newTestDB(t)
	users := store.NewUserStore(conn)

	first, err := users.Create("a@x.com", "hash", "Alice")
	require.NoError(t, err)
	assert.False(t, first.IsActive)
	assert.False(t, first.IsAdmin)

	_, err = users.Create("a@x.com", "hash", "Imposter")
	assert.ErrorIs(t, err, store.ErrDuplicateEmail)
}

func TestCreateStoresEmailExactly(t *testing.T) {
	conn := newTestDB(t)
	users := store.NewUserStore(conn)

	_, err := users.Create("Alice@X.com", "hash", "Alice")
	require.NoError(t, err)

	_, err = users.FindByEmail("alice@x.com")
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	user, err := users.FindByEmail("Alice@X.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice@X.com", user.Email)
}

func TestSetActiveAndSetAdmin(t *testing.T) {
	conn := newTestDB(t)
	users := store.NewUserStore(conn)

	created, err := users.Create("a@x.com", "hash", "Alice")
	require.NoError(t, err)

	activated, err := users.SetActive(created.ID, true)
	require.NoError(t, err)
	assert.True(t, activated.IsActive)

	promoted, err := users.SetAdmin(created.ID, true)
	require.NoError(t, err)
	assert.True(t, promoted.IsAdmin)

	demoted, err := users.SetAdmin(created.ID, false)
	require.NoError(t, err)
	assert.False(t, demoted.IsAdmin)

	_, err = users.SetActive(9999, true)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestDeleteCascadesToSystemsAndPlanets(t *testing.T) {
	conn := newTestDB(t)
	users := store.NewUserStore(conn)
	tracker := store.NewTrackerStore(conn)

	alice := createTestUser(t, conn, "alice@x.com")
	bob := createTestUser(t, conn, "bob@x.com")

	for _, user := range []*models.User{alice, bob} {
		_, err := tracker.UpsertSystem(user.ID, "555:342", nil, []store.PlanetSeed{
			{PlanetID: "555:342:1", Notes: "home"},
		})
		require.NoError(t, err)
	}

	require.NoError(t, users.Delete(alice.ID))

	_, err := users.FindByID(alice.ID)
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	var systemCount, planetCount int64
	require.NoError(t, conn.Model(&models.System{}).Count(&systemCount).Error)
	require.NoError(t, conn.Model(&models.Planet{}).Count(&planetCount).Error)
	assert.Equal(t, int64(1), systemCount)
	assert.Equal(t, int64(1), planetCount)

	// Bob's data is untouched.
	systems, err := tracker.ListSystems(bob.ID)
	require.NoError(t, err)
	require.Len(t, systems, 1)
	assert.Equal(t, "555:342", systems[0].SystemID)
}

func TestDeleteMissingUser(t *testing.T) {
	conn := newTestDB(t)
	users := store.NewUserStore(conn)

	assert.ErrorIs(t, users.Delete(42), store.ErrUserNotFound)
}

func TestListWithSystemCounts(t *testing.T) {
	conn := newTestDB(t)
	users := store.NewUserStore(conn)
	tracker := store.NewTrackerStore(conn)

	alice := createTestUser(t, conn, "alice@x.com")
	bob := createTestUser(t, conn, "bob@x.com")

	_, err := tracker.UpsertSystem(alice.ID, "555:111", nil, nil)
	require.NoError(t, err)
	_, err = tracker.UpsertSystem(alice.ID, "555:112", nil, nil)
	require.NoError(t, err)

	list, err := users.ListWithSystemCounts()
	require.NoError(t, err)
	require.Len(t, list, 2)

	// Newest registration first.
	assert.Equal(t, bob.ID, list[0].ID)
	assert.Equal(t, int64(0), list[0].SystemCount)
	assert.Equal(t, alice.ID, list[1].ID)
	assert.Equal(t, int64(2), list[1].SystemCount)
}

func TestEnsureAdminCreatesWhenNoUsers(t *testing.T) {
	conn := newTestDB(t)
	users := store.NewUserStore(conn)

	require.NoError(t, users.EnsureAdmin("admin@x.com", "bootstrap-secret"))

	admin, err := users.FindByEmail("admin@x.com")
	require.NoError(t, err)
	assert.True(t, admin.IsActive)
	assert.True(t, admin.IsAdmin)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("bootstrap-secret")))
}

func TestEnsureAdminPromotesExistingUser(t *testing.T) {
	conn := newTestDB(t)
	users := store.NewUserStore(conn)

	created, err := users.Create("admin@x.com", "hash", "Pending Admin")
	require.NoError(t, err)

	require.NoError(t, users.EnsureAdmin("admin@x.com", "unused"))

	admin, err := users.FindByID(created.ID)
	require.NoError(t, err)
	assert.True(t, admin.IsActive)
	assert.True(t, admin.IsAdmin)
	// Existing password is kept on promotion.
	assert.Equal(t, "hash", admin.PasswordHash)
}

func TestEnsureAdminNoopWhenAdminExists(t *testing.T) {
	conn := newTestDB(t)
	users := store.NewUserStore(conn)

	existing := models.User{Email: "boss@x.com", PasswordHash: "hash", IsActive: true, IsAdmin: true}
	require.NoError(t, conn.Create(&existing).Error)

	require.NoError(t, users.EnsureAdmin("admin@x.com", "unused"))

	_, err := users.FindByEmail("admin@x.com")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
