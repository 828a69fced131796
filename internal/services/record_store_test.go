package services_test

import (
	"testing"

	"watchlog/internal/models"
	"watchlog/internal/repositories"
	"watchlog/internal/services"
	"watchlog/internal/store"

	"github.com/stretchr/testify/assert"
)

// newRecordStore wires both services over real memory-backed repositories so
// state invariants can be checked against actual collection contents.
func newRecordStore() (*services.UserService, *services.MovieService) {
	userRepo := repositories.NewMapUserRepository(store.NewMemoryMap(store.Config{MaxValueBytes: 1024, MaxEntries: 1024}))
	movieRepo := repositories.NewMapMovieRepository(store.NewMemoryMap(store.Config{}))
	return services.NewUserService(userRepo, nil), services.NewMovieService(movieRepo, userRepo, nil)
}

func TestRecordLifecycle(t *testing.T) {
	userService, movieService := newRecordStore()

	// alice registers
	alice, err := userService.Register("principal-alice", "alice", "")
	assert.NoError(t, err)
	assert.Equal(t, "alice", alice.Username)
	assert.Nil(t, alice.UpdatedAt)

	// alice logs a movie
	movie, err := movieService.LogMovie("principal-alice", models.MoviePayload{
		Title:       "Dune",
		Status:      models.StatusStillWatching,
		ResumePoint: "The spice harvester rescue",
	})
	assert.NoError(t, err)
	assert.Equal(t, "principal-alice", movie.OwnerIdentity)
	assert.Equal(t, alice.ID, movie.OwnerUserID)

	// a different caller may not update it
	_, err = movieService.UpdateMovie("principal-mallory", movie.ID, models.MoviePayload{Title: "Hijacked", Status: models.StatusCompleted})
	assert.ErrorIs(t, err, services.ErrUnauthorized)

	unchanged, err := movieService.GetMovieByID(movie.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Dune", unchanged.Title)
	assert.Nil(t, unchanged.UpdatedAt)

	// alice deletes it and gets the removed record back
	removed, err := movieService.DeleteMovie("principal-alice", movie.ID)
	assert.NoError(t, err)
	assert.Equal(t, movie.ID, removed.ID)

	_, err = movieService.GetMovieByID(movie.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestIssuedIDsAreUnique(t *testing.T) {
	userService, movieService := newRecordStore()

	seen := make(map[string]bool)
	identities := []string{"p-1", "p-2", "p-3", "p-4"}
	for _, identity := range identities {
		user, err := userService.Register(identity, "user-"+identity, "")
		assert.NoError(t, err)
		assert.False(t, seen[user.ID], "duplicate id %s", user.ID)
		seen[user.ID] = true
	}
	for i := 0; i < 4; i++ {
		movie, err := movieService.LogMovie("p-1", models.MoviePayload{Title: "Rewatch", Status: models.StatusCompleted})
		assert.NoError(t, err)
		assert.False(t, seen[movie.ID], "duplicate id %s", movie.ID)
		seen[movie.ID] = true
	}
}

func TestFailedOperationsLeaveStoreUnchanged(t *testing.T) {
	userService, movieService := newRecordStore()

	_, err := userService.Register("principal-alice", "alice", "")
	assert.NoError(t, err)
	movie, err := movieService.LogMovie("principal-alice", models.MoviePayload{Title: "Dune", Status: models.StatusCompleted})
	assert.NoError(t, err)

	before, err := movieService.GetAllMovies()
	assert.NoError(t, err)

	// Absent ids fail with not found on every operation
	_, err = movieService.GetMovieByID("no-such-id")
	assert.ErrorIs(t, err, services.ErrNotFound)
	_, err = movieService.UpdateMovie("principal-alice", "no-such-id", models.MoviePayload{Title: "X", Status: models.StatusCompleted})
	assert.ErrorIs(t, err, services.ErrNotFound)
	_, err = movieService.DeleteMovie("principal-alice", "no-such-id")
	assert.ErrorIs(t, err, services.ErrNotFound)

	// Foreign identity fails without touching the record
	_, err = movieService.UpdateMovie("principal-mallory", movie.ID, models.MoviePayload{Title: "X", Status: models.StatusCompleted})
	assert.ErrorIs(t, err, services.ErrUnauthorized)
	_, err = movieService.DeleteMovie("principal-mallory", movie.ID)
	assert.ErrorIs(t, err, services.ErrUnauthorized)

	after, err := movieService.GetAllMovies()
	assert.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestUpdateIsIdempotent(t *testing.T) {
	userService, movieService := newRecordStore()

	_, err := userService.Register("principal-alice", "alice", "")
	assert.NoError(t, err)
	movie, err := movieService.LogMovie("principal-alice", models.MoviePayload{Title: "Dune", Status: models.StatusStillWatching, ResumePoint: "Act two"})
	assert.NoError(t, err)

	payload := models.MoviePayload{Title: "Dune", Status: models.StatusCompleted, Rating: "10"}
	first, err := movieService.UpdateMovie("principal-alice", movie.ID, payload)
	assert.NoError(t, err)
	second, err := movieService.UpdateMovie("principal-alice", movie.ID, payload)
	assert.NoError(t, err)

	// Only the update timestamp moves on a repeated identical payload.
	assert.NotNil(t, second.UpdatedAt)
	firstStamp, secondStamp := *first.UpdatedAt, *second.UpdatedAt
	assert.GreaterOrEqual(t, secondStamp, firstStamp)
	first.UpdatedAt, second.UpdatedAt = nil, nil
	assert.Equal(t, first, second)
}

func TestDeleteTwice(t *testing.T) {
	userService, _ := newRecordStore()

	alice, err := userService.Register("principal-alice", "alice", "")
	assert.NoError(t, err)

	removed, err := userService.DeleteUser("principal-alice", alice.ID)
	assert.NoError(t, err)
	assert.Equal(t, alice.ID, removed.ID)

	_, err = userService.DeleteUser("principal-alice", alice.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	users, err := userService.GetAllUsers()
	assert.NoError(t, err)
	assert.Empty(t, users)
}

func TestDeletingUserKeepsTheirMovies(t *testing.T) {
	userService, movieService := newRecordStore()

	alice, err := userService.Register("principal-alice", "alice", "")
	assert.NoError(t, err)
	movie, err := movieService.LogMovie("principal-alice", models.MoviePayload{Title: "Dune", Status: models.StatusCompleted})
	assert.NoError(t, err)

	_, err = userService.DeleteUser("principal-alice", alice.ID)
	assert.NoError(t, err)

	// The owner_user_id reference is advisory: the movie survives.
	kept, err := movieService.GetMovieByID(movie.ID)
	assert.NoError(t, err)
	assert.Equal(t, alice.ID, kept.OwnerUserID)
}
