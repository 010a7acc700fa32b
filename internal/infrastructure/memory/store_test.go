package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/placebook/internal/domain/entity"
	"github.com/oksasatya/placebook/internal/domain/repository"
)

func TestUserCreateRejectsDuplicateEmail(t *testing.T) {
	s := NewStore()
	users := NewUserRepository(s)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &entity.User{ID: "u1", Email: "a@x.com", Password: "hash"}))
	err := users.Create(ctx, &entity.User{ID: "u2", Email: "a@x.com"})
	require.ErrorIs(t, err, repository.ErrDuplicate)

	got, err := users.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "hash", got.Password, "password hash survives copies")
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	s := NewStore()
	places := NewPlaceRepository(s)
	ctx := context.Background()
	require.NoError(t, places.Create(ctx, &entity.Place{ID: "p1", Title: "before"}))

	got, err := places.GetByID(ctx, "p1")
	require.NoError(t, err)
	got.Title = "mutated"

	again, err := places.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "before", again.Title)
}

func TestWithinTxRollsBackEveryWrite(t *testing.T) {
	s := NewStore()
	users := NewUserRepository(s)
	places := NewPlaceRepository(s)
	tx := NewTransactor(s)
	ctx := context.Background()
	require.NoError(t, users.Create(ctx, &entity.User{ID: "u1", Email: "a@x.com"}))

	boom := errors.New("boom")
	err := tx.WithinTx(ctx, func(ctx context.Context) error {
		require.NoError(t, places.Create(ctx, &entity.Place{ID: "p1", CreatorID: "u1"}))
		require.NoError(t, users.AddPlace(ctx, "u1", "p1"))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = places.GetByID(ctx, "p1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	u, err := users.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, u.Places)
}

func TestWithinTxCommits(t *testing.T) {
	s := NewStore()
	users := NewUserRepository(s)
	tx := NewTransactor(s)
	ctx := context.Background()
	require.NoError(t, users.Create(ctx, &entity.User{ID: "u1", Email: "a@x.com"}))

	require.NoError(t, tx.WithinTx(ctx, func(ctx context.Context) error {
		return users.AddPlace(ctx, "u1", "p1")
	}))

	u, err := users.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, u.Places)
}

func TestWriteDuringFailedTxSurvivesRollback(t *testing.T) {
	s := NewStore()
	posts := NewPostRepository(s)
	tx := NewTransactor(s)
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})
	txDone := make(chan error, 1)
	go func() {
		txDone <- tx.WithinTx(ctx, func(ctx context.Context) error {
			close(started)
			<-release
			return errors.New("boom")
		})
	}()
	<-started

	written := make(chan error, 1)
	go func() { written <- posts.Create(ctx, &entity.Post{ID: "p1", Text: "hi"}) }()

	time.Sleep(20 * time.Millisecond)
	close(release)
	require.Error(t, <-txDone)
	require.NoError(t, <-written)

	got, err := posts.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "hi", got.Text)
}

func TestWithinTxRollsBackOnPanic(t *testing.T) {
	s := NewStore()
	users := NewUserRepository(s)
	tx := NewTransactor(s)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = tx.WithinTx(ctx, func(ctx context.Context) error {
			require.NoError(t, users.Create(ctx, &entity.User{ID: "u1", Email: "a@x.com"}))
			panic("kaput")
		})
	})
	_, err := users.GetByID(ctx, "u1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProfileViewsCarryOwner(t *testing.T) {
	s := NewStore()
	users := NewUserRepository(s)
	profiles := NewProfileRepository(s)
	ctx := context.Background()
	require.NoError(t, users.Create(ctx, &entity.User{ID: "u1", Name: "Ann", Email: "a@x.com", Image: "img"}))
	require.NoError(t, profiles.Create(ctx, &entity.Profile{ID: "pr1", CreatorID: "u1", Status: "dev"}))

	err := profiles.Create(ctx, &entity.Profile{ID: "pr2", CreatorID: "u1", Status: "dev"})
	require.ErrorIs(t, err, repository.ErrDuplicate)

	got, err := profiles.GetByCreator(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got.Owner)
	assert.Equal(t, entity.Owner{ID: "u1", Name: "Ann", Image: "img"}, *got.Owner)
}

func TestPostsListNewestFirst(t *testing.T) {
	s := NewStore()
	posts := NewPostRepository(s)
	ctx := context.Background()
	require.NoError(t, posts.Create(ctx, &entity.Post{ID: "a"}))
	require.NoError(t, posts.Create(ctx, &entity.Post{ID: "b"}))

	list, err := posts.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.False(t, list[0].CreatedAt.Before(list[1].CreatedAt))
}
