package application

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/placebook/internal/domain/entity"
	"github.com/oksasatya/placebook/pkg/apperror"
)

var empire = CreatePlaceInput{Title: "Empire State", Description: "Tall building", Address: "20 W 34th St, New York"}

func TestCreatePlaceLinksUser(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	uid := e.signup(t, "A", "a@x.com")

	p, err := e.places.CreatePlace(ctx, uid, empire)
	require.NoError(t, err)
	assert.Equal(t, uid, p.CreatorID)
	assert.Equal(t, entity.Location{Lat: 40.7, Lng: -73.9}, p.Location)
	assert.Equal(t, defaultImage, p.Image)

	u, err := e.users.GetUser(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, []string{p.ID}, u.Places)
	assert.Contains(t, e.index.indexed, p.ID)

	got, err := e.places.GetPlace(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Empire State", got.Title)
}

func TestCreatePlaceIsAtomic(t *testing.T) {
	for _, op := range []string{"places.Create", "users.AddPlace"} {
		t.Run(op, func(t *testing.T) {
			e := newEnv(t)
			ctx := context.Background()
			uid := e.signup(t, "A", "a@x.com")
			e.store.FailOn[op] = assert.AnError

			_, err := e.places.CreatePlace(ctx, uid, empire)
			requireCode(t, err, http.StatusInternalServerError)

			delete(e.store.FailOn, op)
			u, err := e.users.GetUser(ctx, uid)
			require.NoError(t, err)
			assert.Empty(t, u.Places)
			_, err = e.places.PlacesByUser(ctx, uid)
			requireCode(t, err, http.StatusNotFound)
			assert.Empty(t, e.index.indexed)
		})
	}
}

func TestCreatePlaceGeocodeFailure(t *testing.T) {
	e := newEnv(t)
	uid := e.signup(t, "A", "a@x.com")

	_, err := e.places.CreatePlace(context.Background(), uid, CreatePlaceInput{Title: "x", Description: "yyyyy", Address: "  "})
	ae := requireCode(t, err, http.StatusUnprocessableEntity)
	assert.Equal(t, "Could not find location for the specified address.", ae.Message)
}

func TestCreatePlaceUnknownUser(t *testing.T) {
	e := newEnv(t)
	_, err := e.places.CreatePlace(context.Background(), "ghost", empire)
	requireCode(t, err, http.StatusNotFound)
}

func TestPlacesByUser(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	uid := e.signup(t, "A", "a@x.com")

	_, err := e.places.PlacesByUser(ctx, uid)
	ae := requireCode(t, err, http.StatusNotFound)
	assert.Equal(t, "Could not find places for the provided user id.", ae.Message)

	_, err = e.places.CreatePlace(ctx, uid, empire)
	require.NoError(t, err)
	places, err := e.places.PlacesByUser(ctx, uid)
	require.NoError(t, err)
	assert.Len(t, places, 1)
}

func TestOnlyOwnerMayChangePlace(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.signup(t, "A", "a@x.com")
	other := e.signup(t, "B", "b@x.com")
	p, err := e.places.CreatePlace(ctx, owner, empire)
	require.NoError(t, err)

	_, err = e.places.UpdatePlace(ctx, other, p.ID, UpdatePlaceInput{Title: "Mine", Description: "now mine"})
	ae := requireCode(t, err, http.StatusUnauthorized)
	assert.Equal(t, "You are not allowed to edit this place.", ae.Message)

	err = e.places.DeletePlace(ctx, other, p.ID)
	ae = requireCode(t, err, http.StatusUnauthorized)
	assert.Equal(t, "You are not allowed to delete this place.", ae.Message)

	_, err = e.places.UploadImage(ctx, other, p.ID, "a.png", "image/png", strings.NewReader("png"))
	requireCode(t, err, http.StatusUnauthorized)

	updated, err := e.places.UpdatePlace(ctx, owner, p.ID, UpdatePlaceInput{Title: "ESB", Description: "Still tall"})
	require.NoError(t, err)
	assert.Equal(t, "ESB", updated.Title)
	assert.Equal(t, empire.Address, updated.Address)
	assert.Equal(t, "ESB", e.index.indexed[p.ID].Title)
}

func TestDeletePlaceUnlinksUser(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	uid := e.signup(t, "A", "a@x.com")
	p, err := e.places.CreatePlace(ctx, uid, empire)
	require.NoError(t, err)

	require.NoError(t, e.places.DeletePlace(ctx, uid, p.ID))

	u, err := e.users.GetUser(ctx, uid)
	require.NoError(t, err)
	assert.Empty(t, u.Places)
	_, err = e.places.GetPlace(ctx, p.ID)
	requireCode(t, err, http.StatusNotFound)
	assert.Equal(t, []string{p.ID}, e.index.deleted)

	err = e.places.DeletePlace(ctx, uid, p.ID)
	ae := requireCode(t, err, http.StatusNotFound)
	assert.Equal(t, "Could not find place for this id.", ae.Message)
}

func TestDeletePlaceRollsBack(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	uid := e.signup(t, "A", "a@x.com")
	p, err := e.places.CreatePlace(ctx, uid, empire)
	require.NoError(t, err)

	e.store.FailOn["users.RemovePlace"] = assert.AnError
	requireCode(t, e.places.DeletePlace(ctx, uid, p.ID), http.StatusInternalServerError)
	delete(e.store.FailOn, "users.RemovePlace")

	_, err = e.places.GetPlace(ctx, p.ID)
	require.NoError(t, err)
	u, err := e.users.GetUser(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, []string{p.ID}, u.Places)
}

func TestIndexFailuresDoNotFailRequests(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	uid := e.signup(t, "A", "a@x.com")
	e.index.err = assert.AnError

	p, err := e.places.CreatePlace(ctx, uid, empire)
	require.NoError(t, err)
	require.NoError(t, e.places.DeletePlace(ctx, uid, p.ID))
}

func TestUploadImage(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	uid := e.signup(t, "A", "a@x.com")
	p, err := e.places.CreatePlace(ctx, uid, empire)
	require.NoError(t, err)

	got, err := e.places.UploadImage(ctx, uid, p.ID, "Photo.PNG", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	require.Len(t, e.images.paths, 1)
	assert.True(t, strings.HasPrefix(e.images.paths[0], "places/"+p.ID+"/"))
	assert.True(t, strings.HasSuffix(e.images.paths[0], ".png"))
	assert.Equal(t, "png-bytes", e.images.body)
	assert.Equal(t, "https://cdn.test/"+e.images.paths[0], got.Image)

	stored, err := e.places.GetPlace(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, got.Image, stored.Image)
}

func TestUploadImageWithoutStore(t *testing.T) {
	e := newEnv(t)
	e.places.Images = nil
	_, err := e.places.UploadImage(context.Background(), "u", "p", "a.png", "image/png", strings.NewReader(""))
	assert.True(t, apperror.IsKind(err, apperror.KindUnavailable))
}

func TestSearchPlaces(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	uid := e.signup(t, "A", "a@x.com")
	_, err := e.places.CreatePlace(ctx, uid, empire)
	require.NoError(t, err)

	got, err := e.places.SearchPlaces(ctx, "empire", 10)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = e.places.SearchPlaces(ctx, "  ", 10)
	require.NoError(t, err)
	assert.Empty(t, got)

	e.index.err = assert.AnError
	_, err = e.places.SearchPlaces(ctx, "empire", 10)
	requireCode(t, err, http.StatusInternalServerError)

	e.places.Index = nil
	got, err = e.places.SearchPlaces(ctx, "empire", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
