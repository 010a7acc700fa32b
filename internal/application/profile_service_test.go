package application

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/placebook/internal/domain/entity"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCreateProfileLinksUser(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	uid := e.signup(t, "A", "a@x.com")

	p, err := e.profiles.CreateProfile(ctx, uid, ProfileInput{Status: "Developer", Skills: []string{"go"}, Social: entity.Social{Twitter: "@a"}})
	require.NoError(t, err)
	assert.Equal(t, uid, p.CreatorID)
	require.NotNil(t, p.Owner)
	assert.Equal(t, "A", p.Owner.Name)

	u, err := e.users.GetUser(ctx, uid)
	require.NoError(t, err)
	require.NotNil(t, u.ProfileID)
	assert.Equal(t, p.ID, *u.ProfileID)

	got, err := e.profiles.ProfileByUser(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, "Developer", got.Status)
	assert.Equal(t, "@a", got.Social.Twitter)
	require.NotNil(t, got.Owner)
	assert.Equal(t, uid, got.Owner.ID)

	_, err = e.profiles.CreateProfile(ctx, uid, ProfileInput{Status: "Again"})
	requireCode(t, err, http.StatusUnprocessableEntity)
}

func TestCreateProfileRollsBack(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	uid := e.signup(t, "A", "a@x.com")
	e.store.FailOn["users.SetProfile"] = assert.AnError

	_, err := e.profiles.CreateProfile(ctx, uid, ProfileInput{Status: "Developer"})
	requireCode(t, err, http.StatusInternalServerError)
	delete(e.store.FailOn, "users.SetProfile")

	_, err = e.profiles.MyProfile(ctx, uid)
	ae := requireCode(t, err, http.StatusNotFound)
	assert.Equal(t, "There is no profile for this user", ae.Message)
}

func TestListProfiles(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	for _, email := range []string{"a@x.com", "b@x.com"} {
		uid := e.signup(t, email, email)
		_, err := e.profiles.CreateProfile(ctx, uid, ProfileInput{Status: "Dev"})
		require.NoError(t, err)
	}
	profiles, err := e.profiles.ListProfiles(ctx)
	require.NoError(t, err)
	assert.Len(t, profiles, 2)
}

func TestOnlyOwnerMayChangeProfile(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.signup(t, "A", "a@x.com")
	other := e.signup(t, "B", "b@x.com")
	p, err := e.profiles.CreateProfile(ctx, owner, ProfileInput{Status: "Dev", Company: "Acme"})
	require.NoError(t, err)

	_, err = e.profiles.UpdateProfile(ctx, other, p.ID, ProfileInput{Status: "Hacked"})
	requireCode(t, err, http.StatusUnauthorized)
	requireCode(t, e.profiles.DeleteProfile(ctx, other, p.ID), http.StatusUnauthorized)

	updated, err := e.profiles.UpdateProfile(ctx, owner, p.ID, ProfileInput{Status: "Lead"})
	require.NoError(t, err)
	assert.Equal(t, "Lead", updated.Status)
	assert.Empty(t, updated.Company, "update replaces every editable field")

	_, err = e.profiles.UpdateProfile(ctx, owner, "missing", ProfileInput{Status: "x"})
	requireCode(t, err, http.StatusNotFound)
}

func TestDeleteProfileDeletesUser(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	uid := e.signup(t, "A", "a@x.com")
	p, err := e.profiles.CreateProfile(ctx, uid, ProfileInput{Status: "Dev"})
	require.NoError(t, err)

	require.NoError(t, e.profiles.DeleteProfile(ctx, uid, p.ID))

	_, err = e.users.GetUser(ctx, uid)
	requireCode(t, err, http.StatusNotFound)
	_, err = e.profiles.ProfileByUser(ctx, uid)
	requireCode(t, err, http.StatusNotFound)
}

func TestDeleteProfileRollsBack(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	uid := e.signup(t, "A", "a@x.com")
	p, err := e.profiles.CreateProfile(ctx, uid, ProfileInput{Status: "Dev"})
	require.NoError(t, err)

	e.store.FailOn["users.Delete"] = assert.AnError
	requireCode(t, e.profiles.DeleteProfile(ctx, uid, p.ID), http.StatusInternalServerError)
	delete(e.store.FailOn, "users.Delete")

	_, err = e.profiles.ProfileByUser(ctx, uid)
	require.NoError(t, err)
}

func TestExperienceIsPrependedAndTruncatedOnRemoval(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	uid := e.signup(t, "A", "a@x.com")
	_, err := e.profiles.AddExperience(ctx, uid, ExperienceInput{Title: "x", Company: "y", From: date("2020-01-01")})
	requireCode(t, err, http.StatusNotFound)

	_, err = e.profiles.CreateProfile(ctx, uid, ProfileInput{Status: "Dev"})
	require.NoError(t, err)

	for _, title := range []string{"first", "second", "third"} {
		_, err := e.profiles.AddExperience(ctx, uid, ExperienceInput{Title: title, Company: "Acme", From: date("2020-01-01")})
		require.NoError(t, err)
	}
	p, err := e.profiles.MyProfile(ctx, uid)
	require.NoError(t, err)
	require.Len(t, p.Experience, 3)
	assert.Equal(t, "third", p.Experience[0].Title)
	assert.Equal(t, date("2020-01-01"), p.Experience[0].From.UTC())

	// removing the middle entry also drops everything after it
	p, err = e.profiles.RemoveExperience(ctx, uid, p.Experience[1].ID)
	require.NoError(t, err)
	require.Len(t, p.Experience, 1)
	assert.Equal(t, "third", p.Experience[0].Title)

	_, err = e.profiles.RemoveExperience(ctx, uid, "missing")
	requireCode(t, err, http.StatusNotFound)
}

func TestEducation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	uid := e.signup(t, "A", "a@x.com")
	_, err := e.profiles.CreateProfile(ctx, uid, ProfileInput{Status: "Dev"})
	require.NoError(t, err)

	to := date("2014-06-01")
	p, err := e.profiles.AddEducation(ctx, uid, EducationInput{School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: date("2010-09-01"), To: &to})
	require.NoError(t, err)
	require.Len(t, p.Education, 1)
	assert.Equal(t, "CS", p.Education[0].FieldOfStudy)

	p, err = e.profiles.RemoveEducation(ctx, uid, p.Education[0].ID)
	require.NoError(t, err)
	assert.Empty(t, p.Education)

	_, err = e.profiles.RemoveEducation(ctx, uid, "missing")
	requireCode(t, err, http.StatusNotFound)
}
