package application

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/placebook/pkg/mailer"
	mailtpl "github.com/oksasatya/placebook/pkg/mailer/templates"
)

func TestSignupOnceThenDuplicateFails(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	res, err := e.users.Signup(ctx, SignupInput{Name: "A", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", res.Email)
	assert.NotEmpty(t, res.UserID)

	claims, err := e.users.JWT.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.UserID, claims.UserID)

	u, err := e.users.GetUser(ctx, res.UserID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", u.Password)
	assert.Equal(t, defaultImage, u.Image)

	_, err = e.users.Signup(ctx, SignupInput{Name: "A", Email: "A@x.com ", Password: "secret1"})
	ae := requireCode(t, err, http.StatusUnprocessableEntity)
	assert.Equal(t, "User exists already, please login instead.", ae.Message)
}

func TestSignupRejectsBlankName(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.users.Signup(ctx, SignupInput{Name: " \t ", Email: "a@x.com", Password: "secret1"})
	requireCode(t, err, http.StatusUnprocessableEntity)

	list, err := e.users.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSignupEnqueuesWelcomeEmail(t *testing.T) {
	e := newEnv(t)
	e.signup(t, "Ann", "ann@x.com")

	require.Len(t, e.mail.jobs, 1)
	job, ok := e.mail.jobs[0].(mailer.EmailJob)
	require.True(t, ok)
	assert.Equal(t, "ann@x.com", job.To)
	assert.Equal(t, mailtpl.Welcome, job.Template)
	assert.Equal(t, "Ann", job.Data["Name"])
}

func TestSignupSucceedsWhenEnqueueFails(t *testing.T) {
	e := newEnv(t)
	e.mail.err = assert.AnError
	e.signup(t, "Ann", "ann@x.com")
}

func TestLogin(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	id := e.signup(t, "A", "a@x.com")

	res, err := e.users.Login(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, id, res.UserID)
	assert.NotEmpty(t, res.Token)

	for _, tc := range []struct{ email, password string }{
		{"a@x.com", "wrong-pass"},
		{"nobody@x.com", "secret1"},
	} {
		res, err := e.users.Login(ctx, tc.email, tc.password)
		ae := requireCode(t, err, http.StatusUnauthorized)
		assert.Equal(t, "Invalid credentials, could not log you in.", ae.Message)
		assert.Nil(t, res)
	}
}

func TestLoginStorageFailure(t *testing.T) {
	e := newEnv(t)
	e.store.FailOn["users.GetByEmail"] = assert.AnError
	_, err := e.users.Login(context.Background(), "a@x.com", "secret1")
	requireCode(t, err, http.StatusInternalServerError)
}

func TestGetUserAndList(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.signup(t, "A", "a@x.com")
	e.signup(t, "B", "b@x.com")

	users, err := e.users.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	_, err = e.users.GetUser(ctx, "missing")
	requireCode(t, err, http.StatusNotFound)
}
