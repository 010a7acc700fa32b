package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/placebook/config"
	"github.com/oksasatya/placebook/internal/container"
	"github.com/oksasatya/placebook/pkg/helpers"
)

func TestSeedDemoIsRepeatable(t *testing.T) {
	old := helpers.PasswordCost
	helpers.PasswordCost = bcrypt.MinCost
	t.Cleanup(func() { helpers.PasswordCost = old })

	ctx := context.Background()
	cfg := &config.Config{AppName: "placebook-seed-test", Env: "test", DBDriver: config.DriverMemory, JWTSecret: "seed-secret"}
	c, err := container.New(ctx, cfg, helpers.DiscardLogger())
	require.NoError(t, err)
	t.Cleanup(c.Close)

	var first, second bytes.Buffer
	require.NoError(t, seedDemo(ctx, c, &first))
	require.NoError(t, seedDemo(ctx, c, &second))

	assert.Contains(t, first.String(), "seeded profile")
	assert.Contains(t, first.String(), "seeded post")
	assert.Contains(t, second.String(), "profile exists, skipped")
	assert.Contains(t, second.String(), "post exists, skipped")

	users, err := c.UserService.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
	posts, err := c.PostService.ListPosts(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}
