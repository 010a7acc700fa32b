package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/oksasatya/placebook/config"
	"github.com/oksasatya/placebook/internal/application"
	"github.com/oksasatya/placebook/internal/container"
	"github.com/oksasatya/placebook/internal/domain/entity"
	"github.com/oksasatya/placebook/pkg/apperror"
	"github.com/oksasatya/placebook/pkg/helpers"
)

const (
	demoEmail    = "demo@placebook.dev"
	demoPassword = "password123"
	demoName     = "Demo User"
)

// seed creates a demo account with a profile and a first post. Running it
// twice reuses the account and skips records that already exist.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	// no welcome email for the demo account
	cfg.MailSendEnabled = false

	c, err := container.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to build container: %v", err)
	}
	defer c.Close()

	if err := seedDemo(ctx, c, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func isValidation(err error) bool {
	var appErr *apperror.Error
	return errors.As(err, &appErr) && appErr.Kind == apperror.KindValidation
}

func seedDemo(ctx context.Context, c *container.Container, out io.Writer) error {
	auth, err := c.UserService.Signup(ctx, application.SignupInput{Name: demoName, Email: demoEmail, Password: demoPassword})
	if isValidation(err) {
		auth, err = c.UserService.Login(ctx, demoEmail, demoPassword)
	}
	if err != nil {
		return fmt.Errorf("seed user: %w", err)
	}
	fmt.Fprintf(out, "seeded user: id=%s email=%s password=%s\n", auth.UserID, demoEmail, demoPassword)

	_, err = c.ProfileService.CreateProfile(ctx, auth.UserID, application.ProfileInput{
		Company:  "Placebook",
		Location: "New York, NY",
		Bio:      "Collects favourite places.",
		Status:   "Developer",
		Skills:   []string{"go", "postgres", "gin"},
		Social:   entity.Social{Twitter: "https://twitter.com/placebook"},
	})
	switch {
	case isValidation(err):
		fmt.Fprintln(out, "profile exists, skipped")
	case err != nil:
		return fmt.Errorf("seed profile: %w", err)
	default:
		fmt.Fprintln(out, "seeded profile")
	}

	posts, err := c.PostService.ListPosts(ctx)
	if err != nil {
		return fmt.Errorf("list posts: %w", err)
	}
	for _, p := range posts {
		if p.CreatorID == auth.UserID {
			fmt.Fprintf(out, "post exists, skipped: id=%s\n", p.ID)
			return nil
		}
	}
	post, err := c.PostService.CreatePost(ctx, auth.UserID, "Hello from the seed script!")
	if err != nil {
		return fmt.Errorf("seed post: %w", err)
	}
	fmt.Fprintf(out, "seeded post: id=%s\n", post.ID)
	return nil
}
