package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"quizhub/internal/auth"
	"quizhub/internal/config"
	"quizhub/internal/domain"
	"quizhub/internal/infra/postgres"
)

// NewCreateAdminCmd seeds the administrator account. Admins cannot register
// through the API, so the first one comes from here.
func NewCreateAdminCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "create-admin",
		Short: "Create the admin account from ADMIN_USERNAME, ADMIN_EMAIL and ADMIN_PASSWORD",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return createAdmin(cmd.Context(), cfg)
		},
	}
}

func createAdmin(ctx context.Context, cfg config.Config) error {
	username := os.Getenv("ADMIN_USERNAME")
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || email == "" || password == "" {
		return fmt.Errorf("ADMIN_USERNAME, ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return err
	}

	db := postgres.NewDB(cfg.Postgres.URL)
	defer db.Close()
	users := postgres.NewUserRepository(db)

	if _, err := users.ByIdentifier(ctx, username); err == nil {
		log.Printf("admin %q already exists", username)
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FullName:     "Administrator",
		Role:         domain.RoleAdmin,
		JoinedAt:     time.Now().UTC(),
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("admin %q created", username)
	return nil
}
