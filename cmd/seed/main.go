package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/acara-auth/config"
	"github.com/oksasatya/acara-auth/internal/application"
	"github.com/oksasatya/acara-auth/internal/domain/entity"
	pginfra "github.com/oksasatya/acara-auth/internal/infrastructure/postgres"
	"github.com/oksasatya/acara-auth/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	fullName := flag.String("name", "Administrator", "full name")
	username := flag.String("username", "admin", "username")
	email := flag.String("email", "admin@acara.local", "email")
	password := flag.String("password", "password123", "password")
	flag.Parse()

	ctx := context.Background()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	pool, err := pginfra.NewPool(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	// no notifier: seeded accounts get no activation mail
	store := application.NewUserStore(pginfra.NewUserRepository(pool), helpers.NewCredentialCodec(cfg.CredentialSecret), nil, logger)
	u, err := store.Create(ctx, application.NewUser{
		FullName: *fullName,
		Username: *username,
		Email:    *email,
		Password: *password,
		Role:     string(entity.RoleAdmin),
	})
	if errors.Is(err, application.ErrConflict) {
		fmt.Printf("admin already present: username=%s email=%s\n", *username, *email)
		return
	}
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Println(summary(u))
}

// summary never includes the password.
func summary(u *entity.User) string {
	return fmt.Sprintf("seeded admin: id=%s username=%s email=%s role=%s", u.ID, u.Username, u.Email, u.Role)
}
