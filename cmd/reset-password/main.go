package main

import (
	"context"
	"flag"
	"fmt"
	"syscall"

	"github.com/edunexus/schoolhub/internal/config"
	"github.com/edunexus/schoolhub/internal/database"
	"github.com/edunexus/schoolhub/internal/logger"
	"github.com/edunexus/schoolhub/internal/repository"
	"github.com/edunexus/schoolhub/internal/session"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

func main() {
	var email string
	flag.StringVar(&email, "email", "", "Email of the account to reset")
	flag.Parse()
	if email == "" {
		fmt.Println("Usage: reset-password -email <address>")
		return
	}

	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL and Redis ───────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	userRepo := repository.NewUserRepository(pool)
	sessions := session.NewRedisStore(rdb)

	fmt.Println("=== Reset Password ===")

	u, err := userRepo.GetByEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			fmt.Printf("Error: no account for %s\n", email)
			return
		}
		log.Fatal().Err(err).Msg("Failed to look up account")
	}
	fmt.Printf("Account: %s (%s, role %s)\n", u.Name, u.Email, u.Role)

	fmt.Print("Enter New Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	fmt.Println()
	password := string(bytePassword)
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	if err := userRepo.UpdatePassword(ctx, u.ID, string(hashedPassword)); err != nil {
		log.Fatal().Err(err).Msg("Failed to update password")
	}

	// Existing sign-ins must not survive a reset.
	if err := sessions.ClearUser(ctx, u.ID); err != nil {
		log.Warn().Err(err).Int("user_id", u.ID).Msg("Failed to clear sessions")
	}

	fmt.Printf("\nSuccess! Password for %s updated and all sessions signed out.\n", u.Email)
}
