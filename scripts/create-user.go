package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/placelist/placelist/internal/auth"
	"github.com/placelist/placelist/internal/repository"
	"github.com/placelist/placelist/internal/service"
)

type output struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

func main() {
	// Flags default from the environment, so a local .env is enough.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "load .env:", err)
		os.Exit(1)
	}

	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		secretKey   = flag.String("secret-key", os.Getenv("SECRET_KEY"), "Token signing key")
		username    = flag.String("username", "", "Username to create")
		password    = flag.String("password", "", "Password for the new user")
		ttl         = flag.Duration("ttl", time.Hour, "Lifetime of the printed token")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" || *secretKey == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL and SECRET_KEY are required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	tokens := auth.NewTokenManager(*secretKey, *ttl)
	users := service.NewUserService(repo, tokens, nil, nil)

	if _, err := users.Register(ctx, *username, *password); err != nil {
		fmt.Fprintln(os.Stderr, "create user:", err)
		os.Exit(1)
	}

	result, err := users.Login(ctx, *username, *password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "issue token:", err)
		os.Exit(1)
	}

	out := output{
		UserID:    result.User.ID,
		Username:  result.User.Username,
		Token:     result.Token,
		ExpiresAt: result.Claims.ExpiresAt.UTC().Format(time.RFC3339),
	}

	switch strings.ToLower(*format) {
	case "plain":
		fmt.Println(out.Token)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	default:
		fmt.Fprintln(os.Stderr, "invalid format; use plain or json")
		os.Exit(1)
	}
}
