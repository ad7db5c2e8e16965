package main

import (
	"chat-live/auth"
	"chat-live/domain"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// token prints a signed JWT for local testing, e.g.
//
//	JWT_SECRET=dev go run ./cmd/token -user 1 -role teacher
func main() {
	userID := flag.Int64("user", 1, "user id carried by the token")
	role := flag.String("role", string(domain.RoleStudent), "role carried by the token")
	duration := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	_ = godotenv.Load()
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET is required")
		os.Exit(1)
	}
	issuer := os.Getenv("JWT_ISSUER")
	if issuer == "" {
		issuer = "chat-live"
	}
	parsed, err := domain.ParseRole(*role)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid role: %v\n", err)
		os.Exit(1)
	}

	token, err := auth.NewTokenManager(secret, issuer, *duration).
		GenerateToken(domain.Identity{UserID: domain.UserID(*userID), Role: parsed})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Token generation failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
