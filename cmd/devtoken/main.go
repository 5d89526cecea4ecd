// Command devtoken prints a bearer token for a member, for local testing of
// POST /gatherings.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"gatherly/config"
	"gatherly/internal/adapters/auth"
)

func main() {
	memberID := flag.String("member", "", "member UUID (required)")
	email := flag.String("email", "", "member email")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if _, err := uuid.Parse(*memberID); err != nil {
		log.Fatal("-member must be a member UUID")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	token, err := auth.NewJWTIssuer(cfg.JWTSecret).Issue(*memberID, *email, *ttl)
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}
	fmt.Println(token)
}
