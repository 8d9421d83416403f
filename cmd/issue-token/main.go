// Command issue-token prints a signed viewer token for local testing.
//
//	go run ./cmd/issue-token -sub 1MS21CS001 -role USER -ttl 2h
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/iliyamo/event-seat-booking/internal/config"
	"github.com/iliyamo/event-seat-booking/internal/utils"
)

func main() {
	sub := flag.String("sub", "", "viewer id (token subject)")
	role := flag.String("role", "USER", "ADMIN, USER or VOLUNTEER")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	config.LoadDotEnv()
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("missing required env var: JWT_SECRET")
	}
	tok, err := utils.NewAccessToken(secret, *sub, *role, *ttl)
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}
	_ = json.NewEncoder(os.Stdout).Encode(tok)
}
