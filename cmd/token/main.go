// Command token issues an access token for a household member. The API only
// verifies tokens; handing them out to members' devices is an operator task.
//
//	token -user <uuid> [-ttl 720h]
//
// The token is printed to stdout. Exit codes: 0 = success, 1 = error.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/heartmarshall/household-backend/internal/app"
	"github.com/heartmarshall/household-backend/internal/auth"
	"github.com/heartmarshall/household-backend/internal/config"
)

func main() {
	user := flag.String("user", "", "member user id (uuid)")
	ttl := flag.Duration("ttl", 0, "token lifetime (0 = auth.access_token_ttl from config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	userID, err := uuid.Parse(*user)
	if err != nil || userID == uuid.Nil {
		logger.Error("invalid -user", slog.String("value", *user))
		os.Exit(1)
	}

	lifetime := cfg.Auth.AccessTokenTTL
	if *ttl > 0 {
		lifetime = *ttl
	}

	token, err := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, lifetime).GenerateAccessToken(userID)
	if err != nil {
		logger.Error("issue token", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("token issued",
		slog.String("user_id", userID.String()),
		slog.Duration("ttl", lifetime),
	)
	fmt.Println(token)
}
