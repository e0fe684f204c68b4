// Command devtoken prints a signed access token for local development.
//
//	go run ./cmd/devtoken -company <uuid> [-user <uuid>] [-ttl 8h]
//
// It signs with JWT_SIGNING_KEY, JWT_ISSUER and JWT_AUDIENCE from the
// environment, the same settings the server validates against.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	jwttoken "inspectready/internal/jwt_token"
	"inspectready/internal/platform/config"
	id "inspectready/pkg/domain"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "devtoken:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("devtoken", flag.ContinueOnError)
	companyRaw := fs.String("company", "", "company UUID the token is scoped to (required)")
	userRaw := fs.String("user", "", "user UUID (random when empty)")
	ttl := fs.Duration("ttl", 8*time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}

	companyID, err := id.ParseCompanyID(*companyRaw)
	if err != nil {
		return fmt.Errorf("-company: %w", err)
	}
	userID := id.UserID(uuid.New())
	if *userRaw != "" {
		if userID, err = id.ParseUserID(*userRaw); err != nil {
			return fmt.Errorf("-user: %w", err)
		}
	}

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	token, err := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience).
		GenerateAccessToken(userID, companyID, *ttl)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}
	fmt.Println(token)
	return nil
}
