// Command token mints a short-lived access token for internal callers of the
// API, such as the payroll exporter, using JWT_SECRET_KEY from the environment.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/cmlabs-hris/worktime-backend-go/internal/config"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/jwt"
)

func main() {
	subject := flag.String("sub", "", "token subject (caller name)")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	if *subject == "" || *ttl <= 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Skew)
	token, expiresAt, err := JWTService.GenerateAccessToken(*subject, *ttl)
	if err != nil {
		slog.Error("Failed to generate token", "error", err)
		os.Exit(1)
	}

	slog.Info("Access token issued", "sub", *subject, "expires_at", time.Unix(expiresAt, 0).UTC())
	fmt.Println(token)
}
