package auth

import (
	"context"
	"errors"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/accessguide/accessguide-backend/config"
	"github.com/accessguide/accessguide-backend/internal/logging"
)

// ErrFirebaseDisabled is returned when no service account file is configured.
var ErrFirebaseDisabled = errors.New("firebase admin auth is not configured")

// NewAdminTokenVerifier builds the Admin SDK client that verifies ID tokens on
// admin routes. extra is applied after the service account file.
func NewAdminTokenVerifier(ctx context.Context, cfg *config.FirebaseConfig, extra ...option.ClientOption) (*auth.Client, error) {
	if cfg == nil || cfg.CredentialsPath == "" {
		return nil, ErrFirebaseDisabled
	}
	if _, err := os.Stat(cfg.CredentialsPath); err != nil {
		return nil, fmt.Errorf("firebase credentials: %w", err)
	}

	var appCfg *firebase.Config
	if cfg.ProjectID != "" {
		appCfg = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	opts := append([]option.ClientOption{option.WithCredentialsFile(cfg.CredentialsPath)}, extra...)
	app, err := firebase.NewApp(ctx, appCfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}

	logging.FromContext(ctx).Info("firebase admin auth enabled",
		zap.String("project_id", cfg.ProjectID),
		zap.String("admin_claim", cfg.AdminClaim),
	)
	return client, nil
}
