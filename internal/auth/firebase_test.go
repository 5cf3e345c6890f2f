package auth

import (
	"context"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accessguide/accessguide-backend/config"
)

func TestNewAdminTokenVerifier_NotConfigured(t *testing.T) {
	_, err := NewAdminTokenVerifier(context.Background(), nil)
	assert.ErrorIs(t, err, ErrFirebaseDisabled)

	_, err = NewAdminTokenVerifier(context.Background(), &config.FirebaseConfig{ProjectID: "guide"})
	assert.ErrorIs(t, err, ErrFirebaseDisabled)
}

func TestNewAdminTokenVerifier_MissingCredentialsFile(t *testing.T) {
	cfg := &config.FirebaseConfig{
		CredentialsPath: filepath.Join(t.TempDir(), "service-account.json"),
		ProjectID:       "guide",
	}

	_, err := NewAdminTokenVerifier(context.Background(), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "firebase credentials")
}
