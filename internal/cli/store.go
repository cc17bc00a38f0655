package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/timeslot/internal/constants"
	apperrors "github.com/julianstephens/timeslot/internal/errors"
	"github.com/julianstephens/timeslot/internal/keyring"
	"github.com/julianstephens/timeslot/internal/logger"
	"github.com/julianstephens/timeslot/internal/storage"
	"github.com/julianstephens/timeslot/internal/storage/postgres"
	"github.com/julianstephens/timeslot/internal/storage/sqlite"
)

// ExpandPath replaces a leading ~ with the home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// ConfigDir is the directory holding logs for config. Connection strings
// fall back to the default config directory.
func ConfigDir(config string) string {
	if config == "" || postgres.IsConnString(config) || strings.Contains(config, "host=") {
		config = constants.DefaultConfigPath
	}
	path, err := ExpandPath(config)
	if err != nil {
		return "."
	}
	return filepath.Dir(path)
}

// OpenStore picks the storage backend for config. An empty config falls
// back to TIMESLOT_DB_CONNECTION, then the keyring, then the default
// sqlite path. A connection string given as --config must not embed a
// password; the environment and keyring are allowed to.
func OpenStore(config string) (storage.Provider, error) {
	if config == "" {
		if connStr, src := keyring.Lookup(); connStr != "" {
			logger.Debug("Using connection string", "source", src)
			return openPostgres(connStr, true)
		}
		config = constants.DefaultConfigPath
	}
	if postgres.IsConnString(config) || strings.Contains(config, "host=") {
		return openPostgres(config, false)
	}

	path, err := ExpandPath(config)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return storage.NewFileStore(path), nil
	default:
		return sqlite.NewStore(path), nil
	}
}

func openPostgres(connStr string, secretStore bool) (storage.Provider, error) {
	if err := postgres.ValidateConnString(connStr); err != nil {
		if errors.Is(err, postgres.ErrEmbeddedCredentials) {
			if secretStore {
				return postgres.New(connStr), nil
			}
			return nil, apperrors.WithHint(err,
				"store the password in ~/.pgpass or PGPASSWORD, or keep the whole string in the keyring with 'timeslot keyring set'")
		}
		return nil, err
	}
	return postgres.New(connStr), nil
}
