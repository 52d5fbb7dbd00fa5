package db

import (
	"fmt"
	"path/filepath"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"

	"github.com/healthsim/healthgen/internal/logging"
)

const (
	embeddedUser     = "healthgen"
	embeddedPassword = "healthgen"
	embeddedDatabase = "healthgen"
	embeddedPort     = 15432
)

// Embedded manages a PostgreSQL server rooted in a local data directory.
// The directory is the output artifact: it survives Stop and can be
// reopened later for querying, or shared as-is.
type Embedded struct {
	server  *embeddedpostgres.EmbeddedPostgres
	dataDir string
	port    uint32
}

// NewEmbedded configures an embedded server under dataDir on the given
// port. Port 0 selects the default.
func NewEmbedded(dataDir string, port uint32) *Embedded {
	if port == 0 {
		port = embeddedPort
	}
	return &Embedded{dataDir: dataDir, port: port}
}

// Start boots the embedded server. The data directory is created on first
// use and reused afterwards.
func (e *Embedded) Start() error {
	abs, err := filepath.Abs(e.dataDir)
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	logging.Info().
		Str("data_dir", abs).
		Uint32("port", e.port).
		Msg("Starting embedded database")

	e.server = embeddedpostgres.NewDatabase(embeddedpostgres.DefaultConfig().
		Username(embeddedUser).
		Password(embeddedPassword).
		Database(embeddedDatabase).
		Port(e.port).
		DataPath(filepath.Join(abs, "pgdata")).
		RuntimePath(filepath.Join(abs, "runtime")).
		StartTimeout(60 * time.Second))

	if err := e.server.Start(); err != nil {
		return fmt.Errorf("start embedded database: %w", err)
	}
	return nil
}

// Stop shuts the server down, leaving the data directory in place.
func (e *Embedded) Stop() error {
	if e.server == nil {
		return nil
	}
	if err := e.server.Stop(); err != nil {
		return fmt.Errorf("stop embedded database: %w", err)
	}
	logging.Info().Str("data_dir", e.dataDir).Msg("Embedded database stopped")
	return nil
}

// ConnString returns the connection string for the running server.
func (e *Embedded) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@localhost:%d/%s?sslmode=disable",
		embeddedUser, embeddedPassword, e.port, embeddedDatabase)
}
