package db

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/healthsim/healthgen/internal/logging"
	"github.com/healthsim/healthgen/pkg/version"
)

const metadataTable = "healthgen_metadata"

const createMetadataTableSQL = `
CREATE TABLE IF NOT EXISTS healthgen_metadata (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
)`

// SaveMetadata records the generation parameters alongside the dataset so
// a reader can tell which seed and counts produced it.
func SaveMetadata(ctx context.Context, pool *pgxpool.Pool, seed uint64, counts map[string]int) error {
	_, err := pool.Exec(ctx, createMetadataTableSQL)
	if err != nil {
		return fmt.Errorf("failed to create metadata table: %w", err)
	}

	metadata := map[string]string{
		"seed":         strconv.FormatUint(seed, 10),
		"version":      version.Short(),
		"generated_at": time.Now().UTC().Format(time.RFC3339),
	}
	for table, count := range counts {
		metadata["count_"+table] = strconv.Itoa(count)
	}

	for key, value := range metadata {
		_, err := pool.Exec(ctx, `
            INSERT INTO healthgen_metadata (key, value) VALUES ($1, $2)
            ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
        `, key, value)
		if err != nil {
			return fmt.Errorf("failed to save metadata %s: %w", key, err)
		}
	}

	logging.Debug().
		Uint64("seed", seed).
		Msg("Saved metadata")

	return nil
}

// GetMetadataValue retrieves a single metadata value by key.
func GetMetadataValue(ctx context.Context, pool *pgxpool.Pool, key string) (string, error) {
	var value string
	err := pool.QueryRow(ctx, `
        SELECT value FROM healthgen_metadata WHERE key = $1
    `, key).Scan(&value)
	if err != nil {
		return "", err
	}
	return value, nil
}

// DropMetadata drops the metadata table.
func DropMetadata(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", metadataTable))
	return err
}
