package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_shelters",
		SQL: `CREATE TABLE IF NOT EXISTS shelters (
  id_shelter    BIGSERIAL   PRIMARY KEY,
  name          TEXT        NOT NULL,
  email         TEXT        NOT NULL UNIQUE,
  phone         TEXT        NOT NULL,
  registered_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_addresses",
		SQL: `CREATE TABLE IF NOT EXISTS addresses (
  id_address BIGSERIAL PRIMARY KEY,
  street     TEXT      NOT NULL,
  number     TEXT      NOT NULL,
  city       TEXT      NOT NULL,
  state      TEXT      NOT NULL,
  shelter_id BIGINT    NOT NULL REFERENCES shelters (id_shelter) ON DELETE CASCADE
);`,
	},
	{
		Name: "create_table_adopters",
		SQL: `CREATE TABLE IF NOT EXISTS adopters (
  id_adopter    BIGSERIAL   PRIMARY KEY,
  name          TEXT        NOT NULL,
  email         TEXT        NOT NULL UNIQUE,
  phone         TEXT        NOT NULL,
  password      TEXT        NOT NULL,
  registered_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_pets",
		SQL: `CREATE TABLE IF NOT EXISTS pets (
  id_pet     BIGSERIAL   PRIMARY KEY,
  name       TEXT        NOT NULL,
  birth_date TIMESTAMPTZ NOT NULL,
  adopter_id BIGINT      REFERENCES adopters (id_adopter) ON DELETE RESTRICT,
  photo_path TEXT        NOT NULL DEFAULT ''
);`,
	},
	{
		Name: "create_table_admins",
		SQL: `CREATE TABLE IF NOT EXISTS admins (
  id_admin BIGSERIAL PRIMARY KEY,
  name     TEXT      NOT NULL,
  email    TEXT      NOT NULL UNIQUE,
  password TEXT      NOT NULL
);`,
	},
	{
		Name: "create_index_addresses_shelter_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_addresses_shelter_id ON addresses (shelter_id);`,
	},
	{
		Name: "create_index_pets_adopter_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_pets_adopter_id ON pets (adopter_id);`,
	},
	{
		Name: "create_index_pets_name",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_pets_name ON pets (name);`,
	},
}

// EnsureMigrated checks if the 'shelters' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.shelters') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
