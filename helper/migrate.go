// Package helper runs the SQL migrations under migrations/postgres with golang-migrate.
package helper

//nolint:revive
import (
	"agenda/config"
	"agenda/infras/postgres"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const migrationsSource = "file://migrations/postgres"

const (
	ActionUp       = "up"
	ActionDown     = "down"
	ActionStepUp   = "step-up"
	ActionStepDown = "step-down"
	ActionDrop     = "drop"
)

var actions = map[string]func(*migrate.Migrate) error{
	ActionUp:       (*migrate.Migrate).Up,
	ActionDown:     (*migrate.Migrate).Down,
	ActionStepUp:   func(m *migrate.Migrate) error { return m.Steps(1) },
	ActionStepDown: func(m *migrate.Migrate) error { return m.Steps(-1) },
	ActionDrop:     (*migrate.Migrate).Drop,
}

// Actions lists the supported migration actions in a stable order.
func Actions() []string {
	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

func open(cfg *config.Config) (*migrate.Migrate, error) {
	extra := url.Values{}
	if table := cfg.DB.Postgres.MigrationTable; table != "" {
		extra.Set("x-migrations-table", table)
	}

	mig, err := migrate.New(migrationsSource, postgres.WriteTarget(cfg).DSN(extra))
	if err != nil {
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}

	return mig, nil
}

// Runner applies one of Actions() against the write database. ErrNoChange is not an error.
func Runner(cfg *config.Config, action string) error {
	run, ok := actions[action]
	if !ok {
		return fmt.Errorf("unknown migration action %q, expected one of %s", action, strings.Join(Actions(), ", "))
	}

	mig, err := open(cfg)
	if err != nil {
		return err
	}

	defer func() {
		if srcErr, dbErr := mig.Close(); srcErr != nil || dbErr != nil {
			log.Warn().AnErr("source", srcErr).AnErr("database", dbErr).Msg("Failed to close migrate instance")
		}
	}()

	if err = run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration %s: %w", action, err)
	}

	version, dirty, verErr := mig.Version()
	if verErr != nil && !errors.Is(verErr, migrate.ErrNilVersion) {
		log.Warn().Err(verErr).Msg("Could not read schema version")
	}

	log.Info().Str("action", action).Uint("version", version).Bool("dirty", dirty).Msg("Database migration finished")

	return nil
}

func Up(cfg *config.Config) error {
	return Runner(cfg, ActionUp)
}
