package migrations

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/navbryce/next-blog-be/db/sqlstore"
	log "github.com/sirupsen/logrus"
)

// one directory per driver, named after the driver
//
//go:embed mysql/*.sql sqlite3/*.sql
var fs embed.FS

func newMigrate(driver, dsn string) (*migrate.Migrate, error) {
	normalized, err := sqlstore.NormalizeDSN(driver, dsn)
	if err != nil {
		return nil, err
	}
	src, err := iofs.New(fs, driver)
	if err != nil {
		return nil, fmt.Errorf("error loading %v migrations: %w", driver, err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, driver+"://"+normalized)
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}
	return m, nil
}

// Up applies every pending migration. A database that is already current is not an error.
func Up(driver, dsn string) (err error) {
	m, err := newMigrate(driver, dsn)
	if err != nil {
		return err
	}
	defer closeMigrate(m, &err)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running migrations: %w", err)
	}
	logVersion(m, "Migrations applied")
	return nil
}

// Down rolls back the most recent migration
func Down(driver, dsn string) (err error) {
	m, err := newMigrate(driver, dsn)
	if err != nil {
		return err
	}
	defer closeMigrate(m, &err)

	if err := m.Steps(-1); err != nil {
		return fmt.Errorf("error rolling back migration: %w", err)
	}
	logVersion(m, "Migration rolled back")
	return nil
}

func closeMigrate(m *migrate.Migrate, err *error) {
	srcErr, dbErr := m.Close()
	if *err != nil {
		return
	}
	if srcErr != nil {
		*err = srcErr
	} else if dbErr != nil {
		*err = dbErr
	}
}

func logVersion(m *migrate.Migrate, msg string) {
	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		log.WithError(err).Warn("Could not read migration version")
		return
	}
	log.WithFields(log.Fields{
		"version": version,
		"dirty":   dirty,
	}).Info(msg)
}
