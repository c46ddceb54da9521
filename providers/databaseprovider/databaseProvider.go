package databaseprovider

import (
	"assetflow/providers"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
)

type PostgresProvider struct {
	db            *sqlx.DB
	migrationsDir string
}

func NewDBProvider(connectionStr, migrationsDir string) (providers.DBProvider, error) {
	db, err := sqlx.Connect("postgres", connectionStr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to Postgres")
	}
	return &PostgresProvider{db: db, migrationsDir: migrationsDir}, nil
}

func (p *PostgresProvider) DB() *sqlx.DB {
	return p.db
}

func (p *PostgresProvider) Close() error {
	return p.db.Close()
}

func (p *PostgresProvider) MigrateUp() error {
	m, err := p.migrator()
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "migration up failed")
	}
	fmt.Println("Migration complete.")
	return nil
}

func (p *PostgresProvider) MigrateDown() error {
	m, err := p.migrator()
	if err != nil {
		return err
	}
	if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "migration down failed")
	}
	return nil
}

func (p *PostgresProvider) migrator() (*migrate.Migrate, error) {
	driver, err := postgres.WithInstance(p.db.DB, &postgres.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create migration driver")
	}
	m, err := migrate.NewWithDatabaseInstance(p.migrationsDir, "postgres", driver)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load migrations")
	}
	return m, nil
}
