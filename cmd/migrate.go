package main

import (
	"assetflow/providers/configprovider"
	"assetflow/providers/databaseprovider"

	"github.com/spf13/cobra"
)

var (
	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "apply sql migrations from the migrations directory",
		RunE:  runMigration,
	}
	migrateDown bool
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateDown, "down", "d", false, "roll back the latest migration")
}

func runMigration(_ *cobra.Command, _ []string) error {
	cfg := configprovider.NewConfigProvider()
	if err := cfg.LoadEnv(); err != nil {
		return err
	}

	db, err := databaseprovider.NewDBProvider(cfg.GetDatabaseString(), cfg.GetMigrationsDir())
	if err != nil {
		return err
	}
	defer db.Close()

	if migrateDown {
		return db.MigrateDown()
	}
	return db.MigrateUp()
}
