package commands

import (
	"log"

	"github.com/meinhoongagan/portfolio-api/config"
	"github.com/meinhoongagan/portfolio-api/db"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.Open(config.Load())
		if err != nil {
			return err
		}
		defer db.Close(database)

		if err := db.Migrate(database); err != nil {
			return err
		}
		log.Println("Migrations applied")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
