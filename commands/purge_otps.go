package commands

import (
	"log"
	"time"

	"github.com/meinhoongagan/portfolio-api/config"
	"github.com/meinhoongagan/portfolio-api/db"
	"github.com/meinhoongagan/portfolio-api/repository"
	"github.com/spf13/cobra"
)

var purgeGrace time.Duration

// purgeOTPsCmd is meant for an external scheduler such as a cron entry.
var purgeOTPsCmd = &cobra.Command{
	Use:   "purge-otps",
	Short: "Delete expired password reset codes",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.Open(config.Load())
		if err != nil {
			return err
		}
		defer db.Close(database)

		deleted, err := repository.NewOTPRepository(database).DeleteExpired(cmd.Context(), time.Now().Add(-purgeGrace))
		if err != nil {
			return err
		}
		log.Printf("Deleted %d expired OTPs", deleted)
		return nil
	},
}

func init() {
	purgeOTPsCmd.Flags().DurationVar(&purgeGrace, "grace", time.Hour, "Keep codes that expired less than this long ago")
	rootCmd.AddCommand(purgeOTPsCmd)
}
