package commands

import (
	"context"
	"fmt"
	"log"

	"github.com/meinhoongagan/portfolio-api/config"
	"github.com/meinhoongagan/portfolio-api/db"
	"github.com/meinhoongagan/portfolio-api/models"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	roleEmail  string
	roleName   string
	activeFlag string
)

// setRoleCmd bootstraps the first super admin, which the API itself cannot do.
var setRoleCmd = &cobra.Command{
	Use:   "set-role",
	Short: "Change a user's role and activation",
	Long: `Change a user's role and, optionally, whether the account is active.

Examples:
  portfolio-api set-role --email a@x.com --role super_admin --active Yes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.Open(config.Load())
		if err != nil {
			return err
		}
		defer db.Close(database)

		if err := setRole(cmd.Context(), database, roleEmail, roleName, activeFlag); err != nil {
			return err
		}
		log.Printf("Updated %s: role=%s", roleEmail, roleName)
		return nil
	},
}

func init() {
	setRoleCmd.Flags().StringVar(&roleEmail, "email", "", "Email of the user to change (required)")
	setRoleCmd.Flags().StringVar(&roleName, "role", models.RoleSuperAdmin, "Role to assign: admin or super_admin")
	setRoleCmd.Flags().StringVar(&activeFlag, "active", "", "Set is_active to Yes or No")
	_ = setRoleCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(setRoleCmd)
}

func setRole(ctx context.Context, database *gorm.DB, email, role, active string) error {
	if !models.ValidRole(role) {
		return fmt.Errorf("invalid role %q: must be %s or %s", role, models.RoleAdmin, models.RoleSuperAdmin)
	}
	updates := map[string]any{"role": role}
	if active != "" {
		if !models.ValidActiveFlag(active) {
			return fmt.Errorf("invalid --active %q: must be %s or %s", active, models.ActiveYes, models.ActiveNo)
		}
		updates["is_active"] = active
	}

	result := database.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update user %s: %w", email, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no user with email %s", email)
	}
	return nil
}
