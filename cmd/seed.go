package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/clubware/club-management/internal"
	"github.com/clubware/club-management/internal/user"
	userPostgres "github.com/clubware/club-management/internal/user/postgres"
	"github.com/clubware/club-management/pkg/logger"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	RunE:  runSeed,
	Use:   "seed",
	Short: "to create the initial administrator account",
	Long: `Creates the administrator account from security.admin_email and
security.admin_password. Safe to run repeatedly: if an account with the
configured email already exists the command exits without changes.`,
}

func runSeed(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	if cfg.Security.AdminEmail == "" || cfg.Security.AdminPassword == "" {
		return fmt.Errorf("security.admin_email and security.admin_password must be configured")
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	lg := logger.LoggerWrapper()

	_, orm, err := initDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	userRepo := userPostgres.NewUserRepository(orm)
	userService := user.NewService(userRepo, cfg.Security.BCryptCost, lg)

	admin, err := userService.SeedAdmin(cfg.Security.AdminEmail, cfg.Security.AdminPassword)
	if err != nil {
		if errors.Is(err, internal.ErrAdminExists) {
			lg.Info("admin account already exists, nothing to do", "email", cfg.Security.AdminEmail)
			os.Exit(0)
		}
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	lg.Info("admin account created", "id", admin.ID, "email", admin.Email)
	return nil
}
