package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	identityapp "github.com/storelaunch/backend/internal/application/identity"
	importapp "github.com/storelaunch/backend/internal/application/import"
	pricingapp "github.com/storelaunch/backend/internal/application/pricing"
	"github.com/storelaunch/backend/internal/infrastructure/logger"
	"github.com/storelaunch/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

// env is what every subcommand needs
type env struct {
	db         *persistence.Database
	log        *zap.Logger
	bcryptCost int
}

func (e *env) close() {
	if err := e.db.Close(); err != nil {
		e.log.Warn("Error closing database", zap.Error(err))
	}
	_ = logger.Sync(e.log)
}

type opener func() (*env, error)

func newRootCmd(open opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "storectl",
		Short:        "Operational tasks for the store launch backend",
		SilenceUsage: true,
	}
	cmd.AddCommand(
		createAdminCmd(open),
		seedCountriesCmd(open),
		seedIngredientsCmd(open),
		purgeResetTokensCmd(open),
	)
	return cmd
}

// withEnv opens the environment for one command run and closes it after
func withEnv(open opener, fn func(ctx context.Context, e *env) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		e, err := open()
		if err != nil {
			return err
		}
		defer e.close()
		return fn(cmd.Context(), e)
	}
}

func createAdminCmd(open opener) *cobra.Command {
	var email, password, name string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an ADMIN user, or promote and re-key an existing one",
		RunE: withEnv(open, func(ctx context.Context, e *env) error {
			users := identityapp.NewUserService(persistence.NewGormUserRepository(e.db.DB), e.bcryptCost, e.log)
			info, created, err := users.EnsureAdmin(ctx, identityapp.EnsureAdminInput{
				Email:    email,
				Password: password,
				Name:     name,
			})
			if err != nil {
				return err
			}
			verb := "Updated"
			if created {
				verb = "Created"
			}
			fmt.Printf("%s admin %s (%s)\n", verb, info.Email, info.ID)
			return nil
		}),
	}

	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func seedCountriesCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "seed-countries",
		Short: "Upsert the default countries",
		RunE: withEnv(open, func(ctx context.Context, e *env) error {
			n, err := pricingapp.NewCountryService(persistence.NewGormCountryRepository(e.db.DB), e.log).Seed(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Seeded %d countries\n", n)
			return nil
		}),
	}
}

func seedIngredientsCmd(open opener) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:     "seed-ingredients",
		Aliases: []string{"import-ingredients"},
		Short:   "Import ingredient masters from the master CSV",
		RunE: withEnv(open, func(ctx context.Context, e *env) error {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			importer := importapp.NewIngredientImportService(persistence.NewGormIngredientRepository(e.db.DB), e.log)
			res, err := importer.Import(ctx, f)
			if err != nil {
				return err
			}
			fmt.Printf("Created %d, updated %d ingredients\n", res.Created, res.Updated)
			for _, rowErr := range res.Errors {
				fmt.Printf("  %s\n", rowErr.Error())
			}
			if res.TotalErrors > len(res.Errors) {
				fmt.Printf("  ... %d more errors\n", res.TotalErrors-len(res.Errors))
			}
			return nil
		}),
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "path to the ingredients-master CSV")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func purgeResetTokensCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "purge-reset-tokens",
		Short: "Delete expired password reset tokens",
		RunE: withEnv(open, func(ctx context.Context, e *env) error {
			n, err := persistence.NewGormResetTokenRepository(e.db.DB).DeleteExpired(ctx, time.Now())
			if err != nil {
				return err
			}
			fmt.Printf("Purged %d expired reset tokens\n", n)
			return nil
		}),
	}
}
