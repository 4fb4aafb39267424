// cmd/tools/mission-cli/admin.go
package main

import (
	"context"
	"fmt"
	"time"

	"mission-analyzer/internal/api"
	"mission-analyzer/internal/common/config"
	"mission-analyzer/internal/common/database"
	"mission-analyzer/internal/common/validation"
	"mission-analyzer/internal/models"
	"mission-analyzer/internal/store"
	"mission-analyzer/pkg/registry"

	"github.com/spf13/cobra"
)

func newRegistryCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect and edit the activity registry",
	}
	cmd.PersistentFlags().StringVar(&path, "path", defaultRegistryPath, "path to the registry file")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the registry for missing fields, duplicates and bad schemas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := registry.LoadRegistry(path)
			if err != nil {
				return err
			}
			if err := reg.Validate(); err != nil {
				return fmt.Errorf("registry validation failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registry is valid (%d activities)\n", len(reg.Activities))
			return nil
		},
	}

	var id, field, value string
	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Set one field of an activity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := registry.LoadRegistry(path)
			if err != nil {
				return err
			}
			if err := reg.Update(id, field, value); err != nil {
				return err
			}
			if err := registry.Save(reg, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s.%s = %s\n", id, field, value)
			return nil
		},
	}
	updateCmd.Flags().StringVar(&id, "id", "", "activity ID")
	updateCmd.Flags().StringVar(&field, "field", "", "field to update (status, version, displayName, description, timeout, retries)")
	updateCmd.Flags().StringVar(&value, "value", "", "new value")
	_ = updateCmd.MarkFlagRequired("id")
	_ = updateCmd.MarkFlagRequired("field")

	var a registry.Activity
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new activity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := registry.LoadRegistry(path)
			if err != nil {
				return err
			}
			if a.TaskType == "" {
				a.TaskType = a.ID
			}
			if err := reg.Add(a); err != nil {
				return err
			}
			if err := reg.Validate(); err != nil {
				return err
			}
			if err := registry.Save(reg, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added activity %s\n", a.ID)
			return nil
		},
	}
	f := addCmd.Flags()
	f.StringVar(&a.ID, "id", "", "activity ID")
	f.StringVar(&a.DisplayName, "display-name", "", "display name")
	f.StringVar(&a.Description, "description", "", "description")
	f.StringVar(&a.Category, "category", "", "category (analysis, access, workshop, communication)")
	f.StringVar(&a.TaskType, "task-type", "", "Zeebe task type (defaults to the ID)")
	f.StringVar(&a.Version, "version", "1.0.0", "version")
	f.StringVar(&a.ImplementationStatus, "status", "planned", "implementation status")
	f.StringVar(&a.Timeout, "timeout", "10s", "job timeout")
	_ = addCmd.MarkFlagRequired("id")
	_ = addCmd.MarkFlagRequired("display-name")
	_ = addCmd.MarkFlagRequired("category")

	cmd.AddCommand(validateCmd, updateCmd, addCmd)
	return cmd
}

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage dashboard users",
	}

	var u models.User
	var password string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a user who can sign in to the dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !validation.IsValidEmail(u.Email) {
				return fmt.Errorf("a valid --email is required")
			}
			if len(password) < 8 {
				return fmt.Errorf("--password must be at least 8 characters")
			}
			hash, err := api.HashPassword(password)
			if err != nil {
				return err
			}
			u.Email = validation.NormalizeEmail(u.Email)
			u.HashedPassword = hash

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			pg, err := database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			defer pg.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			if err := store.NewUserRepository(pg.DB).Create(ctx, &u); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (%s)\n", u.Email, u.ID)
			return nil
		},
	}
	f := addCmd.Flags()
	f.StringVar(&u.Email, "email", "", "login email")
	f.StringVar(&password, "password", "", "initial password")
	f.StringVar(&u.FirstName, "first-name", "", "first name")
	f.StringVar(&u.LastName, "last-name", "", "last name")
	f.StringVar(&u.Company, "company", "", "company")

	cmd.AddCommand(addCmd)
	return cmd
}
