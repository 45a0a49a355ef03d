package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handcraftedhaven/haven/internal/maintenance"
	"github.com/handcraftedhaven/haven/internal/server"
)

var (
	dryRun    bool
	oldPrefix string
)

var fixImageURLsCmd = &cobra.Command{
	Use:   "fix:image-urls",
	Short: "Rewrite stale product image URLs and clear dead links",
	Long: `Scans every product with an image URL. Links whose object is gone
from storage are cleared; links starting with --old-prefix are rewritten
onto the current disk's base URL. Use --dry-run to preview.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := server.Boot(); err != nil {
			return err
		}

		report, err := maintenance.FixImageURLs(oldPrefix, dryRun)
		if err != nil {
			return err
		}
		fmt.Printf("Scanned %d, rewritten %d, cleared %d", report.Scanned, report.Rewritten, report.Cleared)
		if dryRun {
			fmt.Print(" (dry run)")
		}
		fmt.Println()
		return nil
	},
}

var storageRenameCmd = &cobra.Command{
	Use:   "storage:rename",
	Short: "Normalise storage keys and relink products",
	Long: `Renames every object under products/ to a lowercase, dash-separated
key and updates the products still linking to the old key. Use --dry-run
to preview.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := server.Boot(); err != nil {
			return err
		}

		report, err := maintenance.NormalizeKeys(dryRun)
		if err != nil {
			return err
		}
		fmt.Printf("Scanned %d, renamed %d, relinked %d", report.Scanned, report.Renamed, report.Relinked)
		if dryRun {
			fmt.Print(" (dry run)")
		}
		fmt.Println()
		return nil
	},
}

var authDiagnoseCmd = &cobra.Command{
	Use:   "auth:diagnose",
	Short: "Check auth configuration and account data",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := server.Boot(); err != nil {
			return err
		}

		report, err := maintenance.Diagnose()
		if err != nil {
			return err
		}

		if report.Healthy() {
			fmt.Println("No problems found.")
			return nil
		}
		if report.DefaultJWTSecret {
			fmt.Println("WARNING: JWT_SECRET is still the shipped default. Rotate it.")
		}
		for _, email := range report.DuplicateEmails {
			fmt.Printf("Duplicate email (case-insensitive): %s\n", email)
		}
		for _, id := range report.BadPasswordHash {
			fmt.Printf("User %d has a non-bcrypt password hash and cannot log in.\n", id)
		}
		for id, role := range report.UnknownRoles {
			fmt.Printf("User %d has unknown role %q.\n", id, role)
		}
		return nil
	},
}

func init() {
	fixImageURLsCmd.Flags().BoolVar(&dryRun, "dry-run", false, "report without writing")
	fixImageURLsCmd.Flags().StringVar(&oldPrefix, "old-prefix", "", "URL prefix to rewrite")
	storageRenameCmd.Flags().BoolVar(&dryRun, "dry-run", false, "report without writing")

	root.AddCommand(fixImageURLsCmd, storageRenameCmd, authDiagnoseCmd)
}
