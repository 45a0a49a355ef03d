// Command haven is the marketplace API server and its operational tooling.
//
//	haven serve             start the HTTP API
//	haven migrate           run pending migrations
//	haven seed              load demo data
//	haven route:list        print the route table
//	haven fix:image-urls    repair product image links
//	haven storage:rename    normalise storage object keys
//	haven auth:diagnose     check auth configuration and account data
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Register migrations and seeders.
	_ "github.com/handcraftedhaven/haven/database/migrations"
	_ "github.com/handcraftedhaven/haven/database/seeders"
)

var root = &cobra.Command{
	Use:          "haven",
	Short:        "Handcrafted Haven marketplace API",
	SilenceUsage: true,
}

func main() {
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
