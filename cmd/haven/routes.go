package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/handcraftedhaven/haven/internal/server"
)

var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "Print every mounted route",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := server.NewRouter()

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		for _, route := range r.Routes() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", route.Method, route.Path, route.Name)
		}
		return w.Flush()
	},
}

func init() {
	root.AddCommand(routeListCmd)
}
