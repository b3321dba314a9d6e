package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "adminctl",
		Short:         "Administrative tasks for the job board service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newCreateAdminCmd())
	root.AddCommand(newResetPasswordCmd())
	root.AddCommand(newSeedCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
