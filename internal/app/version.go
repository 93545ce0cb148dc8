package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "dev"

// SetVersion sets the version string shown by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the optibridge version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println("optibridge", version)
		},
	}
}
