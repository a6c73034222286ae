package commands

import (
	"github.com/spf13/cobra"

	"github.com/txforge/txforge/cmd/txforge/handlers"
)

// Configs returns the parent command for managing the local config library.
func Configs() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "configs",
		Short: "Manage saved form configurations",
	}

	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "Config library path (default ~/.txforge/library)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved configurations",
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.ConfigsList(dbPath)
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return handlers.ConfigsShow(dbPath, args[0])
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return handlers.ConfigsDelete(dbPath, args[0])
		},
	}

	cmd.AddCommand(list)
	cmd.AddCommand(show)
	cmd.AddCommand(del)

	return cmd
}
