package commands

import (
	"github.com/spf13/cobra"

	"github.com/txforge/txforge/cmd/txforge/handlers"
)

// Export returns the command for exporting a configuration to a project.
//
// Flags:
//
//	--config, -c: Path to the form configuration (default "txforge.yaml")
//	--output, -o: Output directory or .zip path (default "./<project-name>")
//	--zip: Write a zip archive instead of a directory
//	--plain: Disable the progress TUI
func Export() *cobra.Command {
	var (
		configPath string
		fromID     string
		outputPath string
		asZip      bool
		plain      bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a configuration as a runnable React project",
		Long: `Export a form configuration as a runnable React project.

Reads the configuration produced by 'txforge init', generates a
complete React + Vite project wired to the configured contract and
network, and writes it to a directory or zip archive. The generated
project runs with:

  npm install
  npm run dev`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Export(cmd.Context(), configPath, fromID, outputPath, asZip, plain)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "txforge.yaml", "Form configuration path")
	cmd.Flags().StringVar(&fromID, "from", "", "Export a saved configuration from the library instead of a file")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output directory or .zip path (default ./<project-name>)")
	cmd.Flags().BoolVar(&asZip, "zip", false, "Write a zip archive instead of a directory")
	cmd.Flags().BoolVar(&plain, "plain", false, "Disable the progress TUI")

	return cmd
}
