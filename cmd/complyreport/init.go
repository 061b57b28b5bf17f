package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/complyreport/internal/config"
)

//go:embed templates/complyreport.json
var configTemplate embed.FS

// templatePath is the embedded configuration template.
const templatePath = "templates/complyreport.json"

// defaultConfigPath is where report looks for a configuration when
// --json-config is not given.
func defaultConfigPath() string {
	return filepath.Join(config.XDGConfigDir(), config.DefaultConfigFile)
}

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new complyreport configuration file",
		Long: `Initialize writes a JSON configuration template.

By default the file is created in the XDG config directory, where the report
command finds it without --json-config. The template shows:
- A reporter map writing the console report to standard output
- JSON and JUnit reporters writing files
- Colour and logging settings

Examples:
  # Create the default configuration file
  complyreport init

  # Create a configuration file at a specific path
  complyreport init -o ./complyreport.json

  # Force overwrite existing file
  complyreport init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", defaultConfigPath(),
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(out, "\nEdit this file to configure:")
	fmt.Fprintln(out, "  - Which reporters run and where they write")
	fmt.Fprintln(out, "  - Console colours")
	fmt.Fprintln(out, "  - Log level, format and location")

	return nil
}
