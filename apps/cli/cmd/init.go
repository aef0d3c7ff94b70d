package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sycl-conformance/ctskit/packages/core/config"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a ctskit project",
	Long: `Initialize a ctskit project in the current directory.

This creates:
  - .ctskit.config.json  - Configuration file
  - suite.yaml           - Starter run manifest

Examples:
  ctskit init
  ctskit init --force`,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite existing files")
}

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	configFile := filepath.Join(cwd, ".ctskit.config.json")
	manifestFile := filepath.Join(cwd, "suite.yaml")

	if !forceInit {
		for _, f := range []string{configFile, manifestFile} {
			if _, err := os.Stat(f); err == nil {
				return fmt.Errorf("file already exists: %s (use --force to overwrite)", f)
			}
		}
	}

	cfg := config.DefaultConfig()
	cfg.DefaultManifest = "suite.yaml"
	cfg.HistoryDB = "ctskit.db"
	if err := cfg.SaveConfig(configFile); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)

	manifestContent := map[string]any{
		"suite":    "default",
		"interop":  false,
		"parallel": false,
		"include": map[string]any{
			"tags": []string{"selfcheck"},
		},
	}

	manifestYAML, _ := yaml.Marshal(manifestContent)
	if err := os.WriteFile(manifestFile, manifestYAML, 0644); err != nil {
		return fmt.Errorf("failed to create manifest file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", manifestFile)

	fmt.Fprintf(cmd.OutOrStdout(), "\nctskit project initialized!\n")
	fmt.Fprintf(cmd.OutOrStdout(), "Run 'ctskit run suite.yaml' to execute the built-in checks.\n")

	return nil
}
