package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// presetsCmd lists the preset problems in the defaults file.
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List preset problems from the defaults file",
	Run: func(cmd *cobra.Command, args []string) {
		if err := listPresets(cmd.OutOrStdout(), defaultsFilePath); err != nil {
			logrus.Fatalf("Listing presets failed: %v", err)
		}
	},
}

// listPresets writes one line per preset: name, arm means, trials and description.
func listPresets(w io.Writer, path string) error {
	cfg, err := loadDefaultsConfig(path)
	if err != nil {
		return err
	}
	for _, name := range cfg.ProblemNames() {
		p := cfg.Problems[name]
		if _, err := fmt.Fprintf(w, "%-18s means=%v trials=%d  %s\n", name, p.TrueMeans, p.Trials, p.Description); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	presetsCmd.Flags().StringVar(&defaultsFilePath, "defaults", "defaults.yaml", "Path to the defaults file with preset problems")
}
