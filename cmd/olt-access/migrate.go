package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/CaioVieiraF/olt-access/config"
)

func newMigrateCmd(a *app) *cobra.Command {
	var oldPath, basePath, output string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Rebuild the ONUs of an old dump on top of a base configuration",
		Long: `Migrate reads the ONUs registered in an old configuration dump, appends the
base configuration (when given), then the regenerated configuration of every ONU.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			old, err := readConfig(oldPath)
			if err != nil {
				return err
			}
			var base *config.Config
			if basePath != "" {
				if base, err = readConfig(basePath); err != nil {
					return err
				}
			}

			out, diags, err := a.generator().Migrate(old, base)
			if err != nil {
				return err
			}
			logDiagnostics(a.log, diags)
			a.log.Info("migrated configuration", zap.Int("blocks", out.Len()), zap.Int("diagnostics", len(diags)))

			return writeOutput(cmd, output, writeConfig(out))
		},
	}

	cmd.Flags().StringVar(&oldPath, "old", "", "old configuration dump")
	cmd.Flags().StringVar(&basePath, "base", "", "base configuration to start from")
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write the script to (stdout when empty)")
	_ = cmd.MarkFlagRequired("old")
	return cmd
}
