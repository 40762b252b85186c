package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	oltaccess "github.com/CaioVieiraF/olt-access"
	"github.com/CaioVieiraF/olt-access/command"
	"github.com/CaioVieiraF/olt-access/provision"
)

func newPushCmd(a *app) *cobra.Command {
	var (
		scriptPath      string
		dryRun          bool
		quiet           bool
		metricsTextfile string
	)

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Send a script to the OLT, one command at a time",
		Long: `Push sends every line of a script (flat or nested dump) to the OLT configured
in the settings file. A rejected command is reported and the push continues;
the exit status is non-zero when any command failed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := readConfig(scriptPath)
			if err != nil {
				return err
			}
			cmds := wrapConfigure(c.Commands())

			if dryRun {
				for _, line := range cmds {
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}
				return nil
			}

			eq, err := a.settings.Equipment()
			if err != nil {
				return err
			}
			drv, err := oltaccess.NewCLIExecutor(eq, a.log)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := drv.Connect(ctx, eq); err != nil {
				return err
			}
			defer drv.Disconnect(ctx)

			runner := provision.NewRunner(drv, eq.Name, a.log)
			if !quiet {
				runner.Echo = cmd.OutOrStdout()
			}
			registry := prometheus.NewRegistry()
			if metricsTextfile != "" {
				runner.Metrics = provision.NewMetrics(registry)
			}

			report, runErr := runner.Run(ctx, cmds)
			if metricsTextfile != "" {
				if err := provision.WriteTextfile(metricsTextfile, registry); err != nil {
					a.log.Error("writing metrics textfile", zap.Error(err))
				}
			}
			if runErr != nil {
				return runErr
			}

			fmt.Fprintf(cmd.OutOrStdout(), "run %s: %d succeeded, %d failed\n", report.RunID, report.Succeeded, report.Failed)
			if !report.OK() {
				return fmt.Errorf("%d of %d commands failed", report.Failed, len(report.Results))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&scriptPath, "script", "", "script or dump to push")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the commands instead of sending them")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not echo commands and replies")
	cmd.Flags().StringVar(&metricsTextfile, "metrics-textfile", "", "write push metrics in textfile collector format")
	_ = cmd.MarkFlagRequired("script")
	return cmd
}

// wrapConfigure surrounds cmds with "configure terminal" and "end" unless
// the script already enters configuration mode itself.
func wrapConfigure(cmds []command.Command) []command.Command {
	conf := command.Configure()
	if len(cmds) > 0 && cmds[0] == conf.Enter() {
		return cmds
	}
	out := make([]command.Command, 0, len(cmds)+2)
	out = append(out, conf.Enter())
	out = append(out, cmds...)
	return append(out, conf.End())
}
