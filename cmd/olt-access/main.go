package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/CaioVieiraF/olt-access/config"
	"github.com/CaioVieiraF/olt-access/script"
	"github.com/CaioVieiraF/olt-access/settings"
	"github.com/CaioVieiraF/olt-access/types"
)

// app carries what every subcommand needs once the root has run.
type app struct {
	debug        bool
	settingsPath string

	settings *settings.Settings
	log      *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "olt-access",
		Short: "Generate, migrate and push ZTE GPON ONU provisioning scripts",
		Long: `olt-access compiles ONU provisioning intent into ZTE GPON CLI scripts
and recovers that intent from exported configuration dumps.

Examples:
  olt-access migrate --old startrun.txt --base base.txt -o new.txt
  olt-access create --onu-param onus.csv --vlan 100 --interface gpon_olt-1/1/3 -o script.txt
  olt-access show --from startrun.txt --field xpon
  olt-access --config olt.yaml push --script script.txt`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")
	root.PersistentFlags().StringVarP(&a.settingsPath, "config", "c", "", "settings file (YAML)")

	root.AddCommand(
		newMigrateCmd(a),
		newCreateCmd(a),
		newShowCmd(a),
		newPushCmd(a),
		newInventoryCmd(a),
	)
	return root
}

func (a *app) setup() error {
	if a.settingsPath == "" {
		s := settings.DefaultSettings()
		a.settings = &s
	} else {
		s, err := settings.Load(a.settingsPath)
		if err != nil {
			return err
		}
		a.settings = s
	}

	log, err := newLogger(a.settings.Log, a.debug)
	if err != nil {
		return err
	}
	a.log = log
	return nil
}

func newLogger(cfg settings.Log, debug bool) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}
	if debug {
		level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	if cfg.Format == "json" {
		encoderConfig = zap.NewProductionEncoderConfig()
	}

	zapConfig := zap.Config{
		Level:            level,
		Development:      false,
		Encoding:         cfg.Format,
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	return zapConfig.Build()
}

func (a *app) generator() script.Generator {
	return script.Generator{TcontProfile: a.settings.Generator.TcontProfile}
}

// readConfig parses a dump or script file.
func readConfig(path string) (*config.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, types.Wrap(types.KindIO, "open "+path, err)
	}
	defer f.Close()
	return config.Parse(f)
}

// writeOutput runs write against the file at path, or stdout for "" and "-".
func writeOutput(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "" || path == "-" {
		return write(cmd.OutOrStdout())
	}

	f, err := os.Create(path)
	if err != nil {
		return types.Wrap(types.KindIO, "create "+path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return types.Wrap(types.KindIO, "close "+path, f.Close())
}

func writeConfig(c *config.Config) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := c.WriteTo(w)
		return types.Wrap(types.KindIO, "write config", err)
	}
}

func logDiagnostics(log *zap.Logger, diags []config.Diagnostic) {
	for _, d := range diags {
		log.Warn("skipped dump line", zap.String("line", d.Line), zap.String("reason", d.Message))
	}
}
