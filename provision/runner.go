// Package provision pushes generated scripts to an OLT one command at a
// time and reports the outcome of each.
package provision

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CaioVieiraF/olt-access/command"
	"github.com/CaioVieiraF/olt-access/types"
	"github.com/CaioVieiraF/olt-access/vendors/zte"
)

// Report is the outcome of one push run.
type Report struct {
	RunID     string                `json:"run_id"`
	Equipment string                `json:"equipment"`
	Started   time.Time             `json:"started"`
	Results   []types.CommandResult `json:"results"`
	Succeeded int                   `json:"succeeded"`
	Failed    int                   `json:"failed"`
}

// OK reports whether every command succeeded.
func (r *Report) OK() bool {
	return r.Failed == 0
}

// Runner sends commands strictly in order over one executor.
type Runner struct {
	exec      types.CLIExecutor
	equipment string
	logger    *zap.Logger

	// Metrics, when set, counts commands and runs.
	Metrics *Metrics

	// Echo, when set, receives each command followed by its output.
	Echo io.Writer
}

// NewRunner creates a runner for the named equipment.
func NewRunner(exec types.CLIExecutor, equipment string, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		exec:      exec,
		equipment: equipment,
		logger:    logger,
	}
}

// Run executes commands in order. A failed command is logged and the run
// continues; only cancellation of ctx stops it early, in which case the
// partial report is returned with the context error.
func (r *Runner) Run(ctx context.Context, commands []command.Command) (*Report, error) {
	report := &Report{
		RunID:     uuid.New().String(),
		Equipment: r.equipment,
		Started:   time.Now(),
		Results:   make([]types.CommandResult, 0, len(commands)),
	}
	logger := r.logger.With(zap.String("run_id", report.RunID), zap.String("equipment", r.equipment))
	logger.Info("push started", zap.Int("commands", len(commands)))

	defer func() {
		r.Metrics.observeRun(r.equipment, report)
	}()

	for i, cmd := range commands {
		if err := ctx.Err(); err != nil {
			logger.Warn("push aborted", zap.Int("remaining", len(commands)-i), zap.Error(err))
			return report, fmt.Errorf("push aborted after %d commands: %w", i, err)
		}

		result := r.execute(ctx, cmd)
		report.Results = append(report.Results, result)
		r.Metrics.observeCommand(r.equipment, result)
		r.echo(result)

		fields := []zap.Field{
			zap.Int("seq", i+1),
			zap.String("command", result.Command),
			zap.Int("exit_status", result.ExitStatus),
			zap.Duration("duration", result.Duration),
		}
		if result.OK() {
			report.Succeeded++
			logger.Debug("command ok", fields...)
			continue
		}
		report.Failed++
		logger.Warn("command failed", append(fields, zap.String("error", result.Error))...)

		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("push aborted after %d commands: %w", i+1, err)
		}
	}

	logger.Info("push finished", zap.Int("succeeded", report.Succeeded), zap.Int("failed", report.Failed))
	return report, nil
}

func (r *Runner) execute(ctx context.Context, cmd command.Command) types.CommandResult {
	start := time.Now()
	output, err := r.exec.ExecCommand(ctx, cmd.String())
	result := types.CommandResult{
		Command:    cmd.String(),
		Output:     output,
		ExitStatus: types.ExitStatus(err),
		Duration:   time.Since(start),
	}

	if err != nil {
		result.Error = err.Error()
		return result
	}
	if cliErr := zte.DetectCLIError(result.Command, output); cliErr != nil {
		result.ExitStatus = 1
		result.Error = cliErr.Error()
	}
	return result
}

func (r *Runner) echo(result types.CommandResult) {
	if r.Echo == nil {
		return
	}
	fmt.Fprintf(r.Echo, "> %s\n", result.Command)
	if result.Output != "" {
		fmt.Fprintln(r.Echo, result.Output)
	}
	if !result.OK() {
		fmt.Fprintf(r.Echo, "[exit %d] %s\n", result.ExitStatus, result.Error)
	}
}
