package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/ssh"

	"github.com/CaioVieiraF/olt-access/types"
)

// Driver implements types.Driver and types.CLIExecutor over SSH. In
// interactive mode every command goes through one PTY session so
// configuration sub-modes persist; in channel mode each command runs on
// its own exec channel and reports the remote exit status.
type Driver struct {
	config        *types.EquipmentConfig
	logger        *zap.Logger
	sshClient     *ssh.Client
	expectSession *ExpectSession
}

// NewDriver creates a new CLI driver
func NewDriver(config *types.EquipmentConfig, logger *zap.Logger) (*Driver, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}

	if config.Address == "" {
		return nil, fmt.Errorf("address is required")
	}

	if config.Port == 0 {
		config.Port = 22
	}

	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	if config.ExecMode == "" {
		config.ExecMode = types.ExecModeInteractive
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Driver{
		config: config,
		logger: logger.With(zap.String("olt", config.Address)),
	}, nil
}

// Connect establishes an SSH connection
func (d *Driver) Connect(ctx context.Context, config *types.EquipmentConfig) error {
	if config != nil {
		d.config = config
	}

	// Some firmware only offers keyboard-interactive
	keyboardInteractive := ssh.KeyboardInteractive(func(user, instruction string, questions []string, echos []bool) ([]string, error) {
		answers := make([]string, len(questions))
		for i := range questions {
			answers[i] = d.config.Password
		}
		return answers, nil
	})

	sshConfig := &ssh.ClientConfig{
		User: d.config.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(d.config.Password),
			keyboardInteractive,
		},
		Timeout:         d.config.Timeout,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), //nolint:gosec // OLT host keys are not provisioned
	}

	target := net.JoinHostPort(d.config.Address, strconv.Itoa(d.config.Port))

	client, err := dial(ctx, target, sshConfig)
	if err != nil {
		return types.Wrap(types.KindConnection, "dial "+target, err)
	}
	d.sshClient = client
	d.logger.Debug("ssh connected", zap.String("target", target), zap.String("exec_mode", string(d.config.ExecMode)))

	if d.config.ExecMode == types.ExecModeChannel {
		return nil
	}

	expectSession, err := NewExpectSession(ExpectSessionConfig{
		SSHClient:    client,
		Timeout:      d.config.Timeout,
		DisablePager: true,
	})
	if err != nil {
		client.Close()
		d.sshClient = nil
		return types.Wrap(types.KindConnection, "open cli session", err)
	}

	d.expectSession = expectSession

	return nil
}

func dial(ctx context.Context, target string, cfg *ssh.ClientConfig) (*ssh.Client, error) {
	dialer := net.Dialer{Timeout: cfg.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", target)
	if err != nil {
		return nil, err
	}
	c, chans, reqs, err := ssh.NewClientConn(conn, target, cfg)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return ssh.NewClient(c, chans, reqs), nil
}

// Disconnect closes the SSH connection
func (d *Driver) Disconnect(ctx context.Context) error {
	if d.expectSession != nil {
		_ = d.expectSession.Close()
		d.expectSession = nil
	}
	if d.sshClient != nil {
		err := d.sshClient.Close()
		d.sshClient = nil
		return err
	}
	return nil
}

// IsConnected returns true if connected
func (d *Driver) IsConnected() bool {
	if d.config.ExecMode == types.ExecModeChannel {
		return d.sshClient != nil
	}
	return d.sshClient != nil && d.expectSession != nil
}

func (d *Driver) execCommand(ctx context.Context, command string) (string, error) {
	if !d.IsConnected() {
		return "", types.Errorf(types.KindConnection, "exec", "not connected to device")
	}

	start := time.Now()
	var (
		output string
		err    error
	)
	if d.config.ExecMode == types.ExecModeChannel {
		output, err = d.execChannel(ctx, command)
	} else {
		output, err = d.expectSession.Execute(ctx, command)
		err = types.Wrap(types.KindChannel, "exec "+command, err)
	}

	d.logger.Debug("command executed",
		zap.String("command", command),
		zap.Duration("took", time.Since(start)),
		zap.Int("exit_status", types.ExitStatus(err)),
	)
	return output, err
}

// execChannel runs one command on a fresh session channel.
func (d *Driver) execChannel(ctx context.Context, command string) (string, error) {
	op := "exec " + command

	session, err := d.sshClient.NewSession()
	if err != nil {
		return "", types.Wrap(types.KindChannel, op, err)
	}
	defer session.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = session.Close()
		case <-done:
		}
	}()

	out, err := session.CombinedOutput(command)
	output := CleanOutput(string(out), command, DefaultPromptPattern)

	var exitErr *ssh.ExitError
	switch {
	case err == nil:
		return output, nil
	case errors.As(err, &exitErr):
		return output, types.Wrap(types.KindChannel, op, &types.ExitError{Command: command, Status: exitErr.ExitStatus()})
	case ctx.Err() != nil:
		return output, ctx.Err()
	default:
		return output, types.Wrap(types.KindChannel, op, err)
	}
}

// HealthCheck performs a health check
func (d *Driver) HealthCheck(ctx context.Context) error {
	if !d.IsConnected() {
		return types.Errorf(types.KindConnection, "health check", "not connected to device")
	}

	_, err := d.execCommand(ctx, "show clock")
	return err
}

// ExecCommand implements types.CLIExecutor - executes a single CLI command
func (d *Driver) ExecCommand(ctx context.Context, command string) (string, error) {
	return d.execCommand(ctx, command)
}

// ExecCommands implements types.CLIExecutor - executes multiple CLI commands sequentially
func (d *Driver) ExecCommands(ctx context.Context, commands []string) ([]string, error) {
	results := make([]string, 0, len(commands))
	for _, cmd := range commands {
		output, err := d.execCommand(ctx, cmd)
		if err != nil {
			return results, fmt.Errorf("command %q failed: %w", cmd, err)
		}
		results = append(results, output)
	}
	return results, nil
}

var (
	_ types.Driver      = (*Driver)(nil)
	_ types.CLIExecutor = (*Driver)(nil)
)
