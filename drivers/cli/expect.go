package cli

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	expect "github.com/google/goexpect"
	"golang.org/x/crypto/ssh"
)

// DefaultPromptPattern matches prompts like "ZXAN#", "ZXAN(config)#" or
// "C600(config-if-gpon_olt-1/1/1)#".
var DefaultPromptPattern = regexp.MustCompile(`(?m)^[\w\-.]+(\([\w\-./:]+\))?[#>]\s*$`)

// PagerDisableCommand turns paging off for the rest of the session on
// both C3xx and Titan firmware.
const PagerDisableCommand = "terminal length 0"

// ExpectSession wraps google/goexpect for an interactive OLT CLI
type ExpectSession struct {
	expecter *expect.GExpect
	promptRE *regexp.Regexp
	timeout  time.Duration
}

// ExpectSessionConfig holds configuration for creating an expect session
type ExpectSessionConfig struct {
	SSHClient    *ssh.Client
	Timeout      time.Duration
	CustomPrompt *regexp.Regexp
	DisablePager bool
}

// NewExpectSession creates a new interactive CLI session using expect
func NewExpectSession(cfg ExpectSessionConfig) (*ExpectSession, error) {
	if cfg.SSHClient == nil {
		return nil, fmt.Errorf("SSH client is required")
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	promptRE := cfg.CustomPrompt
	if promptRE == nil {
		promptRE = DefaultPromptPattern
	}

	exp, _, err := expect.SpawnSSH(cfg.SSHClient, cfg.Timeout,
		expect.Verbose(false),
		expect.CheckDuration(500*time.Millisecond),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to spawn SSH expect session: %w", err)
	}

	session := &ExpectSession{
		expecter: exp,
		promptRE: promptRE,
		timeout:  cfg.Timeout,
	}

	if _, _, err := exp.Expect(promptRE, cfg.Timeout); err != nil {
		exp.Close()
		return nil, fmt.Errorf("failed to detect initial prompt: %w", err)
	}

	// Non-fatal: long show output is only truncated by the pager
	if cfg.DisablePager {
		_ = session.disablePager()
	}

	return session, nil
}

func (s *ExpectSession) disablePager() error {
	_, err := s.Execute(context.Background(), PagerDisableCommand)
	return err
}

// Execute sends a command and waits for the prompt, returning the output
func (s *ExpectSession) Execute(ctx context.Context, command string) (string, error) {
	if s.expecter == nil {
		return "", fmt.Errorf("expect session not initialized")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	timeout := s.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}

	if err := s.expecter.Send(command + "\n"); err != nil {
		return "", fmt.Errorf("failed to send command: %w", err)
	}

	output, _, err := s.expecter.Expect(s.promptRE, timeout)
	if err != nil {
		return output, fmt.Errorf("timeout waiting for prompt after command %q: %w", command, err)
	}

	return CleanOutput(output, command, s.promptRE), nil
}

// CleanOutput removes terminal escapes, the command echo and prompt lines
// from raw session output.
func CleanOutput(output, command string, promptRE *regexp.Regexp) string {
	lines := strings.Split(StripANSI(strings.ReplaceAll(output, "\r", "")), "\n")
	var cleaned []string

	for i, line := range lines {
		if i == 0 && strings.Contains(line, command) {
			continue
		}
		if promptRE.MatchString(strings.TrimSpace(line)) {
			continue
		}
		cleaned = append(cleaned, line)
	}

	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}

// Close closes the expect session
func (s *ExpectSession) Close() error {
	if s.expecter != nil {
		return s.expecter.Close()
	}
	return nil
}
