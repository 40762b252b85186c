package types

import (
	"context"
	"strings"
	"time"
)

// Protocol is the transport used to reach the OLT
type Protocol string

const (
	ProtocolCLI  Protocol = "cli"
	ProtocolSNMP Protocol = "snmp"
	ProtocolMock Protocol = "mock" // simulated OLT, nothing leaves the process
)

// OltModel is the hardware model of a ZTE OLT.
type OltModel string

const (
	ModelC300 OltModel = "C300"
	ModelC320 OltModel = "C320"
	ModelC350 OltModel = "C350"
	ModelC600 OltModel = "C600"
	ModelC610 OltModel = "C610"
	ModelC620 OltModel = "C620"
	ModelC650 OltModel = "C650"
)

// OltFamily groups OLT models that share a CLI dialect and MIB tree.
type OltFamily string

const (
	FamilyC3xx  OltFamily = "c3xx"
	FamilyTitan OltFamily = "titan"
)

var modelFamilies = map[OltModel]OltFamily{
	ModelC300: FamilyC3xx,
	ModelC320: FamilyC3xx,
	ModelC350: FamilyC3xx,
	ModelC600: FamilyTitan,
	ModelC610: FamilyTitan,
	ModelC620: FamilyTitan,
	ModelC650: FamilyTitan,
}

// ParseOltModel resolves a model name case-insensitively ("c320", "ZXA10 C320").
func ParseOltModel(s string) (OltModel, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "ZXA10 ")
	m := OltModel(s)
	_, ok := modelFamilies[m]
	return m, ok
}

// Family returns the family of the model, or "" for an unknown model.
func (m OltModel) Family() OltFamily {
	return modelFamilies[m]
}

// ExecMode selects how CLI commands are delivered over SSH.
type ExecMode string

const (
	// ExecModeInteractive keeps one PTY session open so configuration
	// sub-modes persist between commands.
	ExecModeInteractive ExecMode = "interactive"

	// ExecModeChannel opens one exec channel per command and reports
	// the remote exit status.
	ExecModeChannel ExecMode = "channel"
)

// EquipmentConfig contains configuration for an OLT instance
type EquipmentConfig struct {
	// Name is a unique identifier for this equipment
	Name string

	// Model is the OLT hardware model
	Model OltModel

	// Address is the management IP/hostname
	Address string

	// Port is the management port (if not default)
	Port int

	// Protocol is the management protocol
	Protocol Protocol

	// ExecMode is the CLI delivery mode (interactive when empty)
	ExecMode ExecMode

	// Username for authentication
	Username string

	// Password for authentication
	Password string

	// Timeout for operations
	Timeout time.Duration

	// Metadata contains protocol-specific configuration
	// (snmp_community, snmp_version, snmp_retries)
	Metadata map[string]string
}

// Driver is the connection lifecycle shared by every driver
type Driver interface {
	// Connect establishes a connection to the equipment
	Connect(ctx context.Context, config *EquipmentConfig) error

	// Disconnect closes the connection
	Disconnect(ctx context.Context) error

	// IsConnected returns true if connected
	IsConnected() bool

	// HealthCheck performs a health check on the connection
	HealthCheck(ctx context.Context) error
}

// CLIExecutor is implemented by drivers that can run CLI commands
type CLIExecutor interface {
	// ExecCommand executes a CLI command and returns the output
	ExecCommand(ctx context.Context, command string) (string, error)

	// ExecCommands executes multiple CLI commands sequentially
	ExecCommands(ctx context.Context, commands []string) ([]string, error)
}

// SNMPExecutor is implemented by drivers that support SNMP queries
type SNMPExecutor interface {
	// GetSNMP retrieves a single SNMP value by OID
	GetSNMP(ctx context.Context, oid string) (interface{}, error)

	// WalkSNMP performs an SNMP walk on an OID subtree.
	// Result keys are the OID suffix below the walked root.
	WalkSNMP(ctx context.Context, oid string) (map[string]interface{}, error)
}

// CommandResult is the outcome of one command sent to the equipment.
type CommandResult struct {
	// Command is the line that was sent
	Command string `json:"command"`

	// Output is the captured text output
	Output string `json:"output,omitempty"`

	// ExitStatus is 0 on success, the remote exit code when known,
	// 1 when the CLI rejected the command, -1 when no status exists
	ExitStatus int `json:"exit_status"`

	// Error is the failure description, empty on success
	Error string `json:"error,omitempty"`

	// Duration is how long the command took
	Duration time.Duration `json:"duration"`
}

// OK reports whether the command succeeded.
func (r CommandResult) OK() bool {
	return r.ExitStatus == 0 && r.Error == ""
}
