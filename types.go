// Package oltaccess builds the drivers that talk to ZTE GPON OLTs.
package oltaccess

// Re-export types from the types sub-package so callers only need one import.

import (
	"github.com/CaioVieiraF/olt-access/types"
)

// Type aliases
type (
	Protocol        = types.Protocol
	OltModel        = types.OltModel
	OltFamily       = types.OltFamily
	EquipmentConfig = types.EquipmentConfig
	Driver          = types.Driver
	CLIExecutor     = types.CLIExecutor
	SNMPExecutor    = types.SNMPExecutor
)

// CLIDriver is a connectable driver that runs CLI commands
type CLIDriver interface {
	Driver
	CLIExecutor
}

// SNMPDriver is a connectable driver that answers SNMP queries
type SNMPDriver interface {
	Driver
	SNMPExecutor
}

// Re-export constants
const (
	ProtocolCLI  = types.ProtocolCLI
	ProtocolSNMP = types.ProtocolSNMP
	ProtocolMock = types.ProtocolMock

	FamilyC3xx  = types.FamilyC3xx
	FamilyTitan = types.FamilyTitan
)
