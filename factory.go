package oltaccess

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/CaioVieiraF/olt-access/drivers/cli"
	"github.com/CaioVieiraF/olt-access/drivers/mock"
	"github.com/CaioVieiraF/olt-access/drivers/snmp"
)

// CapabilityMatrix defines what each OLT family supports
var CapabilityMatrix = map[OltFamily]FamilyCapabilities{
	FamilyC3xx: {
		PrimaryProtocol: ProtocolCLI,
		SupportedProtocols: []Protocol{
			ProtocolCLI,
			ProtocolSNMP,
			ProtocolMock,
		},
		ConfigMethod:      ProtocolCLI,
		InventoryMethod:   ProtocolSNMP,
		SupportsInventory: true,
	},
	FamilyTitan: {
		// Titan boards use a different ONU table layout; inventory
		// is not mapped yet.
		PrimaryProtocol: ProtocolCLI,
		SupportedProtocols: []Protocol{
			ProtocolCLI,
			ProtocolMock,
		},
		ConfigMethod:      ProtocolCLI,
		SupportsInventory: false,
	},
}

// FamilyCapabilities defines what protocols and features an OLT family supports
type FamilyCapabilities struct {
	PrimaryProtocol    Protocol
	SupportedProtocols []Protocol
	ConfigMethod       Protocol
	InventoryMethod    Protocol
	SupportsInventory  bool
}

// Supports reports whether protocol is listed for the family.
func (c FamilyCapabilities) Supports(protocol Protocol) bool {
	for _, p := range c.SupportedProtocols {
		if p == protocol {
			return true
		}
	}
	return false
}

func capabilities(config *EquipmentConfig) (FamilyCapabilities, error) {
	if config == nil {
		return FamilyCapabilities{}, fmt.Errorf("config is required")
	}
	caps, ok := CapabilityMatrix[config.Model.Family()]
	if !ok {
		return FamilyCapabilities{}, fmt.Errorf("unsupported OLT model: %q", config.Model)
	}
	return caps, nil
}

// NewCLIExecutor creates the driver that pushes configuration to the OLT:
// the SSH driver, or the simulator when the protocol is mock.
func NewCLIExecutor(config *EquipmentConfig, logger *zap.Logger) (CLIDriver, error) {
	caps, err := capabilities(config)
	if err != nil {
		return nil, err
	}

	protocol := config.Protocol
	if protocol == "" || protocol == ProtocolSNMP {
		protocol = caps.ConfigMethod
	}
	if !caps.Supports(protocol) {
		return nil, fmt.Errorf("model %s does not support protocol %s", config.Model, protocol)
	}

	switch protocol {
	case ProtocolMock:
		d, err := mock.NewDriver(config)
		if err != nil {
			return nil, err
		}
		return d, nil
	case ProtocolCLI:
		d, err := cli.NewDriver(config, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s driver: %w", protocol, err)
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unsupported protocol: %s", protocol)
	}
}

// NewSNMPExecutor creates the driver used for ONU inventory. Families
// without inventory support are rejected.
func NewSNMPExecutor(config *EquipmentConfig) (SNMPDriver, error) {
	caps, err := capabilities(config)
	if err != nil {
		return nil, err
	}
	if !caps.SupportsInventory {
		return nil, fmt.Errorf("model %s does not support SNMP inventory", config.Model)
	}

	if config.Protocol == ProtocolMock {
		d, err := mock.NewDriver(config)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
	d, err := snmp.NewDriver(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s driver: %w", caps.InventoryMethod, err)
	}
	return d, nil
}

// GetFamilyCapabilities returns the capabilities for the family of model
func GetFamilyCapabilities(model OltModel) (FamilyCapabilities, bool) {
	caps, ok := CapabilityMatrix[model.Family()]
	return caps, ok
}
