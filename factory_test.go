package oltaccess

import (
	"testing"

	"github.com/CaioVieiraF/olt-access/drivers/cli"
	"github.com/CaioVieiraF/olt-access/drivers/mock"
	"github.com/CaioVieiraF/olt-access/drivers/snmp"
	"github.com/CaioVieiraF/olt-access/types"
)

func TestNewCLIExecutor(t *testing.T) {
	tests := []struct {
		name     string
		config   *EquipmentConfig
		wantMock bool
		wantErr  bool
	}{
		{
			name:   "cli on c320",
			config: &EquipmentConfig{Name: "a", Model: types.ModelC320, Address: "10.0.0.1", Protocol: ProtocolCLI},
		},
		{
			name:   "default protocol",
			config: &EquipmentConfig{Name: "a", Model: types.ModelC600, Address: "10.0.0.1"},
		},
		{
			name:   "snmp falls back to config method",
			config: &EquipmentConfig{Name: "a", Model: types.ModelC300, Address: "10.0.0.1", Protocol: ProtocolSNMP},
		},
		{
			name:     "mock",
			config:   &EquipmentConfig{Name: "a", Model: types.ModelC650, Protocol: ProtocolMock},
			wantMock: true,
		},
		{
			name:    "unknown model",
			config:  &EquipmentConfig{Name: "a", Model: "MA5800", Address: "10.0.0.1"},
			wantErr: true,
		},
		{
			name:    "cli without address",
			config:  &EquipmentConfig{Name: "a", Model: types.ModelC320, Protocol: ProtocolCLI},
			wantErr: true,
		},
		{
			name:    "nil config",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewCLIExecutor(tt.config, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewCLIExecutor() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			switch d.(type) {
			case *mock.Driver:
				if !tt.wantMock {
					t.Errorf("got mock driver, want cli")
				}
			case *cli.Driver:
				if tt.wantMock {
					t.Errorf("got cli driver, want mock")
				}
			default:
				t.Errorf("unexpected driver %T", d)
			}
		})
	}
}

func TestNewSNMPExecutor(t *testing.T) {
	d, err := NewSNMPExecutor(&EquipmentConfig{Name: "a", Model: types.ModelC320, Address: "10.0.0.1", Protocol: ProtocolCLI})
	if err != nil {
		t.Fatalf("NewSNMPExecutor() error = %v", err)
	}
	if _, ok := d.(*snmp.Driver); !ok {
		t.Errorf("got %T, want *snmp.Driver", d)
	}

	d, err = NewSNMPExecutor(&EquipmentConfig{Name: "a", Model: types.ModelC300, Protocol: ProtocolMock})
	if err != nil {
		t.Fatalf("NewSNMPExecutor(mock) error = %v", err)
	}
	if _, ok := d.(*mock.Driver); !ok {
		t.Errorf("got %T, want *mock.Driver", d)
	}

	if _, err := NewSNMPExecutor(&EquipmentConfig{Name: "a", Model: types.ModelC600, Address: "10.0.0.1"}); err == nil {
		t.Error("expected titan inventory to be rejected")
	}
}

func TestCapabilityMatrix(t *testing.T) {
	for _, model := range []OltModel{types.ModelC300, types.ModelC320, types.ModelC350, types.ModelC600, types.ModelC610, types.ModelC620, types.ModelC650} {
		caps, ok := GetFamilyCapabilities(model)
		if !ok {
			t.Fatalf("no capabilities for %s", model)
		}
		if !caps.Supports(ProtocolCLI) || !caps.Supports(ProtocolMock) {
			t.Errorf("%s must support cli and mock", model)
		}
		if caps.SupportsInventory != (model.Family() == FamilyC3xx) {
			t.Errorf("%s inventory support = %v", model, caps.SupportsInventory)
		}
	}
}
