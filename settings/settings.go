// Package settings loads the olt-access configuration file.
package settings

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/CaioVieiraF/olt-access/drivers/snmp"
	"github.com/CaioVieiraF/olt-access/types"
)

type Settings struct {
	OLT       OLT       `yaml:"olt"`
	SNMP      SNMP      `yaml:"snmp"`
	Generator Generator `yaml:"generator"`
	Log       Log       `yaml:"log"`
}

func DefaultSettings() Settings {
	return Settings{
		OLT:       DefaultOLT(),
		SNMP:      DefaultSNMP(),
		Generator: Generator{TcontProfile: "1G"},
		Log:       Log{Level: "info", Format: "console"},
	}
}

func (s *Settings) UnmarshalYAML(unmarshal func(interface{}) error) error {
	*s = DefaultSettings()

	type plain Settings
	if err := unmarshal((*plain)(s)); err != nil {
		return err
	}

	switch s.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", s.Log.Format)
	}
	return nil
}

type OLT struct {
	Name     string  `yaml:"name"`
	Address  string  `yaml:"address"`
	Port     int     `yaml:"port"`
	Username string  `yaml:"username"`
	Password string  `yaml:"password"`
	Model    string  `yaml:"model"`
	Protocol string  `yaml:"protocol"`
	ExecMode string  `yaml:"exec_mode"`
	Timeout  float64 `yaml:"timeout"`
}

func DefaultOLT() OLT {
	return OLT{
		Name:     "olt",
		Port:     22,
		Model:    string(types.ModelC320),
		Protocol: string(types.ProtocolCLI),
		ExecMode: string(types.ExecModeInteractive),
		Timeout:  30,
	}
}

func (o *OLT) UnmarshalYAML(unmarshal func(interface{}) error) error {
	*o = DefaultOLT()

	type plain OLT
	return unmarshal((*plain)(o))
}

type SNMP struct {
	Community string `yaml:"community"`
	Version   string `yaml:"version"`
	Port      int    `yaml:"port"`
	Retries   int    `yaml:"retries"`
}

func DefaultSNMP() SNMP {
	return SNMP{
		Community: "public",
		Version:   "2c",
		Port:      161,
		Retries:   3,
	}
}

func (s *SNMP) UnmarshalYAML(unmarshal func(interface{}) error) error {
	*s = DefaultSNMP()

	type plain SNMP
	return unmarshal((*plain)(s))
}

type Generator struct {
	TcontProfile string `yaml:"tcont_profile"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads a settings file. Unknown keys are rejected.
func Load(path string) (*Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, types.Wrap(types.KindIO, "read settings", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses settings from r. An empty document yields the defaults.
func Decode(r io.Reader) (*Settings, error) {
	s := DefaultSettings()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil && err != io.EOF {
		return nil, types.Wrap(types.KindSerialize, "parse settings", err)
	}
	return &s, nil
}

// Equipment converts the OLT and SNMP sections into a driver configuration.
func (s *Settings) Equipment() (*types.EquipmentConfig, error) {
	model, ok := types.ParseOltModel(s.OLT.Model)
	if !ok {
		return nil, fmt.Errorf("unknown OLT model %q", s.OLT.Model)
	}

	protocol := types.Protocol(s.OLT.Protocol)
	switch protocol {
	case types.ProtocolCLI, types.ProtocolSNMP, types.ProtocolMock:
	default:
		return nil, fmt.Errorf("unknown protocol %q", s.OLT.Protocol)
	}

	mode := types.ExecMode(s.OLT.ExecMode)
	switch mode {
	case types.ExecModeInteractive, types.ExecModeChannel:
	default:
		return nil, fmt.Errorf("unknown exec_mode %q", s.OLT.ExecMode)
	}

	if protocol != types.ProtocolMock && s.OLT.Address == "" {
		return nil, fmt.Errorf("olt.address is required")
	}
	if s.OLT.Timeout <= 0 {
		return nil, fmt.Errorf("olt.timeout must be positive")
	}

	return &types.EquipmentConfig{
		Name:     s.OLT.Name,
		Model:    model,
		Address:  s.OLT.Address,
		Port:     s.OLT.Port,
		Protocol: protocol,
		ExecMode: mode,
		Username: s.OLT.Username,
		Password: s.OLT.Password,
		Timeout:  time.Duration(s.OLT.Timeout * float64(time.Second)),
		Metadata: map[string]string{
			snmp.MetaCommunity: s.SNMP.Community,
			snmp.MetaVersion:   s.SNMP.Version,
			snmp.MetaPort:      strconv.Itoa(s.SNMP.Port),
			snmp.MetaRetries:   strconv.Itoa(s.SNMP.Retries),
		},
	}, nil
}
