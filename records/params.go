package records

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/CaioVieiraF/olt-access/onu"
	"github.com/CaioVieiraF/olt-access/pon"
	"github.com/CaioVieiraF/olt-access/types"
)

// Params is the shared provisioning context of a bulk create.
type Params struct {
	// Vlan is the service VLAN given to every unit.
	Vlan uint16

	// Interface is the PON port the units hang from.
	Interface pon.Interface

	// FirstID is the lowest ONU id handed out.
	FirstID uint8

	// Model is used for records that leave the model column empty.
	Model string

	// Upload and Download are optional traffic profiles for the service.
	Upload   string
	Download string
}

type paramsFile struct {
	Vlan      uint16 `yaml:"vlan"`
	Interface string `yaml:"interface"`
	FirstID   int    `yaml:"first_id"`
	Model     string `yaml:"model"`
	Upload    string `yaml:"upload"`
	Download  string `yaml:"download"`
}

// UnmarshalYAML decodes a parameter file and fills defaults.
func (p *Params) UnmarshalYAML(unmarshal func(interface{}) error) error {
	raw := paramsFile{FirstID: pon.MinONU}
	if err := unmarshal(&raw); err != nil {
		return err
	}

	out, err := NewParams(raw.Vlan, raw.Interface, raw.FirstID)
	if err != nil {
		return err
	}
	out.Model = raw.Model
	out.Upload = raw.Upload
	out.Download = raw.Download
	*p = out
	return nil
}

// NewParams validates and builds Params. iface may be written as
// "gpon_olt-1/1/3", "interface gpon_olt-1/1/3" or "1/1/3".
func NewParams(vlan uint16, iface string, firstID int) (Params, error) {
	if vlan < onu.MinVlan || vlan > onu.MaxVlan {
		return Params{}, fmt.Errorf("vlan %d not in %d-%d", vlan, onu.MinVlan, onu.MaxVlan)
	}
	if firstID < pon.MinONU || firstID > pon.MaxONU {
		return Params{}, fmt.Errorf("first_id %d not in %d-%d", firstID, pon.MinONU, pon.MaxONU)
	}
	port, err := ParsePort(iface)
	if err != nil {
		return Params{}, err
	}
	return Params{Vlan: vlan, Interface: port, FirstID: uint8(firstID)}, nil
}

// ParsePort parses a PON port address and returns its OLT-side interface.
func ParsePort(s string) (pon.Interface, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "1/") {
		s = string(pon.LevelGponOlt) + "-" + s
	}
	i, err := pon.Parse(s)
	if err != nil {
		return pon.Interface{}, err
	}
	return i.Olt(), nil
}

// LoadParams reads a YAML or JSON parameter file with the keys vlan,
// interface and the optional first_id, model, upload and download.
func LoadParams(r io.Reader) (Params, error) {
	const op = "load params"

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var p Params
	if err := dec.Decode(&p); err != nil {
		if err == io.EOF {
			return Params{}, types.Errorf(types.KindSerialize, op, "empty file")
		}
		return Params{}, types.Wrap(types.KindSerialize, op, err)
	}
	return p, nil
}
