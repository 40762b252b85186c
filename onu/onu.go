// Package onu holds the structured model of an optical network unit and
// the access services provisioned on it.
package onu

import (
	"fmt"
	"strings"

	"github.com/CaioVieiraF/olt-access/pon"
	"github.com/CaioVieiraF/olt-access/types"
)

// Service is one access service of a unit. Its position in Onu.Services
// plus one is the vport and service id used on the equipment.
type Service struct {
	Vlan Vlan

	// Upload and Download are traffic profile names; empty means unshaped.
	Upload   string
	Download string
}

// NewService returns an unshaped service on the given VLAN.
func NewService(v Vlan) Service {
	return Service{Vlan: v}
}

// Shaped reports whether the service carries a traffic limit.
func (s Service) Shaped() bool {
	return s.Upload != "" || s.Download != ""
}

// Onu is a unit registered on a PON port.
type Onu struct {
	// Interface is the ONU-side address (level gpon_onu, id set).
	Interface pon.Interface
	Model     string
	Serial    string
	Services  []Service
}

// New returns a unit without services. iface may be at any level as long
// as it carries the ONU id; it is stored as the gpon_onu address.
func New(iface pon.Interface, model, serial string) Onu {
	return Onu{
		Interface: iface.Unit(),
		Model:     model,
		Serial:    serial,
	}
}

// AddService appends s and returns its 1-based service id.
func (o *Onu) AddService(s Service) uint8 {
	o.Services = append(o.Services, s)
	return uint8(len(o.Services))
}

// ID returns the ONU id on its PON port.
func (o Onu) ID() uint8 {
	return o.Interface.ID
}

func (o Onu) String() string {
	return fmt.Sprintf("%s %s %s", o.Interface, o.Model, o.Serial)
}

// Validate checks everything the script generator relies on.
func (o Onu) Validate() error {
	op := "validate onu " + o.Interface.String()
	if err := o.Interface.Unit().Validate(); err != nil {
		return types.Wrap(types.KindGeneric, op, err)
	}
	if strings.TrimSpace(o.Model) == "" || strings.ContainsAny(o.Model, " \t") {
		return types.Errorf(types.KindGeneric, op, "invalid model %q", o.Model)
	}
	if strings.TrimSpace(o.Serial) == "" || strings.ContainsAny(o.Serial, " \t") {
		return types.Errorf(types.KindGeneric, op, "invalid serial %q", o.Serial)
	}
	if len(o.Services) > 255 {
		return types.Errorf(types.KindGeneric, op, "too many services: %d", len(o.Services))
	}
	for i, s := range o.Services {
		if err := s.Vlan.Validate(); err != nil {
			return types.Wrap(types.KindGeneric, fmt.Sprintf("%s service %d", op, i+1), err)
		}
	}
	return nil
}
