package onu

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/CaioVieiraF/olt-access/types"
)

// Usable 802.1Q VLAN ids.
const (
	MinVlan = 1
	MaxVlan = 4094
)

// AccessService is how the unit obtains its WAN address on a VLAN.
// It is implemented by PPPoE and DHCP only.
type AccessService interface {
	accessService()
}

// PPPoE dials a PPPoE session with the given credentials.
type PPPoE struct {
	Username string
	Password string
}

func (PPPoE) accessService() {}

// DHCP obtains the WAN address by DHCP.
type DHCP struct{}

func (DHCP) accessService() {}

// Vlan is a VLAN id with an optional access service.
type Vlan struct {
	ID     uint16
	Access AccessService
}

// NewVlan returns a VLAN without access service.
func NewVlan(id uint16) Vlan {
	return Vlan{ID: id}
}

// SetPPPoE replaces any access service with PPPoE credentials.
func (v *Vlan) SetPPPoE(username, password string) {
	v.Access = PPPoE{Username: username, Password: password}
}

// SetDHCP replaces any access service with DHCP.
func (v *Vlan) SetDHCP() {
	v.Access = DHCP{}
}

// ClearAccess removes the access service.
func (v *Vlan) ClearAccess() {
	v.Access = nil
}

// HasAccess reports whether the VLAN carries an access service.
func (v Vlan) HasAccess() bool {
	return v.Access != nil
}

// Validate checks the VLAN id range and PPPoE credentials.
func (v Vlan) Validate() error {
	if v.ID < MinVlan || v.ID > MaxVlan {
		return fmt.Errorf("vlan %d not in %d-%d", v.ID, MinVlan, MaxVlan)
	}
	if p, ok := v.Access.(PPPoE); ok {
		if p.Username == "" || p.Password == "" {
			return fmt.Errorf("vlan %d: pppoe requires username and password", v.ID)
		}
		if strings.ContainsAny(p.Username+p.Password, " \t\r\n") {
			return fmt.Errorf("vlan %d: pppoe credentials cannot contain whitespace", v.ID)
		}
	}
	return nil
}

// ParseVlanID parses a VLAN id. The equipment also names VLAN profiles
// after the VLAN ("vlan100", "PPPOE_100"); for those the trailing digits
// are used.
func ParseVlanID(s string) (uint16, error) {
	s = strings.TrimSpace(s)
	digits := s
	if _, err := strconv.Atoi(s); err != nil {
		end := len(s)
		start := end
		for start > 0 && s[start-1] >= '0' && s[start-1] <= '9' {
			start--
		}
		digits = s[start:end]
	}
	id, err := strconv.Atoi(digits)
	if err != nil || id < MinVlan || id > MaxVlan {
		return 0, types.Errorf(types.KindGeneric, "parse vlan", "invalid vlan %q", s)
	}
	return uint16(id), nil
}
