package command

import "github.com/CaioVieiraF/olt-access/pon"

// Vport is the interface mode of one service vport.
type Vport struct {
	iface pon.Interface
}

func (v Vport) Enter() Command { return Join("interface", v.iface.String()) }
func (v Vport) Exit() Command  { return Exit }

// Interface returns the vport being configured.
func (v Vport) Interface() pon.Interface { return v.iface }

func (Vport) ServicePort(n uint8) VportServicePort {
	return VportServicePort{text: "service-port " + itoa(int(n))}
}

type VportServicePort struct{ text string }

func (s VportServicePort) UserVlan(v uint16) VportUserVlan {
	return VportUserVlan{text: s.text + " user-vlan " + itoa(int(v))}
}

type VportUserVlan struct{ text string }

func (s VportUserVlan) Vlan(v uint16) VportVlan {
	return VportVlan{text: s.text + " vlan " + itoa(int(v))}
}

type VportVlan struct{ text string }

func (s VportVlan) Run() Command { return New(s.text) }
