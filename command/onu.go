package command

import (
	"strconv"

	"github.com/CaioVieiraF/olt-access/pon"
)

func itoa(n int) string { return strconv.Itoa(n) }

// Onu is the gpon_onu interface mode of one unit.
type Onu struct {
	iface pon.Interface
}

func (o Onu) Enter() Command { return Join("interface", o.iface.String()) }
func (o Onu) Exit() Command  { return Exit }

// Interface returns the unit being configured.
func (o Onu) Interface() pon.Interface { return o.iface }

func (Onu) Tcont(n uint8) OnuTcont {
	return OnuTcont{text: "tcont " + itoa(int(n))}
}

func (Onu) Gemport(n uint8) OnuGemport {
	return OnuGemport{text: "gemport " + itoa(int(n))}
}

// VportMode renders "vport-mode <mode>", usually "manual".
func (Onu) VportMode(mode string) Command {
	return Join("vport-mode", mode)
}

func (Onu) Vport(n uint8) OnuVport {
	return OnuVport{text: "vport " + itoa(int(n))}
}

// VportMap starts "vport-map <vport> <index>"; index is 0-based.
func (Onu) VportMap(vport uint8, index int) OnuVportMap {
	return OnuVportMap{text: "vport-map " + itoa(int(vport)) + " " + itoa(index)}
}

type OnuTcont struct{ text string }

func (s OnuTcont) Profile(name string) Command { return New(s.text + " profile " + name) }

type OnuGemport struct{ text string }

func (s OnuGemport) Tcont(n uint8) OnuGemportTcont {
	return OnuGemportTcont{text: s.text + " tcont " + itoa(int(n))}
}

func (s OnuGemport) TrafficLimit() OnuTrafficLimit {
	return OnuTrafficLimit{text: s.text + " traffic-limit"}
}

type OnuGemportTcont struct{ text string }

func (s OnuGemportTcont) Run() Command { return New(s.text) }

type OnuTrafficLimit struct{ text string }

func (s OnuTrafficLimit) Upstream(profile string) OnuTrafficLimitUp {
	return OnuTrafficLimitUp{text: s.text + " upstream " + profile}
}

type OnuTrafficLimitUp struct{ text string }

func (s OnuTrafficLimitUp) Downstream(profile string) Command {
	return New(s.text + " downstream " + profile)
}

type OnuVport struct{ text string }

// MapType renders "vport <n> map-type <t>", usually "vlan".
func (s OnuVport) MapType(t string) Command { return New(s.text + " map-type " + t) }

type OnuVportMap struct{ text string }

func (s OnuVportMap) Vlan(v uint16) Command { return New(s.text + " vlan " + itoa(int(v))) }
