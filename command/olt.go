package command

import (
	"strconv"

	"github.com/CaioVieiraF/olt-access/pon"
)

// Olt is the gpon_olt interface mode of a PON port.
type Olt struct {
	iface pon.Interface
}

func (o Olt) Enter() Command { return Join("interface", o.iface.String()) }
func (o Olt) Exit() Command  { return Exit }

// Interface returns the PON port being configured.
func (o Olt) Interface() pon.Interface { return o.iface }

// Onu starts an "onu <id>" registration line.
func (o Olt) Onu(id uint8) OltOnu {
	return OltOnu{text: "onu " + strconv.Itoa(int(id))}
}

type OltOnu struct{ text string }

func (s OltOnu) Type(model string) OltOnuType {
	return OltOnuType{text: s.text + " type " + model}
}

type OltOnuType struct{ text string }

func (s OltOnuType) SN(serial string) OltOnuSN {
	return OltOnuSN{text: s.text + " sn " + serial}
}

// OltOnuSN is a complete registration line that may still take a vport mode.
type OltOnuSN struct{ text string }

func (s OltOnuSN) Run() Command { return New(s.text) }

func (s OltOnuSN) VportMode() OltOnuVportMode {
	return OltOnuVportMode{text: s.text + " vport_mode"}
}

type OltOnuVportMode struct{ text string }

func (s OltOnuVportMode) Gemport() Command { return New(s.text + " gemport") }
func (s OltOnuVportMode) Manual() Command  { return New(s.text + " manual") }
