package command

import "github.com/CaioVieiraF/olt-access/pon"

// Global is the configuration mode entered by "configure terminal".
// Every builder chain starts here; each method returns the next stage and
// only terminal stages yield a Command.
type Global struct{}

// Configure starts a builder chain.
func Configure() Global {
	return Global{}
}

func (Global) Enter() Command { return New("configure terminal") }
func (Global) Exit() Command  { return End }

// End closes configuration mode.
func (Global) End() Command { return End }

// Interface selects an interface to configure.
func (Global) Interface() InterfaceSelect {
	return InterfaceSelect{}
}

// PonOnuMng enters the OMCI management mode of one ONU.
func (Global) PonOnuMng(i pon.Interface) Omci {
	return Omci{iface: i.Omci()}
}

// InterfaceSelect is the "interface" keyword awaiting an address.
type InterfaceSelect struct{}

// GponOlt selects the OLT side of a PON port.
func (InterfaceSelect) GponOlt(i pon.Interface) Olt {
	return Olt{iface: i.Olt()}
}

// GponOnu selects the ONU-side interface of one unit.
func (InterfaceSelect) GponOnu(i pon.Interface) Onu {
	return Onu{iface: i.Unit()}
}

// Vport selects the service vport k of one unit.
func (InterfaceSelect) Vport(i pon.Interface, k uint8) Vport {
	return Vport{iface: i.Vport(k)}
}
