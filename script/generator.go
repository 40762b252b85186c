// Package script turns ONU provisioning intent into ZTE CLI scripts.
package script

import (
	"strconv"

	"github.com/CaioVieiraF/olt-access/command"
	"github.com/CaioVieiraF/olt-access/config"
	"github.com/CaioVieiraF/olt-access/onu"
)

// DefaultTcontProfile is the bandwidth profile bound to tcont 1.
const DefaultTcontProfile = "1G"

// unshaped side of a traffic-limit line
const defaultTrafficProfile = "default"

// Generator renders provisioning scripts. The zero value uses
// DefaultTcontProfile.
type Generator struct {
	TcontProfile string
}

func (g Generator) tcontProfile() string {
	if g.TcontProfile == "" {
		return DefaultTcontProfile
	}
	return g.TcontProfile
}

// blocks returns the mode blocks that provision o, in execution order:
// OLT registration, ONU interface, one vport per service, OMCI.
func (g Generator) blocks(o onu.Onu) []command.NestedCommand {
	conf := command.Configure()
	unit := o.Interface.Unit()

	olt := conf.Interface().GponOlt(unit)
	oltBlock := command.Block(olt.Enter(),
		olt.Onu(unit.ID).Type(o.Model).SN(o.Serial).Run(),
	)

	ifc := conf.Interface().GponOnu(unit)
	onuBlock := command.Block(ifc.Enter(),
		ifc.Tcont(1).Profile(g.tcontProfile()),
		ifc.Gemport(1).Tcont(1).Run(),
	)
	for _, s := range o.Services {
		if !s.Shaped() {
			continue
		}
		onuBlock.Nest(command.Leaf(ifc.Gemport(1).TrafficLimit().
			Upstream(orDefault(s.Upload)).
			Downstream(orDefault(s.Download))))
		// a single gemport carries every service
		break
	}
	onuBlock.Nest(command.Leaf(ifc.VportMode("manual")))
	onuBlock.Nest(command.Leaf(ifc.Vport(1).MapType("vlan")))
	for i, s := range o.Services {
		onuBlock.Nest(command.Leaf(ifc.VportMap(1, i).Vlan(s.Vlan.ID)))
	}

	out := []command.NestedCommand{oltBlock, onuBlock}

	for i, s := range o.Services {
		k := uint8(i + 1)
		vp := conf.Interface().Vport(unit, k)
		out = append(out, command.Block(vp.Enter(),
			vp.ServicePort(k).UserVlan(s.Vlan.ID).Vlan(s.Vlan.ID).Run(),
		))
	}

	omci := conf.PonOnuMng(unit)
	omciBlock := command.Leaf(omci.Enter())
	for i, s := range o.Services {
		k := uint8(i + 1)
		omciBlock.Nest(command.Leaf(omci.Service(k).Gemport(1).Vlan(s.Vlan.ID)))

		mode, ok := wanMode(s.Vlan.Access)
		if !ok {
			continue
		}
		omciBlock.Nest(command.Leaf(omci.WanIP().Mode(mode).
			VlanProfile(strconv.Itoa(int(s.Vlan.ID))).
			Host(k)))
		omciBlock.Nest(command.Leaf(omci.SecurityMgmt(k).
			State(true).
			Mode(true).
			IngressType(command.Iphost(k)).
			Protocol(command.ProtocolWeb)))
	}
	return append(out, omciBlock)
}

func wanMode(a onu.AccessService) (command.WanMode, bool) {
	switch a := a.(type) {
	case onu.PPPoE:
		return command.PPPoE{Username: a.Username, Password: a.Password}, true
	case onu.DHCP:
		return command.DHCP{}, true
	default:
		return nil, false
	}
}

func orDefault(profile string) string {
	if profile == "" {
		return defaultTrafficProfile
	}
	return profile
}

// Config returns the nested xpon form of the script that provisions o.
func (g Generator) Config(o onu.Onu) (*config.Config, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	c := config.New()
	c.Append(config.FieldXpon, g.blocks(o)...)
	return c, nil
}

// Commands returns the executable script that provisions o, from
// "configure terminal" to "end".
func (g Generator) Commands(o onu.Onu) ([]command.Command, error) {
	return g.Script([]onu.Onu{o})
}

// Script returns one executable script provisioning every unit in order.
func (g Generator) Script(units []onu.Onu) ([]command.Command, error) {
	conf := command.Configure()
	out := []command.Command{conf.Enter()}
	for n, o := range units {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		blocks := g.blocks(o)
		for _, b := range blocks[:len(blocks)-1] {
			out = append(out, b.Flatten()...)
		}
		// the OMCI block of the last unit is left by "end"
		omci := blocks[len(blocks)-1]
		out = append(out, omci.Command)
		for _, child := range omci.Children {
			out = append(out, child.Flatten()...)
		}
		if n < len(units)-1 {
			out = append(out, command.Exit)
		}
	}
	return append(out, conf.End()), nil
}

// ConfigAll returns the nested form for every unit, merged in order.
func (g Generator) ConfigAll(units []onu.Onu) (*config.Config, error) {
	c := config.New()
	for _, o := range units {
		oc, err := g.Config(o)
		if err != nil {
			return nil, err
		}
		c.Merge(oc)
	}
	return c, nil
}
