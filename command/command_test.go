package command

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CaioVieiraF/olt-access/pon"
)

func TestBuilderChains(t *testing.T) {
	unit := pon.NewOnu(1, 3, 5)
	conf := Configure()

	tests := []struct {
		name string
		got  Command
		want string
	}{
		{"configure", conf.Enter(), "configure terminal"},
		{"end", conf.End(), "end"},
		{"olt enter", conf.Interface().GponOlt(unit).Enter(), "interface gpon_olt-1/1/3"},
		{"onu register", conf.Interface().GponOlt(unit).Onu(5).Type("F670L").SN("ABCD1234").Run(), "onu 5 type F670L sn ABCD1234"},
		{"onu register gemport mode", conf.Interface().GponOlt(unit).Onu(5).Type("F670L").SN("ABCD1234").VportMode().Gemport(), "onu 5 type F670L sn ABCD1234 vport_mode gemport"},
		{"onu register manual mode", conf.Interface().GponOlt(unit).Onu(5).Type("F670L").SN("ABCD1234").VportMode().Manual(), "onu 5 type F670L sn ABCD1234 vport_mode manual"},
		{"onu enter", conf.Interface().GponOnu(unit).Enter(), "interface gpon_onu-1/1/3:5"},
		{"tcont", conf.Interface().GponOnu(unit).Tcont(1).Profile("1G"), "tcont 1 profile 1G"},
		{"gemport", conf.Interface().GponOnu(unit).Gemport(1).Tcont(1).Run(), "gemport 1 tcont 1"},
		{"traffic limit", conf.Interface().GponOnu(unit).Gemport(1).TrafficLimit().Upstream("UP10M").Downstream("DW50M"), "gemport 1 traffic-limit upstream UP10M downstream DW50M"},
		{"vport mode", conf.Interface().GponOnu(unit).VportMode("manual"), "vport-mode manual"},
		{"vport map type", conf.Interface().GponOnu(unit).Vport(1).MapType("vlan"), "vport 1 map-type vlan"},
		{"vport map", conf.Interface().GponOnu(unit).VportMap(1, 0).Vlan(100), "vport-map 1 0 vlan 100"},
		{"vport enter", conf.Interface().Vport(unit, 1).Enter(), "interface vport-1/1/3.5:1"},
		{"service port", conf.Interface().Vport(unit, 1).ServicePort(1).UserVlan(100).Vlan(100).Run(), "service-port 1 user-vlan 100 vlan 100"},
		{"omci enter", conf.PonOnuMng(unit).Enter(), "pon-onu-mng gpon_onu-1/1/3:5"},
		{"service", conf.PonOnuMng(unit).Service(1).Gemport(1).Run(), "service 1 gemport 1"},
		{"service vlan", conf.PonOnuMng(unit).Service(1).Gemport(1).Vlan(100), "service 1 gemport 1 vlan 100"},
		{"wan-ip pppoe", conf.PonOnuMng(unit).WanIP().Mode(PPPoE{Username: "user1", Password: "pass1"}).VlanProfile("100").Host(1), "wan-ip ipv4 mode pppoe username user1 password pass1 vlan-profile 100 host 1"},
		{"wan-ip dhcp", conf.PonOnuMng(unit).WanIP().Mode(DHCP{}).VlanProfile("200").Host(2), "wan-ip ipv4 mode dhcp vlan-profile 200 host 2"},
		{"security-mgmt", conf.PonOnuMng(unit).SecurityMgmt(1).State(true).Mode(true).IngressType(Iphost(1)).Protocol(ProtocolWeb), "security-mgmt 1 state enable mode forward ingress-type iphost 1 protocol Web"},
		{"security-mgmt discard", conf.PonOnuMng(unit).SecurityMgmt(2).State(false).Mode(false).IngressType(Wan{}).Protocol(ProtocolTelnet), "security-mgmt 2 state disable mode discard ingress-type wan protocol Telnet"},
		{"security-mgmt lan", conf.PonOnuMng(unit).SecurityMgmt(3).State(true).Mode(true).IngressType(Lan{}).Protocol(ProtocolHTTPS), "security-mgmt 3 state enable mode forward ingress-type lan protocol Https"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got.String())
		})
	}
}

func TestStagesArePure(t *testing.T) {
	sn := Configure().Interface().GponOlt(pon.NewOlt(1, 1)).Onu(2).Type("F601").SN("ZTEG1")

	// Branching from the same stage twice must not leak text between branches.
	assert.Equal(t, "onu 2 type F601 sn ZTEG1 vport_mode manual", sn.VportMode().Manual().String())
	assert.Equal(t, "onu 2 type F601 sn ZTEG1", sn.Run().String())
}

func TestExitLines(t *testing.T) {
	unit := pon.NewOnu(1, 1, 1)
	conf := Configure()

	assert.Equal(t, End, conf.Exit())
	assert.Equal(t, Exit, conf.Interface().GponOlt(unit).Exit())
	assert.Equal(t, Exit, conf.Interface().GponOnu(unit).Exit())
	assert.Equal(t, Exit, conf.Interface().Vport(unit, 1).Exit())
	assert.Equal(t, Exit, conf.PonOnuMng(unit).Exit())
}

func TestParseProtocol(t *testing.T) {
	p, ok := ParseProtocol("web")
	assert.True(t, ok)
	assert.Equal(t, ProtocolWeb, p)

	_, ok = ParseProtocol("gopher")
	assert.False(t, ok)
}

func TestNestedCommand(t *testing.T) {
	root := Leaf(New("interface gpon_olt-1/1/1"))
	assert.True(t, root.IsLeaf())
	assert.Nil(t, root.LastChild())

	root.Nest(Leaf(New("onu 1 type F601 sn A")))
	root.Nest(Leaf(New("onu 2 type F601 sn B")))
	assert.False(t, root.IsLeaf())
	assert.Equal(t, "onu 2 type F601 sn B", root.LastChild().Command.String())

	assert.Equal(t, []string{
		"interface gpon_olt-1/1/1",
		"onu 1 type F601 sn A",
		"onu 2 type F601 sn B",
		"exit",
	}, Strings(root.Flatten()))

	assert.Equal(t, root, Block(New("interface gpon_olt-1/1/1"), New("onu 1 type F601 sn A"), New("onu 2 type F601 sn B")))
}

func TestCommandEquality(t *testing.T) {
	assert.Equal(t, New("end"), End)
	assert.True(t, New("end") == End)
	assert.Equal(t, New("a b c"), Join("a", "b", "c"))
	assert.True(t, Command{}.IsZero())
}
