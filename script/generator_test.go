package script

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CaioVieiraF/olt-access/command"
	"github.com/CaioVieiraF/olt-access/config"
	"github.com/CaioVieiraF/olt-access/onu"
	"github.com/CaioVieiraF/olt-access/pon"
	"github.com/CaioVieiraF/olt-access/types"
)

func pppoeUnit() onu.Onu {
	u := onu.New(pon.NewOnu(1, 3, 5), "F670L", "ABCD1234")
	v := onu.NewVlan(100)
	v.SetPPPoE("user1", "pass1")
	u.AddService(onu.NewService(v))
	return u
}

func TestCommandsScenario(t *testing.T) {
	got, err := Generator{}.Commands(pppoeUnit())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"configure terminal",
		"interface gpon_olt-1/1/3",
		"onu 5 type F670L sn ABCD1234",
		"exit",
		"interface gpon_onu-1/1/3:5",
		"tcont 1 profile 1G",
		"gemport 1 tcont 1",
		"vport-mode manual",
		"vport 1 map-type vlan",
		"vport-map 1 0 vlan 100",
		"exit",
		"interface vport-1/1/3.5:1",
		"service-port 1 user-vlan 100 vlan 100",
		"exit",
		"pon-onu-mng gpon_onu-1/1/3:5",
		"service 1 gemport 1 vlan 100",
		"wan-ip ipv4 mode pppoe username user1 password pass1 vlan-profile 100 host 1",
		"security-mgmt 1 state enable mode forward ingress-type iphost 1 protocol Web",
		"end",
	}, command.Strings(got))
}

func TestCommandsServices(t *testing.T) {
	u := onu.New(pon.NewOnu(2, 1, 7), "F601", "ZTEG7")
	dhcp := onu.NewVlan(200)
	dhcp.SetDHCP()
	u.AddService(onu.Service{Vlan: onu.NewVlan(300), Upload: "UP20M"})
	u.AddService(onu.NewService(dhcp))

	got, err := Generator{TcontProfile: "100M"}.Commands(u)
	require.NoError(t, err)
	lines := command.Strings(got)

	for _, want := range []string{
		"tcont 1 profile 100M",
		"gemport 1 traffic-limit upstream UP20M downstream default",
		"vport-map 1 0 vlan 300",
		"vport-map 1 1 vlan 200",
		"interface vport-1/2/1.7:1",
		"service-port 1 user-vlan 300 vlan 300",
		"interface vport-1/2/1.7:2",
		"service-port 2 user-vlan 200 vlan 200",
		"service 1 gemport 1 vlan 300",
		"service 2 gemport 1 vlan 200",
		"wan-ip ipv4 mode dhcp vlan-profile 200 host 2",
		"security-mgmt 2 state enable mode forward ingress-type iphost 2 protocol Web",
	} {
		assert.Contains(t, lines, want)
	}

	// service 1 has no access service, so no wan-ip or acl for it
	assert.NotContains(t, strings.Join(lines, "\n"), "host 1")
	assert.NotContains(t, lines, "security-mgmt 1 state enable mode forward ingress-type iphost 1 protocol Web")
}

func TestCommandsWithoutServices(t *testing.T) {
	got, err := Generator{}.Commands(onu.New(pon.NewOnu(1, 1, 1), "F601", "A"))
	require.NoError(t, err)
	lines := command.Strings(got)

	assert.NotContains(t, strings.Join(lines, "\n"), "vport-map")
	assert.NotContains(t, strings.Join(lines, "\n"), "interface vport")
	assert.Equal(t, []string{"pon-onu-mng gpon_onu-1/1/1:1", "end"}, lines[len(lines)-2:])
}

func TestCommandsDeterministic(t *testing.T) {
	g := Generator{}
	a, err := g.Commands(pppoeUnit())
	require.NoError(t, err)
	b, err := g.Commands(pppoeUnit())
	require.NoError(t, err)
	assert.Equal(t, a, b)

	ca, err := g.Config(pppoeUnit())
	require.NoError(t, err)
	cb, err := g.Config(pppoeUnit())
	require.NoError(t, err)
	assert.Equal(t, ca.String(), cb.String())
}

func TestCommandsRejectsInvalid(t *testing.T) {
	bad := pppoeUnit()
	bad.Interface.ID = 0

	_, err := Generator{}.Commands(bad)
	require.Error(t, err)
	assert.Equal(t, types.KindGeneric, types.KindOf(err))

	_, err = Generator{}.Config(bad)
	assert.Error(t, err)
}

func TestConfigNested(t *testing.T) {
	c, err := Generator{}.Config(pppoeUnit())
	require.NoError(t, err)

	assert.Equal(t, []config.Field{config.FieldXpon}, c.Fields())
	trees, _ := c.Get(config.FieldXpon)
	require.Len(t, trees, 4)
	assert.Equal(t, "interface gpon_olt-1/1/3", trees[0].Command.String())
	assert.Equal(t, "interface gpon_onu-1/1/3:5", trees[1].Command.String())
	assert.Equal(t, "interface vport-1/1/3.5:1", trees[2].Command.String())
	assert.Equal(t, "pon-onu-mng gpon_onu-1/1/3:5", trees[3].Command.String())
	assert.Len(t, trees[3].Children, 3)
}

func TestExtractInvertsGenerate(t *testing.T) {
	want := pppoeUnit()

	c, err := Generator{}.Config(want)
	require.NoError(t, err)

	parsed, err := config.Parse(strings.NewReader(c.String()))
	require.NoError(t, err)

	units, diags := parsed.ExtractONUs()
	assert.Empty(t, diags)
	require.Len(t, units, 1)

	got := units[0]
	assert.Equal(t, want.Interface, got.Interface)
	assert.Equal(t, want.Model, got.Model)
	assert.Equal(t, want.Serial, got.Serial)
	require.Len(t, got.Services, 1)
	assert.Equal(t, want.Services[0].Vlan, got.Services[0].Vlan)
}

func TestScriptManyUnits(t *testing.T) {
	a := pppoeUnit()
	b := onu.New(pon.NewOnu(1, 3, 6), "F601", "EFGH")

	got, err := Generator{}.Script([]onu.Onu{a, b})
	require.NoError(t, err)
	lines := command.Strings(got)

	assert.Equal(t, "configure terminal", lines[0])
	assert.Equal(t, "end", lines[len(lines)-1])

	var configures, ends int
	for _, l := range lines {
		switch l {
		case "configure terminal":
			configures++
		case "end":
			ends++
		}
	}
	assert.Equal(t, 1, configures)
	assert.Equal(t, 1, ends)

	// the first unit's OMCI block is closed before the second unit starts
	i := indexOf(lines, "interface gpon_olt-1/1/3")
	j := indexOf(lines[i+1:], "interface gpon_olt-1/1/3") + i + 1
	assert.Equal(t, "exit", lines[j-1])
	assert.Equal(t, "security-mgmt 1 state enable mode forward ingress-type iphost 1 protocol Web", lines[j-2])
}

func indexOf(lines []string, s string) int {
	for i, l := range lines {
		if l == s {
			return i
		}
	}
	return -1
}
