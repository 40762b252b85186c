package config

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CaioVieiraF/olt-access/command"
	"github.com/CaioVieiraF/olt-access/types"
)

const sampleDump = `!<xpon>
interface gpon_olt-1/1/1
  onu 1 type F601 sn ZTEG00000001
  onu 2 type F670L sn ZTEG00000002
$
interface gpon_onu-1/1/1:1
  tcont 1 profile 1G
  gemport 1 tcont 1
$
!</xpon>
!<if-intf>
interface vlan100
  description internet
  ip address 10.0.0.1 255.255.255.0
$
!</if-intf>
`

func mustParse(t *testing.T, s string) *Config {
	t.Helper()
	c, err := Parse(strings.NewReader(s))
	require.NoError(t, err)
	return c
}

func TestParse(t *testing.T) {
	c := mustParse(t, sampleDump)

	assert.Equal(t, []Field{FieldXpon, FieldIfIntf}, c.Fields())

	xpon, ok := c.Get(FieldXpon)
	require.True(t, ok)
	require.Len(t, xpon, 2)
	assert.Equal(t, "interface gpon_olt-1/1/1", xpon[0].Command.String())
	require.Len(t, xpon[0].Children, 2)
	assert.Equal(t, "onu 2 type F670L sn ZTEG00000002", xpon[0].Children[1].Command.String())
	assert.True(t, xpon[0].Children[1].IsLeaf())

	ifIntf, _ := c.Get(FieldIfIntf)
	require.Len(t, ifIntf, 1)
	assert.Len(t, ifIntf[0].Children, 2)
	assert.Equal(t, 3, c.Len())
}

func TestParseNesting(t *testing.T) {
	c := mustParse(t, strings.Join([]string{
		"!<MSAN>",
		"a",
		"  b",
		"    c",
		"    d",
		"  e",
		"        too-deep",
		"f",
		"!</MSAN>",
	}, "\n"))

	trees, _ := c.Get(FieldMSAN)
	require.Len(t, trees, 2)

	a := trees[0]
	require.Len(t, a.Children, 2)
	assert.Equal(t, "b", a.Children[0].Command.String())
	assert.Equal(t, []string{"c", "d"}, []string{
		a.Children[0].Children[0].Command.String(),
		a.Children[0].Children[1].Command.String(),
	})

	// depth 4 under a chain that is only two deep lands on the deepest node
	e := a.Children[1]
	assert.Equal(t, "e", e.Command.String())
	require.Len(t, e.Children, 1)
	assert.Equal(t, "too-deep", e.Children[0].Command.String())

	assert.Equal(t, "f", trees[1].Command.String())
}

func TestParseOutsideFieldGoesToRaw(t *testing.T) {
	c := mustParse(t, "configure terminal\n!<xpon>\ninterface gpon_olt-1/1/1\n!</xpon>\nend\n")

	raw, ok := c.Get(FieldRaw)
	require.True(t, ok)
	assert.Equal(t, []string{"configure terminal", "end"}, command.Strings(c.FieldCommands(FieldRaw)))
	assert.Len(t, raw, 2)
	assert.Equal(t, []Field{FieldRaw, FieldXpon}, c.Fields())
}

func TestParseReopenedFieldAppends(t *testing.T) {
	c := mustParse(t, "!<xpon>\na\n!</xpon>\n!<xpon>\nb\n!</xpon>\n")
	trees, _ := c.Get(FieldXpon)
	require.Len(t, trees, 2)
	assert.Equal(t, "b", trees[1].Command.String())
}

func TestParseSkipsTerminatorsOnly(t *testing.T) {
	c := mustParse(t, "!<xpon>\nuser pass$word\n  $\n\n$\n!</xpon>\n")
	trees, _ := c.Get(FieldXpon)
	require.Len(t, trees, 1)
	assert.Equal(t, "user pass$word", trees[0].Command.String())
	assert.True(t, trees[0].IsLeaf())
}

func TestParseReadError(t *testing.T) {
	_, err := Parse(iotest.ErrReader(errors.New("disk gone")))
	require.Error(t, err)
	assert.Equal(t, types.KindIO, types.KindOf(err))
}

func TestSerialize(t *testing.T) {
	c := New()
	olt := command.Block(command.New("interface gpon_olt-1/1/3"), command.New("onu 5 type F670L sn ABCD1234"))
	deep := command.Leaf(command.New("a"))
	mid := command.Block(command.New("b"), command.New("c"))
	deep.Nest(mid)
	c.Append(FieldXpon, olt, deep)

	want := strings.Join([]string{
		"!<xpon>",
		"interface gpon_olt-1/1/3",
		"  onu 5 type F670L sn ABCD1234",
		"$",
		"a",
		"  b",
		"    c",
		"  $",
		"$",
		"!</xpon>",
		"",
	}, "\n")
	assert.Equal(t, want, c.String())

	var b strings.Builder
	n, err := c.WriteTo(&b)
	require.NoError(t, err)
	assert.Equal(t, int64(len(want)), n)
}

func TestRoundTrip(t *testing.T) {
	first := mustParse(t, sampleDump)
	second := mustParse(t, first.String())
	assert.Equal(t, first, second)

	third := mustParse(t, second.String())
	assert.Equal(t, second.String(), third.String())
}

func TestMerge(t *testing.T) {
	a := FromCommands([]command.Command{command.New("configure terminal")})
	a.Append(FieldXpon, command.Leaf(command.New("x1")))

	b := New()
	b.Append(FieldXpon, command.Leaf(command.New("x2")))
	b.Append(FieldMSAN, command.Leaf(command.New("m1")))

	a.Merge(b)
	a.Merge(nil)

	assert.Equal(t, []Field{FieldRaw, FieldXpon, FieldMSAN}, a.Fields())
	assert.Equal(t, []string{"x1", "x2"}, command.Strings(a.FieldCommands(FieldXpon)))
	assert.Equal(t, []string{"configure terminal", "x1", "x2", "m1"}, command.Strings(a.Commands()))
}

func TestCommandsCloseBlocks(t *testing.T) {
	c := mustParse(t, sampleDump)
	got := command.Strings(c.FieldCommands(FieldXpon))
	assert.Equal(t, []string{
		"interface gpon_olt-1/1/1",
		"onu 1 type F601 sn ZTEG00000001",
		"onu 2 type F670L sn ZTEG00000002",
		"exit",
		"interface gpon_onu-1/1/1:1",
		"tcont 1 profile 1G",
		"gemport 1 tcont 1",
		"exit",
	}, got)
}

func TestFieldKnown(t *testing.T) {
	assert.True(t, FieldXpon.Known())
	assert.True(t, FieldMSAN.Known())
	assert.False(t, Field("vlan").Known())
}
