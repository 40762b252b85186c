package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CaioVieiraF/olt-access/onu"
	"github.com/CaioVieiraF/olt-access/pon"
	"github.com/CaioVieiraF/olt-access/records"
)

func TestBuild(t *testing.T) {
	recs := []records.ONURecord{
		{Serial: "S1", PPPoEUser: "u1", PPPoEPassword: "p1", Model: "F670L"},
		{Serial: "S2"},
		{Serial: "S3", PPPoEUser: "u3", PPPoEPassword: "p3", Model: "F601"},
	}
	params := records.Params{Vlan: 100, Interface: pon.NewOlt(1, 4), FirstID: 3, Model: "F660", Upload: "UP"}

	units, err := Build(recs, params, IDSet{4: true, 6: true})
	require.NoError(t, err)
	require.Len(t, units, 3)

	assert.Equal(t, []uint8{3, 5, 7}, []uint8{units[0].ID(), units[1].ID(), units[2].ID()})
	assert.Equal(t, pon.NewOnu(1, 4, 3), units[0].Interface)
	assert.Equal(t, "F660", units[1].Model)

	assert.Equal(t, onu.PPPoE{Username: "u1", Password: "p1"}, units[0].Services[0].Vlan.Access)
	assert.Equal(t, onu.DHCP{}, units[1].Services[0].Vlan.Access)
	assert.Equal(t, "UP", units[2].Services[0].Upload)
	assert.Equal(t, uint16(100), units[2].Services[0].Vlan.ID)
}

func TestBuildErrors(t *testing.T) {
	port := pon.NewOlt(1, 1)

	_, err := Build([]records.ONURecord{{Serial: "S1"}}, records.Params{Vlan: 10, Interface: port, FirstID: 1}, nil)
	assert.ErrorContains(t, err, "no model")

	used := IDSet{}
	for id := 1; id <= pon.MaxONU; id++ {
		used[uint8(id)] = true
	}
	_, err = Build([]records.ONURecord{{Serial: "S1", Model: "F601"}}, records.Params{Vlan: 10, Interface: port}, used)
	assert.ErrorContains(t, err, "no free onu id")

	_, err = Build([]records.ONURecord{{Serial: "S1", Model: "F601"}, {Serial: "S2", Model: "F601"}},
		records.Params{Vlan: 10, Interface: port, FirstID: pon.MaxONU}, nil)
	assert.ErrorContains(t, err, "no free onu id")
}
