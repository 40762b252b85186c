package script

import (
	"github.com/CaioVieiraF/olt-access/onu"
	"github.com/CaioVieiraF/olt-access/pon"
	"github.com/CaioVieiraF/olt-access/records"
	"github.com/CaioVieiraF/olt-access/types"
)

// IDSet reports ONU ids already taken on the target PON port.
type IDSet map[uint8]bool

// Build turns CSV records into units on params.Interface. Ids are handed
// out in record order starting at params.FirstID and skipping ids in used.
// Records without PPPoE credentials get a DHCP service.
func Build(recs []records.ONURecord, params records.Params, used IDSet) ([]onu.Onu, error) {
	const op = "build onus"

	first := params.FirstID
	if first == 0 {
		first = pon.MinONU
	}
	next := int(first)

	units := make([]onu.Onu, 0, len(recs))
	for _, rec := range recs {
		for next <= pon.MaxONU && used[uint8(next)] {
			next++
		}
		if next > pon.MaxONU {
			return nil, types.Errorf(types.KindGeneric, op, "no free onu id on %s for %s", params.Interface, rec.Serial)
		}

		model := rec.Model
		if model == "" {
			model = params.Model
		}
		if model == "" {
			return nil, types.Errorf(types.KindGeneric, op, "no model for %s", rec.Serial)
		}

		vlan := onu.NewVlan(params.Vlan)
		if rec.PPPoEUser != "" {
			vlan.SetPPPoE(rec.PPPoEUser, rec.PPPoEPassword)
		} else {
			vlan.SetDHCP()
		}

		unit := onu.New(params.Interface.WithID(uint8(next)), model, rec.Serial)
		unit.AddService(onu.Service{Vlan: vlan, Upload: params.Upload, Download: params.Download})
		if err := unit.Validate(); err != nil {
			return nil, err
		}
		units = append(units, unit)
		next++
	}
	return units, nil
}
