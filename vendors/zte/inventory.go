package zte

import (
	"context"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"github.com/CaioVieiraF/olt-access/pon"
	"github.com/CaioVieiraF/olt-access/types"
	"github.com/CaioVieiraF/olt-access/vendors/common"
)

// RegisteredONU is one ONU found in the OLT's configuration table.
type RegisteredONU struct {
	Interface pon.Interface
	Type      string
	Name      string
	Serial    string
	State     PhaseState
}

// Inventory walks the ONU table of one PON port and returns the registered
// ONUs ordered by id. Only the serial column is required; the type, name
// and phase columns are best effort.
func Inventory(ctx context.Context, snmp types.SNMPExecutor, port pon.Interface, logger *zap.Logger) ([]RegisteredONU, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	port = port.Olt()
	if err := port.Validate(); err != nil {
		return nil, err
	}
	logger = logger.With(zap.String("port", port.String()), zap.Uint32("ifindex", PonIfIndex(port)))

	serials, err := snmp.WalkSNMP(ctx, ColumnOID(OIDOnuSerial, port))
	if err != nil {
		return nil, fmt.Errorf("walk onu serials: %w", err)
	}

	column := func(oid string) map[int]interface{} {
		values, err := snmp.WalkSNMP(ctx, ColumnOID(oid, port))
		if err != nil {
			logger.Warn("snmp column walk failed", zap.String("oid", oid), zap.Error(err))
			return nil
		}
		return common.IndexedValues(values)
	}
	kinds := column(OIDOnuType)
	names := column(OIDOnuName)
	states := column(OIDOnuPhaseState)

	bySerial := common.IndexedValues(serials)
	onus := make([]RegisteredONU, 0, len(bySerial))
	for _, id := range common.SortedIndexes(bySerial) {
		if id < pon.MinONU || id > pon.MaxONU {
			logger.Debug("skipping out of range onu index", zap.Int("index", id))
			continue
		}
		serial, err := common.FormatGPONSerial(bySerial[id])
		if err != nil {
			logger.Warn("undecodable onu serial", zap.Int("onu", id), zap.Error(err))
			continue
		}

		o := RegisteredONU{
			Interface: port.Unit().WithID(uint8(id)),
			Serial:    serial,
		}
		if s, ok := common.ParseStringSNMPValue(kinds[id]); ok {
			o.Type = s
		}
		if s, ok := common.ParseStringSNMPValue(names[id]); ok {
			o.Name = s
		}
		if v, ok := common.ParseIntSNMPValue(states[id]); ok {
			o.State = PhaseState(v)
		}
		onus = append(onus, o)
	}

	logger.Debug("onu inventory", zap.Int("registered", len(onus)))
	return onus, nil
}

// UsedIDs returns the set of ONU ids taken by onus.
func UsedIDs(onus []RegisteredONU) map[uint8]bool {
	used := make(map[uint8]bool, len(onus))
	for _, o := range onus {
		used[o.Interface.ID] = true
	}
	return used
}

var sysDescrModel = regexp.MustCompile(`(?i)\bC[36][0-9]{2}\b`)

// DetectModel reads sysDescr and resolves the OLT model it names.
func DetectModel(ctx context.Context, snmp types.SNMPExecutor) (types.OltModel, error) {
	v, err := snmp.GetSNMP(ctx, OIDSysDescr)
	if err != nil {
		return "", fmt.Errorf("get sysDescr: %w", err)
	}
	descr, ok := common.ParseStringSNMPValue(v)
	if !ok {
		return "", fmt.Errorf("unexpected sysDescr type %T", v)
	}
	model, ok := types.ParseOltModel(sysDescrModel.FindString(descr))
	if !ok {
		return "", fmt.Errorf("unknown OLT model in sysDescr %q", descr)
	}
	return model, nil
}
