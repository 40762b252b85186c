// Package zte holds the ZTE specific knowledge that sits next to the
// generic drivers: MIB OIDs, SNMP inventory and CLI error translation.
package zte

import (
	"fmt"

	"github.com/CaioVieiraF/olt-access/pon"
)

// ZTE C3xx GPON MIB OIDs (ZXGPON-SERVICE-MIB / ZXGPON-ONUMGMT-MIB)
const (
	// Enterprise OID prefix for ZTE
	OIDZTEEnterprise = "1.3.6.1.4.1.3902"

	// Standard MIB-II System OIDs (RFC 1213)
	OIDSysDescr = "1.3.6.1.2.1.1.1.0"
	OIDSysName  = "1.3.6.1.2.1.1.5.0"

	// ONU configuration table, index: <ponIfIndex>.<onuID>
	OIDOnuTable       = "1.3.6.1.4.1.3902.1012.3.28.1.1"
	OIDOnuType        = OIDOnuTable + ".1"
	OIDOnuName        = OIDOnuTable + ".2"
	OIDOnuDescription = OIDOnuTable + ".3"
	OIDOnuSerial      = OIDOnuTable + ".5"

	// ONU phase state, index: <ponIfIndex>.<onuID>
	OIDOnuPhaseState = "1.3.6.1.4.1.3902.1012.3.28.2.1.4"
)

// ponIfIndexBase is the ifIndex type nibble of GPON OLT ports on C3xx.
const ponIfIndexBase = 0x10000000

// PonIfIndex returns the C3xx ifIndex of the PON port i belongs to
// (gpon_olt-1/1/1 is 268501248).
func PonIfIndex(i pon.Interface) uint32 {
	return ponIfIndexBase | uint32(i.Slot)<<16 | uint32(i.Port)<<8
}

// ColumnOID returns the walk root of a table column for one PON port.
func ColumnOID(column string, port pon.Interface) string {
	return fmt.Sprintf("%s.%d", column, PonIfIndex(port))
}

// PhaseState is the ONU registration phase reported by the OLT.
type PhaseState int

const (
	PhaseUnknown    PhaseState = 0
	PhaseLogging    PhaseState = 1
	PhaseLOS        PhaseState = 2
	PhaseSyncMib    PhaseState = 3
	PhaseWorking    PhaseState = 4
	PhaseDyingGasp  PhaseState = 5
	PhaseAuthFailed PhaseState = 6
	PhaseOffline    PhaseState = 7
)

var phaseNames = map[PhaseState]string{
	PhaseLogging:    "logging",
	PhaseLOS:        "los",
	PhaseSyncMib:    "syncmib",
	PhaseWorking:    "working",
	PhaseDyingGasp:  "dyinggasp",
	PhaseAuthFailed: "authfailed",
	PhaseOffline:    "offline",
}

func (p PhaseState) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// Online reports whether the ONU completed registration.
func (p PhaseState) Online() bool {
	return p == PhaseWorking
}
