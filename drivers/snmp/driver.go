package snmp

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gosnmp/gosnmp"

	"github.com/CaioVieiraF/olt-access/types"
)

// Metadata keys read from types.EquipmentConfig
const (
	MetaCommunity = "snmp_community"
	MetaVersion   = "snmp_version"
	MetaPort      = "snmp_port"
	MetaRetries   = "snmp_retries"
)

// sysDescr.0
const sysDescrOID = "1.3.6.1.2.1.1.1.0"

// Driver implements types.Driver and types.SNMPExecutor
type Driver struct {
	config *types.EquipmentConfig
	snmp   *gosnmp.GoSNMP
}

// NewDriver creates a new SNMP driver
func NewDriver(config *types.EquipmentConfig) (*Driver, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}

	if config.Address == "" {
		return nil, fmt.Errorf("address is required")
	}

	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	return &Driver{
		config: config,
	}, nil
}

// client builds the gosnmp session parameters from the equipment config.
func (d *Driver) client() (*gosnmp.GoSNMP, error) {
	meta := d.config.Metadata

	version := gosnmp.Version2c
	switch meta[MetaVersion] {
	case "", "2c":
	case "1":
		version = gosnmp.Version1
	case "3":
		version = gosnmp.Version3
	default:
		return nil, fmt.Errorf("unsupported snmp version %q", meta[MetaVersion])
	}

	community := "public"
	if c, ok := meta[MetaCommunity]; ok && c != "" {
		community = c
	}

	port := 161
	if p, ok := meta[MetaPort]; ok {
		v, err := strconv.Atoi(p)
		if err != nil || v <= 0 || v > 65535 {
			return nil, fmt.Errorf("invalid snmp port %q", p)
		}
		port = v
	}

	retries := 3
	if r, ok := meta[MetaRetries]; ok {
		v, err := strconv.Atoi(r)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("invalid snmp retries %q", r)
		}
		retries = v
	}

	c := &gosnmp.GoSNMP{
		Target:    d.config.Address,
		Port:      uint16(port), //nolint:gosec // validated above
		Community: community,
		Version:   version,
		Timeout:   d.config.Timeout,
		Retries:   retries,
	}

	if version == gosnmp.Version3 {
		c.SecurityModel = gosnmp.UserSecurityModel
		c.SecurityParameters = &gosnmp.UsmSecurityParameters{
			UserName:                 d.config.Username,
			AuthenticationProtocol:   gosnmp.SHA,
			AuthenticationPassphrase: d.config.Password,
			PrivacyProtocol:          gosnmp.AES,
			PrivacyPassphrase:        d.config.Password,
		}
		c.MsgFlags = gosnmp.AuthPriv
	}
	return c, nil
}

// Connect opens the UDP session
func (d *Driver) Connect(ctx context.Context, config *types.EquipmentConfig) error {
	if config != nil {
		d.config = config
	}

	c, err := d.client()
	if err != nil {
		return types.Wrap(types.KindConnection, "snmp connect", err)
	}
	c.Context = ctx

	if err := c.Connect(); err != nil {
		return types.Wrap(types.KindConnection, "snmp connect "+d.config.Address, err)
	}

	d.snmp = c
	return nil
}

// Disconnect closes the session
func (d *Driver) Disconnect(ctx context.Context) error {
	if d.snmp != nil {
		err := d.snmp.Conn.Close()
		d.snmp = nil
		return err
	}
	return nil
}

// IsConnected returns true if connected
func (d *Driver) IsConnected() bool {
	return d.snmp != nil
}

// HealthCheck queries sysDescr
func (d *Driver) HealthCheck(ctx context.Context) error {
	_, err := d.GetSNMP(ctx, sysDescrOID)
	return err
}

// GetSNMP implements types.SNMPExecutor - retrieves a single SNMP value
func (d *Driver) GetSNMP(ctx context.Context, oid string) (interface{}, error) {
	if !d.IsConnected() {
		return nil, types.Errorf(types.KindConnection, "snmp get", "not connected")
	}
	d.snmp.Context = ctx

	result, err := d.snmp.Get([]string{oid})
	if err != nil {
		return nil, types.Wrap(types.KindChannel, "snmp get "+oid, err)
	}

	if len(result.Variables) == 0 {
		return nil, types.Errorf(types.KindChannel, "snmp get "+oid, "no result")
	}

	return decodePDU(result.Variables[0]), nil
}

// WalkSNMP implements types.SNMPExecutor - performs SNMP walk
func (d *Driver) WalkSNMP(ctx context.Context, oid string) (map[string]interface{}, error) {
	if !d.IsConnected() {
		return nil, types.Errorf(types.KindConnection, "snmp walk", "not connected")
	}
	d.snmp.Context = ctx

	results := make(map[string]interface{})

	walk := d.snmp.BulkWalk
	if d.snmp.Version == gosnmp.Version1 {
		walk = d.snmp.Walk
	}
	err := walk(oid, func(pdu gosnmp.SnmpPDU) error {
		if index, ok := suffix(oid, pdu.Name); ok {
			results[index] = decodePDU(pdu)
		}
		return nil
	})

	if err != nil {
		return nil, types.Wrap(types.KindChannel, "snmp walk "+oid, err)
	}

	return results, nil
}

// suffix returns the part of name below root. gosnmp reports names with
// a leading dot; roots may be written either way.
func suffix(root, name string) (string, bool) {
	root = strings.TrimPrefix(root, ".")
	name = strings.TrimPrefix(name, ".")
	if !strings.HasPrefix(name, root+".") {
		return "", false
	}
	return name[len(root)+1:], true
}

func decodePDU(pdu gosnmp.SnmpPDU) interface{} {
	switch pdu.Type {
	case gosnmp.OctetString:
		b, _ := pdu.Value.([]byte)
		return string(b)
	case gosnmp.Integer:
		v, _ := pdu.Value.(int)
		return int64(v)
	case gosnmp.Counter32, gosnmp.Gauge32:
		v, _ := pdu.Value.(uint)
		return uint64(v)
	case gosnmp.TimeTicks, gosnmp.Uinteger32:
		v, _ := pdu.Value.(uint32)
		return uint64(v)
	case gosnmp.Counter64:
		v, _ := pdu.Value.(uint64)
		return v
	default:
		return pdu.Value
	}
}

var (
	_ types.Driver       = (*Driver)(nil)
	_ types.SNMPExecutor = (*Driver)(nil)
)
