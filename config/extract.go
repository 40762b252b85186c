package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/CaioVieiraF/olt-access/onu"
	"github.com/CaioVieiraF/olt-access/pon"
)

var (
	onuPattern = regexp.MustCompile(
		`^onu (?P<id>[1-9]|[1-9][0-9]|1[0-2][0-9]) type (?P<type>\S+) sn (?P<sn>\S+)(?: .*)?$`,
	)
	wanIPPattern = regexp.MustCompile(
		`^wan-ip (?:ipv4|\d+) mode (?:pppoe username (?P<user>\S+) password (?P<pass>\S+)|(?P<dhcp>dhcp)) vlan-profile (?P<vlan>\S+) host (?P<host>\d+)$`,
	)
)

// Diagnostic describes a dump line the extractor could not use.
type Diagnostic struct {
	Line    string
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %q", d.Message, d.Line)
}

// ExtractONUs rebuilds the units registered in the xpon field. OLT blocks
// contribute one unit per "onu <id> type <t> sn <s>" line; pon-onu-mng
// blocks replace the matching unit's services with one service per wan-ip
// line. OMCI blocks may appear before their OLT block. Lines that match no
// known grammar are ignored; wan-ip lines that fail to parse, OMCI blocks
// without a unit and repeated registrations are reported as diagnostics.
// A repeated registration replaces the earlier one.
func (c *Config) ExtractONUs() ([]onu.Onu, []Diagnostic) {
	trees, ok := c.Get(FieldXpon)
	if !ok {
		return nil, []Diagnostic{{Message: "no xpon field in configuration"}}
	}

	var (
		units []onu.Onu
		index = make(map[pon.Interface]int)
		diags []Diagnostic
	)

	for _, tree := range trees {
		iface, err := pon.Parse(tree.Command.String())
		if err != nil || iface.Level != pon.LevelGponOlt {
			continue
		}
		for _, child := range tree.Children {
			line := child.Command.String()
			m := onuPattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			id, _ := strconv.Atoi(m[onuPattern.SubexpIndex("id")])
			unit := onu.New(iface.WithID(uint8(id)), m[onuPattern.SubexpIndex("type")], m[onuPattern.SubexpIndex("sn")])

			if i, dup := index[unit.Interface]; dup {
				diags = append(diags, Diagnostic{Line: line, Message: "duplicate onu " + unit.Interface.String() + ", keeping the last"})
				units[i] = unit
				continue
			}
			index[unit.Interface] = len(units)
			units = append(units, unit)
		}
	}

	for _, tree := range trees {
		head := tree.Command.String()
		iface, err := pon.Parse(head)
		if err != nil || iface.Level != pon.LevelPonOnuMng {
			continue
		}
		i, found := index[iface.Unit()]
		if !found {
			diags = append(diags, Diagnostic{Line: head, Message: "management block without registered onu"})
			continue
		}

		var services []onu.Service
		for _, child := range tree.Children {
			line := child.Command.String()
			if !wanIPPattern.MatchString(line) {
				if strings.HasPrefix(line, "wan-ip ") {
					diags = append(diags, Diagnostic{Line: line, Message: "unrecognised wan-ip line"})
				}
				continue
			}
			vlan, err := ParseWanIP(line)
			if err != nil {
				diags = append(diags, Diagnostic{Line: line, Message: err.Error()})
				continue
			}
			services = append(services, onu.NewService(vlan))
		}
		units[i].Services = services
	}

	return units, diags
}

// ParseWanIP reads the VLAN and access service of a wan-ip line.
func ParseWanIP(line string) (onu.Vlan, error) {
	m := wanIPPattern.FindStringSubmatch(line)
	if m == nil {
		return onu.Vlan{}, fmt.Errorf("not a wan-ip line: %q", line)
	}
	group := func(name string) string { return m[wanIPPattern.SubexpIndex(name)] }

	id, err := onu.ParseVlanID(group("vlan"))
	if err != nil {
		return onu.Vlan{}, err
	}
	v := onu.NewVlan(id)
	if group("dhcp") != "" {
		v.SetDHCP()
	} else {
		v.SetPPPoE(group("user"), group("pass"))
	}
	return v, nil
}
