package command

import (
	"strings"

	"github.com/CaioVieiraF/olt-access/pon"
)

// WanMode is the addressing mode of a wan-ip line.
type WanMode interface {
	wanMode() string
}

// PPPoE dials with the given credentials.
type PPPoE struct {
	Username string
	Password string
}

func (m PPPoE) wanMode() string {
	return "mode pppoe username " + m.Username + " password " + m.Password
}

// DHCP obtains the WAN address by DHCP.
type DHCP struct{}

func (DHCP) wanMode() string { return "mode dhcp" }

// IngressType selects the traffic a security-mgmt rule applies to.
type IngressType interface {
	ingressType() string
}

// Iphost matches traffic arriving on WAN host n.
type Iphost uint8

func (n Iphost) ingressType() string { return "iphost " + itoa(int(n)) }

// Wan and Lan match all traffic on that side of the unit.
type (
	Wan struct{}
	Lan struct{}
)

func (Wan) ingressType() string { return "wan" }
func (Lan) ingressType() string { return "lan" }

// Protocol is a management protocol a security-mgmt rule governs.
type Protocol string

const (
	ProtocolWeb    Protocol = "Web"
	ProtocolTelnet Protocol = "Telnet"
	ProtocolSSH    Protocol = "Ssh"
	ProtocolFTP    Protocol = "Ftp"
	ProtocolSNMP   Protocol = "Snmp"
	ProtocolTR069  Protocol = "Tr069"
	ProtocolHTTPS  Protocol = "Https"
)

// ParseProtocol resolves a protocol name case-insensitively.
func ParseProtocol(s string) (Protocol, bool) {
	for _, p := range []Protocol{ProtocolWeb, ProtocolTelnet, ProtocolSSH, ProtocolFTP, ProtocolSNMP, ProtocolTR069, ProtocolHTTPS} {
		if strings.EqualFold(string(p), s) {
			return p, true
		}
	}
	return "", false
}

// Omci is the pon-onu-mng mode of one unit.
type Omci struct {
	iface pon.Interface
}

func (o Omci) Enter() Command { return New(o.iface.String()) }
func (o Omci) Exit() Command  { return Exit }

// Interface returns the unit being managed.
func (o Omci) Interface() pon.Interface { return o.iface }

func (Omci) Service(n uint8) OmciService {
	return OmciService{text: "service " + itoa(int(n))}
}

func (Omci) WanIP() OmciWanIP {
	return OmciWanIP{text: "wan-ip ipv4"}
}

func (Omci) SecurityMgmt(n uint8) OmciSecurityMgmt {
	return OmciSecurityMgmt{text: "security-mgmt " + itoa(int(n))}
}

type OmciService struct{ text string }

func (s OmciService) Gemport(n uint8) OmciServiceGemport {
	return OmciServiceGemport{text: s.text + " gemport " + itoa(int(n))}
}

type OmciServiceGemport struct{ text string }

func (s OmciServiceGemport) Run() Command          { return New(s.text) }
func (s OmciServiceGemport) Vlan(v uint16) Command { return New(s.text + " vlan " + itoa(int(v))) }

type OmciWanIP struct{ text string }

func (s OmciWanIP) Mode(m WanMode) OmciWanIPMode {
	return OmciWanIPMode{text: s.text + " " + m.wanMode()}
}

type OmciWanIPMode struct{ text string }

func (s OmciWanIPMode) VlanProfile(v string) OmciWanIPVlanProfile {
	return OmciWanIPVlanProfile{text: s.text + " vlan-profile " + v}
}

type OmciWanIPVlanProfile struct{ text string }

func (s OmciWanIPVlanProfile) Host(n uint8) Command { return New(s.text + " host " + itoa(int(n))) }

type OmciSecurityMgmt struct{ text string }

// State renders "state enable" or "state disable".
func (s OmciSecurityMgmt) State(enable bool) OmciSecurityState {
	state := "disable"
	if enable {
		state = "enable"
	}
	return OmciSecurityState{text: s.text + " state " + state}
}

type OmciSecurityState struct{ text string }

// Mode renders "mode forward" or "mode discard".
func (s OmciSecurityState) Mode(forward bool) OmciSecurityMode {
	mode := "discard"
	if forward {
		mode = "forward"
	}
	return OmciSecurityMode{text: s.text + " mode " + mode}
}

type OmciSecurityMode struct{ text string }

func (s OmciSecurityMode) IngressType(t IngressType) OmciSecurityIngress {
	return OmciSecurityIngress{text: s.text + " ingress-type " + t.ingressType()}
}

type OmciSecurityIngress struct{ text string }

func (s OmciSecurityIngress) Protocol(p Protocol) Command {
	return New(s.text + " protocol " + string(p))
}
