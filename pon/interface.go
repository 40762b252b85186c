// Package pon parses and formats ZTE GPON interface identifiers such as
// gpon_olt-1/1/3, gpon_onu-1/1/3:5 and vport-1/1/3.5:1.
package pon

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/CaioVieiraF/olt-access/types"
)

// Level is the hierarchical level of an interface. Kinds that are not
// modelled keep their name verbatim.
type Level string

const (
	LevelGponOlt   Level = "gpon_olt"
	LevelGponOnu   Level = "gpon_onu"
	LevelPonOnuMng Level = "pon-onu-mng"
	LevelVport     Level = "vport"
)

// Physical ranges of a ZTE chassis. The shelf is always 1.
const (
	Shelf   = 1
	MinSlot = 0
	MaxSlot = 19
	MinPort = 1
	MaxPort = 16
	MinONU  = 1
	MaxONU  = 129
)

var (
	// ErrNotInterface is returned for lines that do not contain an interface address.
	ErrNotInterface = errors.New("not an interface line")

	// ErrOutOfRange is returned when slot, port or id is outside the chassis range.
	ErrOutOfRange = errors.New("out of range")
)

var kindLevels = map[string]Level{
	"gpon-olt":    LevelGponOlt,
	"gpon_olt":    LevelGponOlt,
	"gpon-onu":    LevelGponOnu,
	"gpon_onu":    LevelGponOnu,
	"pon-onu-mng": LevelPonOnuMng,
	"vport":       LevelVport,
}

// <prefix><kind>[_-]1/<slot>/<port>[.<onu>][:<id>]
var interfacePattern = regexp.MustCompile(
	`^(?P<prefix>.*?)(?P<kind>[A-Za-z][A-Za-z0-9]*(?:[-_][A-Za-z][A-Za-z0-9]*)*)[-_]1/(?P<slot>\d+)/(?P<port>\d+)(?:\.(?P<onu>\d+))?(?::(?P<id>\d+))?\s*$`,
)

// Interface addresses a PON port, an ONU on it, or a vport of that ONU.
// ID is the ONU id (0 when absent); Service is the vport service index
// (0 unless Level is LevelVport).
type Interface struct {
	Level   Level
	Slot    uint8
	Port    uint8
	ID      uint8
	Service uint8
}

// NewOlt returns the OLT-side PON port interface.
func NewOlt(slot, port uint8) Interface {
	return Interface{Level: LevelGponOlt, Slot: slot, Port: port}
}

// NewOnu returns the ONU-side interface of unit id on a PON port.
func NewOnu(slot, port, id uint8) Interface {
	return Interface{Level: LevelGponOnu, Slot: slot, Port: port, ID: id}
}

// HasID reports whether the interface addresses a single ONU.
func (i Interface) HasID() bool {
	return i.ID != 0
}

// WithID returns a copy of i with a different ONU id.
func (i Interface) WithID(id uint8) Interface {
	i.ID = id
	return i
}

// Olt returns the PON port that i belongs to.
func (i Interface) Olt() Interface {
	return NewOlt(i.Slot, i.Port)
}

// Unit returns the ONU-side interface for the unit addressed by i.
func (i Interface) Unit() Interface {
	return NewOnu(i.Slot, i.Port, i.ID)
}

// Omci returns the OMCI management address of the unit addressed by i.
func (i Interface) Omci() Interface {
	return Interface{Level: LevelPonOnuMng, Slot: i.Slot, Port: i.Port, ID: i.ID}
}

// Vport returns the vport interface of service k (1-based) of the unit.
func (i Interface) Vport(k uint8) Interface {
	return Interface{Level: LevelVport, Slot: i.Slot, Port: i.Port, ID: i.ID, Service: k}
}

// SameUnit reports whether i and o address the same slot, port and ONU id,
// regardless of level.
func (i Interface) SameUnit(o Interface) bool {
	return i.Slot == o.Slot && i.Port == o.Port && i.ID == o.ID
}

// Validate checks the chassis ranges and the id rules of the level.
func (i Interface) Validate() error {
	if i.Slot > MaxSlot {
		return fmt.Errorf("%w: slot %d not in %d-%d", ErrOutOfRange, i.Slot, MinSlot, MaxSlot)
	}
	if i.Port < MinPort || i.Port > MaxPort {
		return fmt.Errorf("%w: port %d not in %d-%d", ErrOutOfRange, i.Port, MinPort, MaxPort)
	}
	if i.ID != 0 && i.ID > MaxONU {
		return fmt.Errorf("%w: onu id %d not in %d-%d", ErrOutOfRange, i.ID, MinONU, MaxONU)
	}

	switch i.Level {
	case LevelGponOlt:
		if i.ID != 0 {
			return fmt.Errorf("olt interface cannot carry onu id %d", i.ID)
		}
	case LevelGponOnu, LevelPonOnuMng:
		if i.ID == 0 {
			return fmt.Errorf("%s interface requires an onu id", i.Level)
		}
	case LevelVport:
		if i.ID == 0 || i.Service == 0 {
			return fmt.Errorf("vport interface requires an onu id and a service index")
		}
	}
	return nil
}

// String renders i in the equipment's own dialect.
func (i Interface) String() string {
	switch i.Level {
	case LevelGponOlt:
		return Format(i, "gpon_olt")
	case LevelGponOnu:
		return Format(i, "gpon_onu")
	case LevelPonOnuMng:
		return "pon-onu-mng " + Format(i, "gpon_onu")
	case LevelVport:
		return Format(i, "vport")
	default:
		return Format(i, string(i.Level))
	}
}

// Format renders i with an explicit kind token. OLT and ONU addresses use
// "/" separators and ":<id>"; vport addresses append ".<id>:<service>".
func Format(i Interface, kind string) string {
	base := fmt.Sprintf("%s-%d/%d/%d", kind, Shelf, i.Slot, i.Port)
	switch {
	case i.Service != 0:
		return fmt.Sprintf("%s.%d:%d", base, i.ID, i.Service)
	case i.ID != 0:
		return fmt.Sprintf("%s:%d", base, i.ID)
	default:
		return base
	}
}

// ParseError reports a line that could not be read as an interface address.
// It wraps ErrNotInterface or ErrOutOfRange when one of them applies.
type ParseError struct {
	Line string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse interface %q: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Kind classifies the failure for callers that switch on types.ErrorKind.
func (e *ParseError) Kind() types.ErrorKind {
	return types.KindGeneric
}

// Parse extracts an interface address from a CLI line such as
// "interface gpon_olt-1/1/3" or "pon-onu-mng gpon_onu-1/1/3:5".
// Callers scanning dumps treat any error as "not an interface line".
func Parse(line string) (Interface, error) {
	fail := func(err error) (Interface, error) {
		return Interface{}, &ParseError{Line: line, Err: err}
	}

	match := interfacePattern.FindStringSubmatch(strings.TrimSpace(line))
	if match == nil {
		return fail(ErrNotInterface)
	}
	group := func(name string) string {
		return match[interfacePattern.SubexpIndex(name)]
	}
	number := func(name string) (uint8, error) {
		raw := group(name)
		if raw == "" {
			return 0, nil
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v > 255 {
			return 0, fmt.Errorf("%w: %s %s", ErrOutOfRange, name, raw)
		}
		return uint8(v), nil
	}

	iface := Interface{Level: Level(group("kind"))}
	if level, ok := kindLevels[strings.ToLower(group("kind"))]; ok {
		iface.Level = level
	}
	if strings.TrimSpace(group("prefix")) == string(LevelPonOnuMng) {
		iface.Level = LevelPonOnuMng
	}

	var err error
	if iface.Slot, err = number("slot"); err != nil {
		return fail(err)
	}
	if iface.Port, err = number("port"); err != nil {
		return fail(err)
	}

	if group("onu") != "" {
		// vport: <port>.<onu>:<service>
		if group("id") == "" {
			return fail(fmt.Errorf("vport address without service index"))
		}
		if iface.ID, err = number("onu"); err != nil {
			return fail(err)
		}
		if iface.Service, err = number("id"); err != nil {
			return fail(err)
		}
		if iface.ID == 0 || iface.Service == 0 {
			return fail(fmt.Errorf("%w: id 0", ErrOutOfRange))
		}
	} else if group("id") != "" {
		if iface.ID, err = number("id"); err != nil {
			return fail(err)
		}
		if iface.ID == 0 {
			return fail(fmt.Errorf("%w: id 0", ErrOutOfRange))
		}
	}

	if err := iface.Validate(); err != nil {
		return fail(err)
	}
	return iface, nil
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(line string) Interface {
	i, err := Parse(line)
	if err != nil {
		panic(err)
	}
	return i
}
