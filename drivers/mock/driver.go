package mock

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/CaioVieiraF/olt-access/pon"
	"github.com/CaioVieiraF/olt-access/types"
)

// Driver simulates a ZTE OLT CLI and SNMP agent without connecting to
// real equipment. It tracks configuration modes and ONU registrations so
// provisioning scripts can be exercised end to end.
type Driver struct {
	config    *types.EquipmentConfig
	connected bool
	mu        sync.RWMutex

	cmdHistory []string
	modes      []mode
	onus       map[pon.Interface]registration

	rejects  map[string]string
	failures map[string]error
	walks    map[string]map[string]interface{}
}

type mode struct {
	name  string
	iface pon.Interface
}

type registration struct {
	Model  string
	Serial string
}

const (
	modeExec   = "exec"
	modeConfig = "config"
	modeOlt    = "olt"
	modeOnu    = "onu"
	modeVport  = "vport"
	modeOmci   = "omci"
)

// Canned replies in the equipment's own wording.
const (
	ReplyInvalidInput  = "%Error 20203: Invalid input detected at '^' marker."
	ReplyOnuExists     = "%Code 32310-GPONSRV : ONU already exist."
	ReplyOnuNotExist   = "%Code 32311-GPONSRV : ONU does not exist."
	ReplyNotConfigMode = "%Error 20200: Command not found in current mode."
)

var onuRegistration = regexp.MustCompile(`^onu (\d+) type (\S+) sn (\S+)`)

// NewDriver creates a new mock driver
func NewDriver(config *types.EquipmentConfig) (*Driver, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}

	return &Driver{
		config:   config,
		modes:    []mode{{name: modeExec}},
		onus:     make(map[pon.Interface]registration),
		rejects:  make(map[string]string),
		failures: make(map[string]error),
		walks:    make(map[string]map[string]interface{}),
	}, nil
}

// Connect simulates connecting to equipment
func (d *Driver) Connect(ctx context.Context, config *types.EquipmentConfig) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if config != nil {
		d.config = config
	}
	if err := ctx.Err(); err != nil {
		return types.Wrap(types.KindConnection, "mock connect", err)
	}

	d.connected = true
	d.modes = []mode{{name: modeExec}}
	d.recordCommand("connect")
	return nil
}

// Disconnect closes the simulated connection
func (d *Driver) Disconnect(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.connected = false
	d.recordCommand("disconnect")
	return nil
}

// IsConnected returns connection status
func (d *Driver) IsConnected() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.connected
}

// HealthCheck succeeds while connected
func (d *Driver) HealthCheck(ctx context.Context) error {
	if !d.IsConnected() {
		return types.Errorf(types.KindConnection, "health check", "not connected to device")
	}
	return nil
}

// Reject makes the simulated CLI answer command with the given error text.
func (d *Driver) Reject(command, reply string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rejects[command] = reply
}

// Fail makes command fail at the transport level with err.
func (d *Driver) Fail(command string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failures[command] = err
}

// SetWalk registers the values a walk of root returns, keyed by OID suffix.
func (d *Driver) SetWalk(root string, values map[string]interface{}) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.walks[strings.TrimPrefix(root, ".")] = values
}

// ExecCommand implements CLIExecutor
func (d *Driver) ExecCommand(ctx context.Context, command string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return "", types.Errorf(types.KindConnection, "exec", "not connected to device")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	d.recordCommand(command)

	if err, ok := d.failures[command]; ok {
		return "", types.Wrap(types.KindChannel, "exec "+command, err)
	}
	if reply, ok := d.rejects[command]; ok {
		return reply, nil
	}
	return d.apply(strings.TrimSpace(command)), nil
}

// apply updates the simulated state and returns the CLI reply.
func (d *Driver) apply(command string) string {
	current := d.modes[len(d.modes)-1]

	switch {
	case command == "":
		return ""
	case command == "configure terminal":
		if current.name != modeExec {
			return ReplyNotConfigMode
		}
		d.push(mode{name: modeConfig})
		return ""
	case command == "end":
		d.modes = d.modes[:1]
		return ""
	case command == "exit":
		if len(d.modes) > 1 {
			d.modes = d.modes[:len(d.modes)-1]
		}
		return ""
	case command == "terminal length 0":
		return ""
	case command == "show clock":
		return time.Now().UTC().Format("15:04:05 UTC Mon Jan 2 2006")
	case strings.HasPrefix(command, "show gpon onu state"):
		return d.onuState(command)
	}

	if iface, err := pon.Parse(command); err == nil && current.name != modeExec {
		return d.enter(iface)
	}

	if current.name == modeExec {
		return ReplyInvalidInput
	}

	if m := onuRegistration.FindStringSubmatch(command); m != nil {
		if current.name != modeOlt {
			return ReplyNotConfigMode
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n < pon.MinONU || n > pon.MaxONU {
			return ReplyInvalidInput
		}
		id := pon.NewOnu(current.iface.Slot, current.iface.Port, uint8(n))
		if _, exists := d.onus[id]; exists {
			return ReplyOnuExists
		}
		d.onus[id] = registration{Model: m[2], Serial: m[3]}
		return ""
	}

	// other sub-mode commands are accepted silently, like the real CLI
	return ""
}

// enter switches to the mode of iface, replacing any sub-mode.
func (d *Driver) enter(iface pon.Interface) string {
	next := mode{iface: iface}
	switch iface.Level {
	case pon.LevelGponOlt:
		next.name = modeOlt
	case pon.LevelGponOnu, pon.LevelPonOnuMng, pon.LevelVport:
		if _, ok := d.onus[iface.Unit()]; !ok {
			return ReplyOnuNotExist
		}
		next.name = map[pon.Level]string{
			pon.LevelGponOnu:   modeOnu,
			pon.LevelPonOnuMng: modeOmci,
			pon.LevelVport:     modeVport,
		}[iface.Level]
	default:
		return ReplyInvalidInput
	}
	d.modes = d.modes[:2]
	d.push(next)
	return ""
}

func (d *Driver) push(m mode) {
	d.modes = append(d.modes, m)
}

func (d *Driver) onuState(command string) string {
	port, err := pon.Parse(strings.TrimPrefix(command, "show gpon onu state "))
	if err != nil {
		return ReplyInvalidInput
	}

	var ids []pon.Interface
	for i := range d.onus {
		if i.Slot == port.Slot && i.Port == port.Port {
			ids = append(ids, i)
		}
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a].ID < ids[b].ID })

	var sb strings.Builder
	sb.WriteString("OnuIndex   Admin State  OMCC State  Phase State\n")
	sb.WriteString("---------------------------------------------\n")
	for _, i := range ids {
		sb.WriteString(fmt.Sprintf("1/%d/%d:%-4d enable       enable      working\n", i.Slot, i.Port, i.ID))
	}
	sb.WriteString(fmt.Sprintf("ONU Number: %d/%d", len(ids), len(ids)))
	return sb.String()
}

// ExecCommands implements CLIExecutor - executes multiple commands
func (d *Driver) ExecCommands(ctx context.Context, commands []string) ([]string, error) {
	results := make([]string, 0, len(commands))
	for _, cmd := range commands {
		output, err := d.ExecCommand(ctx, cmd)
		if err != nil {
			return results, err
		}
		results = append(results, output)
	}
	return results, nil
}

// GetSNMP returns a value registered with SetWalk under its full OID.
func (d *Driver) GetSNMP(ctx context.Context, oid string) (interface{}, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	oid = strings.TrimPrefix(oid, ".")
	for root, values := range d.walks {
		if !strings.HasPrefix(oid, root+".") {
			continue
		}
		if v, ok := values[oid[len(root)+1:]]; ok {
			return v, nil
		}
	}
	return nil, types.Errorf(types.KindChannel, "snmp get "+oid, "no such object")
}

// WalkSNMP returns the values registered with SetWalk for root.
func (d *Driver) WalkSNMP(ctx context.Context, oid string) (map[string]interface{}, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.connected {
		return nil, types.Errorf(types.KindConnection, "snmp walk", "not connected")
	}
	out := make(map[string]interface{})
	for k, v := range d.walks[strings.TrimPrefix(oid, ".")] {
		out[k] = v
	}
	return out, nil
}

// Registered returns the serial registered for the unit, if any.
func (d *Driver) Registered(unit pon.Interface) (model, serial string, ok bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	r, ok := d.onus[unit.Unit()]
	return r.Model, r.Serial, ok
}

// GetCommandHistory returns the command history (useful for testing)
func (d *Driver) GetCommandHistory() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	history := make([]string, len(d.cmdHistory))
	copy(history, d.cmdHistory)
	return history
}

func (d *Driver) recordCommand(cmd string) {
	d.cmdHistory = append(d.cmdHistory, cmd)
}

var (
	_ types.Driver       = (*Driver)(nil)
	_ types.CLIExecutor  = (*Driver)(nil)
	_ types.SNMPExecutor = (*Driver)(nil)
)
