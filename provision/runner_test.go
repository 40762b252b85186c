package provision

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/CaioVieiraF/olt-access/command"
	"github.com/CaioVieiraF/olt-access/drivers/mock"
	"github.com/CaioVieiraF/olt-access/onu"
	"github.com/CaioVieiraF/olt-access/pon"
	"github.com/CaioVieiraF/olt-access/script"
	"github.com/CaioVieiraF/olt-access/types"
)

func simulator(t *testing.T) *mock.Driver {
	t.Helper()
	d, err := mock.NewDriver(&types.EquipmentConfig{Name: "lab", Protocol: types.ProtocolMock})
	require.NoError(t, err)
	require.NoError(t, d.Connect(context.Background(), nil))
	return d
}

func pppoeScript(t *testing.T) []command.Command {
	t.Helper()
	u := onu.New(pon.NewOnu(1, 3, 5), "F670L", "ZTEGC0000005")
	v := onu.NewVlan(100)
	v.SetPPPoE("user1", "pass1")
	u.AddService(onu.NewService(v))

	cmds, err := script.Generator{}.Commands(u)
	require.NoError(t, err)
	return cmds
}

func TestRunProvisionsUnit(t *testing.T) {
	d := simulator(t)
	cmds := pppoeScript(t)

	registry := prometheus.NewRegistry()
	r := NewRunner(d, "lab", zaptest.NewLogger(t))
	r.Metrics = NewMetrics(registry)

	report, err := r.Run(context.Background(), cmds)
	require.NoError(t, err)

	assert.True(t, report.OK())
	assert.Equal(t, len(cmds), report.Succeeded)
	assert.Zero(t, report.Failed)
	assert.Len(t, report.RunID, 36)
	assert.Equal(t, "lab", report.Equipment)
	for i, res := range report.Results {
		assert.Equal(t, cmds[i].String(), res.Command)
		assert.Zero(t, res.ExitStatus)
	}

	model, serial, ok := d.Registered(pon.NewOnu(1, 3, 5))
	require.True(t, ok)
	assert.Equal(t, "F670L", model)
	assert.Equal(t, "ZTEGC0000005", serial)

	assert.Equal(t, float64(len(cmds)), testutil.ToFloat64(r.Metrics.commands.WithLabelValues("lab", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.Metrics.runs.WithLabelValues("lab", "success")))
}

func TestRunContinuesAfterRejection(t *testing.T) {
	d := simulator(t)
	cmds := pppoeScript(t)

	// second push: the registration is refused, everything else still runs
	_, err := NewRunner(d, "lab", nil).Run(context.Background(), cmds)
	require.NoError(t, err)

	report, err := NewRunner(d, "lab", nil).Run(context.Background(), cmds)
	require.NoError(t, err)

	assert.False(t, report.OK())
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, len(cmds)-1, report.Succeeded)

	failed := report.Results[2]
	assert.Equal(t, "onu 5 type F670L sn ZTEGC0000005", failed.Command)
	assert.Equal(t, 1, failed.ExitStatus)
	assert.Contains(t, failed.Error, "ONU_EXISTS")
	assert.Equal(t, mock.ReplyOnuExists, failed.Output)
}

func TestRunRecordsTransportFailure(t *testing.T) {
	d := simulator(t)
	d.Fail("tcont 1 profile 1G", errors.New("channel closed"))

	var echo bytes.Buffer
	r := NewRunner(d, "lab", nil)
	r.Echo = &echo

	report, err := r.Run(context.Background(), pppoeScript(t))
	require.NoError(t, err)
	require.Equal(t, 1, report.Failed)

	var failed types.CommandResult
	for _, res := range report.Results {
		if !res.OK() {
			failed = res
		}
	}
	assert.Equal(t, "tcont 1 profile 1G", failed.Command)
	assert.Equal(t, -1, failed.ExitStatus)
	assert.Contains(t, failed.Error, "channel closed")

	assert.Contains(t, echo.String(), "> configure terminal\n")
	assert.Contains(t, echo.String(), "[exit -1] exec tcont 1 profile 1G: channel closed\n")
}

func TestRunStopsOnCancel(t *testing.T) {
	d := simulator(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := NewRunner(d, "lab", nil).Run(ctx, pppoeScript(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, report.Results)
	assert.Empty(t, d.GetCommandHistory()[1:])
}

func TestRunEmptyScript(t *testing.T) {
	report, err := NewRunner(simulator(t), "lab", nil).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Empty(t, report.Results)
}

func TestWriteTextfile(t *testing.T) {
	registry := prometheus.NewRegistry()
	r := NewRunner(simulator(t), "lab", nil)
	r.Metrics = NewMetrics(registry)

	_, err := r.Run(context.Background(), []command.Command{command.New("show clock")})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "olt_access.prom")
	require.NoError(t, WriteTextfile(path, registry))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.Contains(text, `olt_access_commands_total{equipment="lab",result="success"} 1`), text)
	assert.Contains(t, text, "olt_access_last_run_timestamp_seconds")
}
