package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	oltaccess "github.com/CaioVieiraF/olt-access"
	"github.com/CaioVieiraF/olt-access/pon"
	"github.com/CaioVieiraF/olt-access/records"
	"github.com/CaioVieiraF/olt-access/script"
	"github.com/CaioVieiraF/olt-access/types"
	"github.com/CaioVieiraF/olt-access/vendors/zte"
)

type createOptions struct {
	onuParam   string
	paramsPath string
	vlan       uint16
	iface      string
	firstID    int
	model      string
	discover   bool
	nested     bool
	output     string
}

func newCreateCmd(a *app) *cobra.Command {
	var opts createOptions

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create the provisioning script of many ONUs from a CSV file",
		Long: `Create reads one ONU per CSV row (sn, pppoe_user, pppoe_password, model)
and writes one script provisioning all of them on a PON port.

The VLAN and port come either from --params (YAML with vlan, interface and
optional first_id, model, upload, download) or from --vlan and --interface.
With --discover the ids already registered on the port are read over SNMP
and skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.create(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.onuParam, "onu-param", "", "CSV file with the ONU serials and PPPoE credentials")
	flags.StringVar(&opts.paramsPath, "params", "", "parameter file (YAML/JSON)")
	flags.Uint16Var(&opts.vlan, "vlan", 0, "service VLAN")
	flags.StringVar(&opts.iface, "interface", "", "PON port, gpon_olt-1/<slot>/<port>")
	flags.IntVar(&opts.firstID, "first-id", pon.MinONU, "lowest ONU id to hand out")
	flags.StringVar(&opts.model, "model", "", "ONU type for rows without one")
	flags.BoolVar(&opts.discover, "discover", false, "skip ONU ids already registered (SNMP)")
	flags.BoolVar(&opts.nested, "nested", false, "write the nested configuration dump instead of executable lines")
	flags.StringVarP(&opts.output, "output", "o", "", "file to write the script to (stdout when empty)")
	_ = cmd.MarkFlagRequired("onu-param")
	cmd.MarkFlagsMutuallyExclusive("params", "vlan")
	cmd.MarkFlagsMutuallyExclusive("params", "interface")
	return cmd
}

func (a *app) create(cmd *cobra.Command, opts createOptions) error {
	params, err := loadParams(opts)
	if err != nil {
		return err
	}

	f, err := os.Open(opts.onuParam)
	if err != nil {
		return types.Wrap(types.KindIO, "open "+opts.onuParam, err)
	}
	defer f.Close()
	recs, err := records.LoadONURecords(f)
	if err != nil {
		return err
	}

	var used script.IDSet
	if opts.discover {
		used, err = a.discover(cmd.Context(), params.Interface)
		if err != nil {
			return err
		}
	}

	units, err := script.Build(recs, params, used)
	if err != nil {
		return err
	}
	a.log.Info("built onus", zap.Int("count", len(units)), zap.Stringer("interface", params.Interface))

	gen := a.generator()
	if opts.nested {
		c, err := gen.ConfigAll(units)
		if err != nil {
			return err
		}
		return writeOutput(cmd, opts.output, writeConfig(c))
	}

	lines, err := gen.Script(units)
	if err != nil {
		return err
	}
	return writeOutput(cmd, opts.output, func(w io.Writer) error {
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return types.Wrap(types.KindIO, "write script", err)
			}
		}
		return nil
	})
}

func loadParams(opts createOptions) (records.Params, error) {
	if opts.paramsPath != "" {
		f, err := os.Open(opts.paramsPath)
		if err != nil {
			return records.Params{}, types.Wrap(types.KindIO, "open "+opts.paramsPath, err)
		}
		defer f.Close()
		p, err := records.LoadParams(f)
		if err != nil {
			return records.Params{}, err
		}
		if opts.model != "" {
			p.Model = opts.model
		}
		return p, nil
	}

	if opts.vlan == 0 || opts.iface == "" {
		return records.Params{}, fmt.Errorf("either --params or both --vlan and --interface are required")
	}
	p, err := records.NewParams(opts.vlan, opts.iface, opts.firstID)
	if err != nil {
		return records.Params{}, err
	}
	p.Model = opts.model
	return p, nil
}

// discover returns the ONU ids already registered on port.
func (a *app) discover(ctx context.Context, port pon.Interface) (script.IDSet, error) {
	onus, err := a.inventory(ctx, port)
	if err != nil {
		return nil, err
	}
	return zte.UsedIDs(onus), nil
}

func (a *app) inventory(ctx context.Context, port pon.Interface) ([]zte.RegisteredONU, error) {
	eq, err := a.settings.Equipment()
	if err != nil {
		return nil, err
	}
	drv, err := oltaccess.NewSNMPExecutor(eq)
	if err != nil {
		return nil, err
	}
	if err := drv.Connect(ctx, eq); err != nil {
		return nil, err
	}
	defer drv.Disconnect(ctx)

	if model, err := zte.DetectModel(ctx, drv); err != nil {
		a.log.Debug("model detection failed", zap.Error(err))
	} else if model != eq.Model {
		a.log.Warn("configured model differs from the OLT", zap.String("configured", string(eq.Model)), zap.String("detected", string(model)))
	}

	return zte.Inventory(ctx, drv, port, a.log)
}
