package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/CaioVieiraF/olt-access/records"
)

func newInventoryCmd(a *app) *cobra.Command {
	var iface string

	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "List the ONUs registered on a PON port (SNMP)",
		RunE: func(cmd *cobra.Command, args []string) error {
			port, err := records.ParsePort(iface)
			if err != nil {
				return err
			}

			onus, err := a.inventory(cmd.Context(), port)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ONU\tTYPE\tSERIAL\tSTATE\tNAME")
			for _, o := range onus {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", o.Interface, o.Type, o.Serial, o.State, o.Name)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&iface, "interface", "", "PON port, gpon_olt-1/<slot>/<port>")
	_ = cmd.MarkFlagRequired("interface")
	return cmd
}
