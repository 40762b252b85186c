package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/CaioVieiraF/olt-access/config"
)

const separator = "==============="

func newShowCmd(a *app) *cobra.Command {
	var from, field, output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the blocks of a configuration dump, field by field",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := readConfig(from)
			if err != nil {
				return err
			}

			return writeOutput(cmd, output, func(w io.Writer) error {
				if field == "" {
					for _, f := range c.Fields() {
						fmt.Fprintln(w, separator)
						fmt.Fprintf(w, "Showing commands in %s\n", f)
						if err := showField(w, c, f); err != nil {
							return err
						}
						fmt.Fprintln(w, separator)
					}
					return nil
				}

				f := config.Field(field)
				if !c.Has(f) {
					fmt.Fprintf(w, "The field `%s` does not exist.\n", f)
					return nil
				}
				fmt.Fprintln(w, separator)
				if err := showField(w, c, f); err != nil {
					return err
				}
				fmt.Fprintln(w, separator)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "configuration dump to read")
	cmd.Flags().StringVar(&field, "field", "", "only show this field (raw, xpon, if-intf, MSAN, ...)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write to (stdout when empty)")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

func showField(w io.Writer, c *config.Config, f config.Field) error {
	trees, _ := c.Get(f)
	sub := config.New()
	sub.Append(f, trees...)
	return writeConfig(sub)(w)
}
