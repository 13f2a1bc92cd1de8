package main

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/wippyai/bridge-runtime/bridge"
)

func newDescribeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "Show the bridge signature and constants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sig := bridge.Signature()
			core, err := sig.CoreParams()
			if err != nil {
				return err
			}

			seq := bridge.Sequence()
			elems := make([]string, len(seq))
			for i, v := range seq {
				elems[i] = fmt.Sprint(v)
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Property", "Value")
			table.Append([]string{"C symbol", "void " + sig.Export + "(uint32_t a)"})
			table.Append([]string{"WIT", sig.WIT()})
			table.Append([]string{"Wasm import", fmt.Sprintf("%s.%s (%s) -> ()", opts.cfg.HostModule, sig.Export, strings.Join(core, ", "))})
			table.Append([]string{"Variant", opts.variant.String()})
			table.Append([]string{"Sequence", "[" + strings.Join(elems, ", ") + "]"})
			table.Append([]string{"Element", fmt.Sprintf("index %d = %d", bridge.ElementIndex, bridge.Element())})
			return table.Render()
		},
	}
}
