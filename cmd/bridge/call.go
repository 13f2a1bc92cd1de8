package main

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/bridge-runtime/bridge"
	bridgeerr "github.com/wippyai/bridge-runtime/errors"
)

func newCallCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "call <a>...",
		Short: "Invoke the bridge once per value",
		Example: `  bridge call 42
  bridge call --variant plain 0 1 2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseValues(args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, a := range values {
				bridge.ProcessVariant(out, opts.variant, a)
			}
			opts.log.Debug("bridge called", zap.Int("count", len(values)))
			return nil
		},
	}
}

func parseValues(args []string) ([]uint32, error) {
	values := make([]uint32, 0, len(args))
	for _, s := range args {
		a, err := parseValue(s)
		if err != nil {
			return nil, err
		}
		values = append(values, a)
	}
	return values, nil
}

// parseValue accepts a decimal u32.
func parseValue(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, bridgeerr.Overflow(bridgeerr.PhaseInput, s, "u32")
		}
		return 0, bridgeerr.New(bridgeerr.PhaseInput, bridgeerr.KindInvalidInput).
			Value(s).
			Cause(err).
			Detail("%q is not an unsigned decimal", s).
			Build()
	}
	return uint32(n), nil
}
