package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/bridge-runtime/engine"
	bridgeerr "github.com/wippyai/bridge-runtime/errors"
)

// entryPoints are tried in order when --func is not given.
var entryPoints = []string{"run", "main"}

func newRunCmd(opts *options) *cobra.Command {
	var (
		funcName    string
		rawArgs     []string
		modName     string
		showMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "run <guest.wasm>",
		Short: "Run a WebAssembly guest that imports processRust",
		Long: `run instantiates a core WebAssembly module with the bridge available as
an import and calls one of its exports. Guests import the bridge as:

  (import "env" "processRust" (func (param i32)))

The module's start function runs during instantiation. Without --func the
first of "run" or "main" that the guest exports is called, if any.`,
		Example: `  bridge run guest.wasm --arg 42
  bridge run guest.wasm --func twice --arg 5 --metrics`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			values, err := parseValues(rawArgs)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return bridgeerr.Load("read "+args[0], err)
			}

			eng, err := engine.New(ctx, &engine.Config{
				Output:           cmd.OutOrStdout(),
				HostModule:       opts.cfg.HostModule,
				Variant:          opts.variant,
				MemoryLimitPages: opts.cfg.MemoryLimitPages,
				Interpreter:      opts.cfg.Interpreter,
			})
			if err != nil {
				return err
			}
			defer eng.Close(ctx)

			inst, err := eng.Instantiate(ctx, data, modName)
			if err != nil {
				return err
			}
			defer inst.Close(ctx)

			fn := funcName
			if fn == "" {
				fn = pickEntryPoint(inst.Exports())
			}
			if fn != "" {
				opts.log.Debug("calling guest",
					zap.String("module", modName),
					zap.String("func", fn),
					zap.Uint32s("args", values))

				results, err := inst.Call(ctx, fn, values...)
				if err != nil {
					return err
				}
				for i, r := range results {
					fmt.Fprintf(cmd.ErrOrStderr(), "result[%d] = %d\n", i, r)
				}
			} else if len(values) > 0 {
				return bridgeerr.InvalidInput(bridgeerr.PhaseInput, "--arg given but no function to call (use --func)")
			}

			if showMetrics {
				return eng.WriteMetrics(cmd.ErrOrStderr())
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&funcName, "func", "", "exported function to call")
	f.StringSliceVar(&rawArgs, "arg", nil, "u32 argument (repeatable)")
	f.StringVar(&modName, "name", "guest", "module name to register the guest under")
	f.BoolVar(&showMetrics, "metrics", false, "print host call metrics to stderr when done")
	return cmd
}

func pickEntryPoint(exports []string) string {
	for _, want := range entryPoints {
		for _, name := range exports {
			if name == want {
				return name
			}
		}
	}
	return ""
}
