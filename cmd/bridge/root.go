package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/wippyai/bridge-runtime/bridge"
	"github.com/wippyai/bridge-runtime/config"
	"github.com/wippyai/bridge-runtime/engine"
)

// options is shared by every subcommand. cfg and log are populated by the
// root command's PersistentPreRunE.
type options struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	variant bridge.Variant
	log     *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{v: config.New()}

	cmd := &cobra.Command{
		Use:   "bridge",
		Short: "Call the processRust bridge from the command line or from wasm guests",
		Long: `bridge drives the processRust bridge function: directly with "call",
from a WebAssembly guest with "run", or interactively.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if opts.log != nil {
				_ = opts.log.Sync()
			}
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.cfgFile, "config", "", "config file (yaml)")
	pf.String("variant", "", "output variant: indexed or plain")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	_ = opts.v.BindPFlag(config.KeyVariant, pf.Lookup("variant"))
	_ = opts.v.BindPFlag(config.KeyLogLevel, pf.Lookup("log-level"))

	cmd.AddCommand(
		newCallCmd(opts),
		newRunCmd(opts),
		newDescribeCmd(opts),
		newInteractiveCmd(opts),
	)
	return cmd
}

func (o *options) load() error {
	cfg, err := config.Load(o.v, o.cfgFile)
	if err != nil {
		return err
	}
	variant, err := cfg.BridgeVariant()
	if err != nil {
		return err
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}

	logCfg := zap.NewProductionConfig()
	logCfg.Level = zap.NewAtomicLevelAt(level)
	log, err := logCfg.Build()
	if err != nil {
		return err
	}

	o.cfg = cfg
	o.variant = variant
	o.log = log
	engine.SetLogger(log.Named("engine"))

	log.Debug("config loaded",
		zap.String("file", o.cfgFile),
		zap.Stringer("variant", variant),
		zap.String("host_module", cfg.HostModule))
	return nil
}
