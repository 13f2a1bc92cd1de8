package engine

import (
	"context"
	"io"
	"os"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/bridge-runtime/bridge"
	"github.com/wippyai/bridge-runtime/errors"
)

// DefaultHostModule is the import module name guests use for the bridge.
const DefaultHostModule = "env"

// Config holds configuration for engine creation
type Config struct {
	// Output receives bridge output. nil means os.Stdout.
	Output io.Writer

	// HostModule names the module exporting processRust. Empty means "env".
	HostModule string

	// Variant selects the bridge output written for guest calls.
	Variant bridge.Variant

	// MemoryLimitPages sets the maximum memory per instance in pages (64KB each).
	// 0 means the wazero default.
	MemoryLimitPages uint32

	// Interpreter forces the interpreter instead of the compiler backend.
	Interpreter bool
}

// Engine runs guests against a single bridge host module.
type Engine struct {
	runtime    wazero.Runtime
	out        io.Writer
	hostModule string
	variant    bridge.Variant
	metrics    *metrics
	closed     atomic.Bool
}

// New creates a wazero runtime and instantiates the bridge host module in it.
func New(ctx context.Context, cfg *Config) (*Engine, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	var runtimeCfg wazero.RuntimeConfig
	if cfg.Interpreter {
		runtimeCfg = wazero.NewRuntimeConfigInterpreter()
	} else {
		runtimeCfg = wazero.NewRuntimeConfig()
	}
	if cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}
	// Guest calls stop when the caller's context is cancelled.
	runtimeCfg = runtimeCfg.WithCloseOnContextDone(true)

	e := &Engine{
		runtime:    wazero.NewRuntimeWithConfig(ctx, runtimeCfg),
		out:        cfg.Output,
		hostModule: cfg.HostModule,
		variant:    cfg.Variant,
		metrics:    newMetrics(),
	}
	if e.out == nil {
		e.out = os.Stdout
	}
	if e.hostModule == "" {
		e.hostModule = DefaultHostModule
	}

	if err := e.instantiateHost(ctx); err != nil {
		_ = e.runtime.Close(ctx)
		return nil, err
	}

	Logger().Debug("engine ready",
		zap.String("host_module", e.hostModule),
		zap.Stringer("variant", e.variant),
		zap.Bool("interpreter", cfg.Interpreter))
	return e, nil
}

func (e *Engine) instantiateHost(ctx context.Context) error {
	_, err := e.runtime.NewHostModuleBuilder(e.hostModule).
		NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(e.processRust), []api.ValueType{api.ValueTypeI32}, []api.ValueType{}).
		WithParameterNames("a").
		Export(bridge.ExportName).
		Instantiate(ctx)
	if err != nil {
		return errors.Registration(e.hostModule, bridge.ExportName, err)
	}
	return nil
}

// processRust is the host side of the guest import.
func (e *Engine) processRust(_ context.Context, mod api.Module, stack []uint64) {
	a := api.DecodeU32(stack[0])
	bridge.ProcessVariant(e.out, e.variant, a)
	e.metrics.observe(e.variant)

	if ce := Logger().Check(zap.DebugLevel, "bridge call"); ce != nil {
		caller := ""
		if mod != nil {
			caller = mod.Name()
		}
		ce.Write(zap.String("caller", caller), zap.Uint32("a", a))
	}
}

// HostModule returns the module name guests import the bridge from.
func (e *Engine) HostModule() string {
	return e.hostModule
}

// Variant returns the output variant used for guest calls.
func (e *Engine) Variant() bridge.Variant {
	return e.variant
}

// Gatherer exposes the engine's metrics.
func (e *Engine) Gatherer() prometheus.Gatherer {
	return e.metrics.registry
}

// WriteMetrics renders the engine's metrics in the text exposition format.
func (e *Engine) WriteMetrics(w io.Writer) error {
	return e.metrics.write(w)
}

// Close releases the runtime and every instance created from it.
func (e *Engine) Close(ctx context.Context) error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}
	return e.runtime.Close(ctx)
}
