package engine

import (
	"context"
	"sort"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/bridge-runtime/bridge"
	"github.com/wippyai/bridge-runtime/errors"
)

// Instance is an instantiated guest module.
type Instance struct {
	engine   *Engine
	compiled wazero.CompiledModule
	module   api.Module
	name     string
}

// Instantiate compiles wasm and instantiates it. A non-empty name registers
// the instance so later guests can import from it. The guest's start
// function, if any, runs before Instantiate returns.
func (e *Engine) Instantiate(ctx context.Context, wasm []byte, name string) (*Instance, error) {
	if e.closed.Load() {
		return nil, errors.NotInitialized(errors.PhaseRuntime, "engine")
	}
	if len(wasm) == 0 {
		return nil, errors.InvalidInput(errors.PhaseLoad, "empty module")
	}

	compiled, err := e.runtime.CompileModule(ctx, wasm)
	if err != nil {
		return nil, errors.Load("compile module", err)
	}

	if missing := e.missingImports(compiled); len(missing) > 0 {
		_ = compiled.Close(ctx)
		return nil, errors.NewMissingImportsError(missing)
	}

	modCfg := wazero.NewModuleConfig().WithName(name)
	mod, err := e.runtime.InstantiateModule(ctx, compiled, modCfg)
	if err != nil {
		_ = compiled.Close(ctx)
		return nil, errors.Instantiation(name, err)
	}

	Logger().Debug("guest instantiated",
		zap.String("name", name),
		zap.Int("exports", len(compiled.ExportedFunctions())))

	return &Instance{
		engine:   e,
		compiled: compiled,
		module:   mod,
		name:     name,
	}, nil
}

// missingImports lists "module.name" keys for function imports nothing in the
// runtime provides.
func (e *Engine) missingImports(compiled wazero.CompiledModule) []string {
	var missing []string
	for _, def := range compiled.ImportedFunctions() {
		mod, name, ok := def.Import()
		if !ok {
			continue
		}
		if mod == e.hostModule {
			if name != bridge.ExportName {
				missing = append(missing, mod+"."+name)
			}
			continue
		}
		if e.runtime.Module(mod) == nil {
			missing = append(missing, mod+"."+name)
		}
	}
	return missing
}

// Name returns the name the instance was registered under.
func (i *Instance) Name() string {
	return i.name
}

// Exports returns the sorted names of the guest's exported functions.
func (i *Instance) Exports() []string {
	defs := i.module.ExportedFunctionDefinitions()
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call invokes an exported function. Every parameter must be i32; args are
// passed as unsigned 32-bit values. Cancelling ctx aborts a running call.
func (i *Instance) Call(ctx context.Context, fn string, args ...uint32) ([]uint64, error) {
	if i.engine.closed.Load() {
		return nil, errors.NotInitialized(errors.PhaseRuntime, "engine")
	}

	f := i.module.ExportedFunction(fn)
	if f == nil {
		return nil, errors.New(errors.PhaseRuntime, errors.KindNotFound).
			Module(i.name).
			Export(fn).
			Detail("export %q not found", fn).
			Build()
	}

	params := f.Definition().ParamTypes()
	if len(params) != len(args) {
		return nil, errors.New(errors.PhaseRuntime, errors.KindInvalidInput).
			Module(i.name).
			Export(fn).
			Value(len(args)).
			Detail("expected %d args, got %d", len(params), len(args)).
			Build()
	}
	for idx, p := range params {
		if p != api.ValueTypeI32 {
			return nil, errors.New(errors.PhaseRuntime, errors.KindUnsupported).
				Module(i.name).
				Export(fn).
				Detail("param %d has type %s, only i32 is supported", idx, api.ValueTypeName(p)).
				Build()
		}
	}

	stack := make([]uint64, len(args))
	for idx, a := range args {
		stack[idx] = api.EncodeU32(a)
	}

	results, err := f.Call(ctx, stack...)
	if err != nil {
		return nil, errors.Trap(i.name, fn, err)
	}
	return results, nil
}

// Close releases the instance and its compiled module.
func (i *Instance) Close(ctx context.Context) error {
	err := i.module.Close(ctx)
	if cerr := i.compiled.Close(ctx); err == nil {
		err = cerr
	}
	return err
}
