// Package engine hosts WebAssembly guests that call the bridge.
//
// An Engine owns a wazero runtime with a host module (named "env" unless
// configured otherwise) exporting processRust as (i32) -> (). Guests import
// it like any other host function:
//
//	(import "env" "processRust" (func $processRust (param i32)))
//
// Every call writes the bridge output to the engine's Output and increments
// bridge_host_calls_total in the engine's own prometheus registry.
//
// Usage:
//
//	eng, err := engine.New(ctx, &engine.Config{Output: os.Stdout})
//	if err != nil {
//	    return err
//	}
//	defer eng.Close(ctx)
//
//	inst, err := eng.Instantiate(ctx, wasmBytes, "guest")
//	if err != nil {
//	    return err
//	}
//	defer inst.Close(ctx)
//
//	_, err = inst.Call(ctx, "run", 42)
package engine
