// Package bridgeruntime exposes the processRust bridge function to hosts
// written in other languages.
//
// The bridge takes an unsigned 32-bit integer and writes a diagnostic line
// embedding it, followed by element 1 of the fixed sequence [0, 2, 4, 6]:
//
//	test xx from rust [42]
//	2
//
// # Architecture Overview
//
//	bridgeruntime/
//	├── bridge/          The bridge function, its variants and WIT signature
//	├── engine/          wazero host module exposing env.processRust to wasm guests
//	├── config/          viper-backed settings (variant, log level, host module)
//	├── errors/          Structured error types for the host surfaces
//	└── cmd/
//	    ├── libbridge/   cgo export, built with -buildmode=c-shared or c-archive
//	    └── bridge/      CLI: call, run, describe, interactive
//
// # C hosts
//
//	go build -buildmode=c-shared -o libbridge.so ./cmd/libbridge
//
//	extern void processRust(uint32_t a);
//	processRust(10);
//
// # WebAssembly hosts
//
//	eng, err := engine.New(ctx, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Close(ctx)
//
//	inst, err := eng.Instantiate(ctx, wasmBytes, "guest")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer inst.Close(ctx)
//
//	_, err = inst.Call(ctx, "run", 42)
//
// # Error Handling
//
// The bridge function never fails; write errors are dropped. The engine,
// config and CLI return *errors.Error values carrying a Phase and Kind:
//
//	if errors.Is(err, &errors.Error{Phase: errors.PhaseRuntime, Kind: errors.KindNotFound}) {
//	    // guest has no such export
//	}
package bridgeruntime
