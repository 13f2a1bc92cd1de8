// Command libbridge builds the bridge as a C library.
//
//	go build -buildmode=c-shared -o libbridge.so ./cmd/libbridge
//	go build -buildmode=c-archive -o libbridge.a ./cmd/libbridge
//
// The generated header declares:
//
//	extern void processRust(uint32_t a);
package main

/*
#include <stdint.h>
*/
import "C"

import (
	"io"
	"os"

	"github.com/wippyai/bridge-runtime/bridge"
)

var stdout io.Writer = os.Stdout

//export processRust
func processRust(a C.uint32_t) {
	process(uint32(a))
}

func process(a uint32) {
	bridge.Process(stdout, a)
}

// Required by -buildmode=c-shared and c-archive.
func main() {}
