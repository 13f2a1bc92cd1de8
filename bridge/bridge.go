// Package bridge implements the processRust bridge function shared by every
// host surface: the C ABI export, the WebAssembly host module and the CLI.
package bridge

import (
	"io"
	"os"
	"strconv"

	"github.com/wippyai/bridge-runtime/errors"
)

// ExportName is the symbol name hosts use to reach the bridge.
const ExportName = "processRust"

// ElementIndex is the position read from the fixed sequence.
const ElementIndex = 1

// Variant selects the output produced by a bridge call.
type Variant uint8

const (
	// VariantIndexed writes the tagged line followed by the selected element.
	VariantIndexed Variant = iota
	// VariantPlain writes a single line.
	VariantPlain
)

// Default is the variant exported as processRust.
const Default = VariantIndexed

func (v Variant) String() string {
	switch v {
	case VariantIndexed:
		return "indexed"
	case VariantPlain:
		return "plain"
	default:
		return "variant(" + strconv.Itoa(int(v)) + ")"
	}
}

// ParseVariant maps a configuration value to a Variant.
// The empty string selects Default.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "", "indexed":
		return VariantIndexed, nil
	case "plain":
		return VariantPlain, nil
	}
	return 0, errors.New(errors.PhaseConfig, errors.KindInvalidEnum).
		Value(s).
		Detail("unknown variant %q (want indexed or plain)", s).
		Build()
}

// Sequence returns a fresh copy of the fixed sequence.
func Sequence() [4]uint32 {
	return [4]uint32{0, 2, 4, 6}
}

// Element returns the element of Sequence at ElementIndex.
func Element() uint32 {
	seq := Sequence()
	return seq[ElementIndex]
}

// Format renders the complete output of one call.
func Format(v Variant, a uint32) []byte {
	buf := make([]byte, 0, 48)
	switch v {
	case VariantPlain:
		buf = append(buf, "test from rust ["...)
		buf = strconv.AppendUint(buf, uint64(a), 10)
		buf = append(buf, "]\n"...)
	default:
		buf = append(buf, "test xx from rust ["...)
		buf = strconv.AppendUint(buf, uint64(a), 10)
		buf = append(buf, "]\n"...)
		buf = strconv.AppendUint(buf, uint64(Element()), 10)
		buf = append(buf, '\n')
	}
	return buf
}

// Process writes the output of the default variant to w.
// Write errors are dropped: the bridge has no way to report them.
func Process(w io.Writer, a uint32) {
	ProcessVariant(w, Default, a)
}

// ProcessVariant writes the output of v to w in a single Write so that the
// lines of one call stay together on a shared writer.
func ProcessVariant(w io.Writer, v Variant, a uint32) {
	if w == nil {
		w = os.Stdout
	}
	_, _ = w.Write(Format(v, a))
}
