package bridge

import (
	"fmt"
	"strings"

	"go.bytecodealliance.org/wit"
)

// WITName is the kebab-case name of the bridge in WIT descriptions.
const WITName = "process-rust"

// FuncSignature describes the bridge in WIT terms.
type FuncSignature struct {
	Name    string
	Export  string
	Params  []wit.Param
	Results []wit.Type
}

// Signature returns the bridge's signature: one u32 parameter, no results.
func Signature() FuncSignature {
	return FuncSignature{
		Name:   WITName,
		Export: ExportName,
		Params: []wit.Param{
			{Name: "a", Type: wit.U32{}},
		},
	}
}

// WIT renders the signature as a WIT function declaration.
func (s FuncSignature) WIT() string {
	var b strings.Builder
	b.WriteString(s.Name)
	b.WriteString(": func(")
	for i, p := range s.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		b.WriteString(": ")
		b.WriteString(TypeName(p.Type))
	}
	b.WriteByte(')')
	switch len(s.Results) {
	case 0:
	case 1:
		b.WriteString(" -> ")
		b.WriteString(TypeName(s.Results[0]))
	default:
		names := make([]string, len(s.Results))
		for i, r := range s.Results {
			names[i] = TypeName(r)
		}
		b.WriteString(" -> tuple<")
		b.WriteString(strings.Join(names, ", "))
		b.WriteByte('>')
	}
	b.WriteByte(';')
	return b.String()
}

// CoreParams returns the core wasm value types the signature lowers to.
// Only primitive types are supported.
func (s FuncSignature) CoreParams() ([]string, error) {
	out := make([]string, 0, len(s.Params))
	for _, p := range s.Params {
		ct, ok := coreType(p.Type)
		if !ok {
			return nil, fmt.Errorf("param %s: no flat core type for %s", p.Name, TypeName(p.Type))
		}
		out = append(out, ct)
	}
	return out, nil
}

// TypeName returns the WIT spelling of a primitive type.
func TypeName(t wit.Type) string {
	switch v := t.(type) {
	case wit.Bool:
		return "bool"
	case wit.U8:
		return "u8"
	case wit.S8:
		return "s8"
	case wit.U16:
		return "u16"
	case wit.S16:
		return "s16"
	case wit.U32:
		return "u32"
	case wit.S32:
		return "s32"
	case wit.U64:
		return "u64"
	case wit.S64:
		return "s64"
	case wit.F32:
		return "f32"
	case wit.F64:
		return "f64"
	case wit.Char:
		return "char"
	case wit.String:
		return "string"
	case *wit.TypeDef:
		if v.Name != nil {
			return *v.Name
		}
		return "typedef"
	default:
		return fmt.Sprintf("%T", t)
	}
}

func coreType(t wit.Type) (string, bool) {
	switch t.(type) {
	case wit.Bool, wit.U8, wit.S8, wit.U16, wit.S16, wit.U32, wit.S32, wit.Char:
		return "i32", true
	case wit.U64, wit.S64:
		return "i64", true
	case wit.F32:
		return "f32", true
	case wit.F64:
		return "f64", true
	}
	return "", false
}
