package engine

// Minimal wasm module assembly for tests. Only what the guests below need:
// function imports, i32 params, exports, optional start function.

type guestImport struct {
	module string
	name   string
	params int
}

type guestFunc struct {
	export string
	params int
	body   []byte // instructions without the trailing end opcode
}

type guest struct {
	imports []guestImport
	funcs   []guestFunc
	start   int // function index, -1 for none
}

func uleb(v uint32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			out = append(out, b|0x80)
			continue
		}
		return append(out, b)
	}
}

func sleb(v int32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			return append(out, b)
		}
		out = append(out, b|0x80)
	}
}

func wasmName(s string) []byte {
	return append(uleb(uint32(len(s))), s...)
}

func section(id byte, body []byte) []byte {
	out := []byte{id}
	out = append(out, uleb(uint32(len(body)))...)
	return append(out, body...)
}

func vec(items [][]byte) []byte {
	out := uleb(uint32(len(items)))
	for _, it := range items {
		out = append(out, it...)
	}
	return out
}

// funcType encodes (param i32 * n) -> ().
func funcType(n int) []byte {
	out := []byte{0x60}
	out = append(out, uleb(uint32(n))...)
	for i := 0; i < n; i++ {
		out = append(out, 0x7f)
	}
	return append(out, 0x00)
}

func (g guest) encode() []byte {
	// One type per distinct arity, indexed by arity.
	maxParams := 0
	for _, imp := range g.imports {
		if imp.params > maxParams {
			maxParams = imp.params
		}
	}
	for _, f := range g.funcs {
		if f.params > maxParams {
			maxParams = f.params
		}
	}
	types := make([][]byte, maxParams+1)
	for i := range types {
		types[i] = funcType(i)
	}

	out := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	out = append(out, section(1, vec(types))...)

	if len(g.imports) > 0 {
		imps := make([][]byte, len(g.imports))
		for i, imp := range g.imports {
			b := append(wasmName(imp.module), wasmName(imp.name)...)
			b = append(b, 0x00)
			b = append(b, uleb(uint32(imp.params))...)
			imps[i] = b
		}
		out = append(out, section(2, vec(imps))...)
	}

	if len(g.funcs) > 0 {
		decls := make([][]byte, len(g.funcs))
		for i, f := range g.funcs {
			decls[i] = uleb(uint32(f.params))
		}
		out = append(out, section(3, vec(decls))...)

		var exports [][]byte
		for i, f := range g.funcs {
			if f.export == "" {
				continue
			}
			b := append(wasmName(f.export), 0x00)
			b = append(b, uleb(uint32(len(g.imports)+i))...)
			exports = append(exports, b)
		}
		if len(exports) > 0 {
			out = append(out, section(7, vec(exports))...)
		}
	}

	if g.start >= 0 {
		out = append(out, section(8, uleb(uint32(g.start)))...)
	}

	if len(g.funcs) > 0 {
		bodies := make([][]byte, len(g.funcs))
		for i, f := range g.funcs {
			body := append([]byte{0x00}, f.body...) // no locals
			body = append(body, 0x0b)
			bodies[i] = append(uleb(uint32(len(body))), body...)
		}
		out = append(out, section(10, vec(bodies))...)
	}
	return out
}

func localGet(i uint32) []byte { return append([]byte{0x20}, uleb(i)...) }
func i32Const(v int32) []byte  { return append([]byte{0x41}, sleb(v)...) }
func call(i uint32) []byte     { return append([]byte{0x10}, uleb(i)...) }

var unreachable = []byte{0x00}

// spin loops forever: loop (br 0) end
var spin = []byte{0x03, 0x40, 0x0c, 0x00, 0x0b}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// bridgeGuest imports processRust from module and exports:
//
//	run(a)   forwards a
//	twice(a) calls with a, then with 7
//	trap()   hits unreachable
func bridgeGuest(module string) []byte {
	return guest{
		imports: []guestImport{{module: module, name: "processRust", params: 1}},
		funcs: []guestFunc{
			{export: "run", params: 1, body: concat(localGet(0), call(0))},
			{export: "twice", params: 1, body: concat(localGet(0), call(0), i32Const(7), call(0))},
			{export: "trap", params: 0, body: unreachable},
		},
		start: -1,
	}.encode()
}

// startGuest calls processRust(10) from its start function.
func startGuest() []byte {
	return guest{
		imports: []guestImport{{module: "env", name: "processRust", params: 1}},
		funcs: []guestFunc{
			{params: 0, body: concat(i32Const(10), call(0))},
		},
		start: 1,
	}.encode()
}

// spinGuest exports spin(), which never returns on its own.
func spinGuest() []byte {
	return guest{
		funcs: []guestFunc{
			{export: "spin", params: 0, body: spin},
		},
		start: -1,
	}.encode()
}
