package codegen

import "github.com/benjcooley/milo832/lang/ast"

// Symbol binds a source name to the register (or base register, for
// vectors/matrices) holding its value.
type Symbol struct {
	Name    string
	Type    ast.Type
	Reg     int // base register; vector/matrix components occupy Reg..Reg+N-1
	Storage ast.StorageClass
}

// SymbolTable is a flat, linearly-searched symbol list with last-wins
// shadowing: a new declaration of an existing name simply appends, and
// lookups scan from the end so the most recent declaration always wins.
// This mirrors the assembler's own label table rather than using scoped
// block environments, since the shading language subset has no nested
// redeclaration rules to enforce.
type SymbolTable struct {
	symbols []*Symbol
}

// Declare adds a new symbol, shadowing any earlier one with the same name.
func (t *SymbolTable) Declare(s *Symbol) {
	t.symbols = append(t.symbols, s)
}

// Lookup finds the most recently declared symbol with the given name.
func (t *SymbolTable) Lookup(name string) (*Symbol, bool) {
	for i := len(t.symbols) - 1; i >= 0; i-- {
		if t.symbols[i].Name == name {
			return t.symbols[i], true
		}
	}
	return nil, false
}
