// Package asm is the Milo832 symbolic assembler: a two-pass encoder that
// turns the assembly text codegen emits (or a human writes by hand) into
// a stream of 64-bit instruction words plus a resolved `.data` constant
// pool.
package asm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/benjcooley/milo832/diag"
	"github.com/benjcooley/milo832/isa"
)

// fieldsForForm lists, in textual operand order, which encoded field each
// operand character of a mnemonic's OperandForm maps onto.
var fieldsForForm = map[isa.OperandForm][]string{
	"":     {},
	"r":    {"rd"},
	"i":    {"imm"},
	"l":    {"imm"},
	"rr":   {"rd", "rs1"},
	"rri":  {"rd", "rs1", "imm"},
	"rrr":  {"rd", "rs1", "rs2"},
	"rrl":  {"rs1", "rs2", "imm"},
	"rrrr": {"rd", "rs1", "rs2", "rs3"},
}

// unresolvedRef records a label operand that couldn't be resolved when its
// instruction was first encoded.
type unresolvedRef struct {
	wordIndex int
	label     string
	pos       diag.Position
}

// Assembler holds per-instance assembly state: the reference C
// implementation keeps its label table and unresolved list in static
// globals, which makes assembling two programs concurrently (or twice in
// the same process) corrupt each other's labels. Here that state lives on
// the Assembler value instead.
type Assembler struct {
	Errors *diag.ErrorList

	words      []isa.Word
	labels     map[string]uint32
	unresolved []unresolvedRef

	dataBase    uint32
	data        map[uint32]uint32
	dataOrder   []uint32

	filename string
}

// New returns an Assembler with its constant-pool base set to the
// reference default (0x1000).
func New(filename string) *Assembler {
	return &Assembler{
		Errors:   &diag.ErrorList{},
		labels:   make(map[string]uint32),
		dataBase: 0x1000,
		data:     make(map[uint32]uint32),
		filename: filename,
	}
}

// Assemble parses and encodes an entire program, then resolves every
// forward-referenced label. It returns the encoded words regardless of
// whether errors were recorded — callers should check Errors.HasErrors()
// before trusting the result.
func (a *Assembler) Assemble(source string) []uint64 {
	for i, raw := range strings.Split(source, "\n") {
		a.assembleLine(raw, i+1)
	}
	a.resolve()

	out := make([]uint64, len(a.words))
	for i, w := range a.words {
		out[i] = uint64(w)
	}
	return out
}

// Labels returns the resolved label -> word-index table, letting a
// debugger or disassembler resolve addresses back to names.
func (a *Assembler) Labels() map[string]uint32 {
	return a.labels
}

// DataEntries returns the resolved `.data` pool as (address, value) pairs
// in declaration order.
func (a *Assembler) DataEntries() []DataEntry {
	entries := make([]DataEntry, len(a.dataOrder))
	for i, addr := range a.dataOrder {
		entries[i] = DataEntry{Addr: addr, Value: a.data[addr]}
	}
	return entries
}

// DataEntry is one resolved `.data ADDR, VALUE` directive.
type DataEntry struct {
	Addr  uint32
	Value uint32
}

func (a *Assembler) pos(line int) diag.Position {
	return diag.Position{Filename: a.filename, Line: line}
}

func (a *Assembler) errorf(line int, kind diag.ErrorKind, format string, args ...interface{}) {
	a.Errors.Add(diag.NewError(a.pos(line), kind, fmt.Sprintf(format, args...)))
}

func (a *Assembler) assembleLine(raw string, line int) {
	text := stripComment(raw)
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	if idx := labelPrefixEnd(text); idx >= 0 {
		name := strings.TrimSpace(text[:idx])
		if _, dup := a.labels[name]; dup {
			a.errorf(line, diag.ErrorDuplicateLabel, "duplicate label %q", name)
		} else {
			a.labels[name] = uint32(len(a.words))
		}
		text = strings.TrimSpace(text[idx+1:])
		if text == "" {
			return
		}
	}

	if strings.HasPrefix(text, ".data") {
		a.assembleData(text, line)
		return
	}

	a.assembleInstruction(text, line)
}

// stripComment removes a trailing `;` or `#` comment, respecting neither
// as special inside the line otherwise.
func stripComment(s string) string {
	if i := strings.IndexAny(s, ";#"); i >= 0 {
		return s[:i]
	}
	return s
}

// labelPrefixEnd returns the index of a leading "label:" prefix's colon,
// or -1 if the line doesn't start with one.
func labelPrefixEnd(text string) int {
	i := strings.IndexByte(text, ':')
	if i < 0 {
		return -1
	}
	name := strings.TrimSpace(text[:i])
	if name == "" || strings.ContainsAny(name, " \t") {
		return -1
	}
	return i
}

func (a *Assembler) assembleData(text string, line int) {
	rest := strings.TrimSpace(strings.TrimPrefix(text, ".data"))
	parts := strings.SplitN(rest, ",", 2)
	if len(parts) != 2 {
		a.errorf(line, diag.ErrorSyntax, ".data requires ADDR, VALUE")
		return
	}
	addr, err := parseUint(strings.TrimSpace(parts[0]))
	if err != nil {
		a.errorf(line, diag.ErrorInvalidOperand, "invalid .data address: %v", err)
		return
	}
	if addr&0x3 != 0 {
		a.errorf(line, diag.ErrorInvalidOperand, ".data address 0x%X is not 4-byte aligned", addr)
		return
	}
	value, err := parseDataValue(strings.TrimSpace(parts[1]))
	if err != nil {
		a.errorf(line, diag.ErrorInvalidOperand, "invalid .data value: %v", err)
		return
	}
	if _, exists := a.data[addr]; !exists {
		a.dataOrder = append(a.dataOrder, addr)
	}
	a.data[addr] = value
}

func (a *Assembler) assembleInstruction(text string, line int) {
	mnemText, operandText := splitMnemonic(text)
	entry, ok := isa.Lookup(mnemText)
	if !ok {
		a.errorf(line, diag.ErrorInvalidInstruction, "unknown mnemonic %q", mnemText)
		return
	}

	fields := fieldsForForm[entry.Form]
	var operands []string
	if operandText != "" {
		operands = splitOperands(operandText)
	}
	if len(operands) != len(fields) {
		a.errorf(line, diag.ErrorInvalidOperand, "%s expects %d operand(s), got %d", mnemText, len(fields), len(operands))
		return
	}

	var rd, rs1, rs2, rs3 uint8
	var imm int32
	wordIndex := len(a.words)

	for i, field := range fields {
		op := strings.TrimSpace(operands[i])
		switch field {
		case "rd":
			rd = a.parseRegister(op, line)
		case "rs1":
			rs1 = a.parseRegister(op, line)
		case "rs2":
			rs2 = a.parseRegister(op, line)
		case "rs3":
			rs3 = a.parseRegister(op, line)
		case "imm":
			if addr, ok := a.labels[op]; ok {
				imm = int32(addr)
			} else if looksLikeLabel(op) {
				a.unresolved = append(a.unresolved, unresolvedRef{wordIndex: wordIndex, label: op, pos: a.pos(line)})
			} else {
				v, err := parseImmediate(op)
				if err != nil {
					a.errorf(line, diag.ErrorInvalidOperand, "invalid immediate %q: %v", op, err)
					return
				}
				imm = v
			}
		}
	}

	// No assembly syntax exposes the predicate guard operand, so every
	// instruction is encoded with the reference assembler's default
	// nibble: 0x7, "always execute".
	a.words = append(a.words, isa.Encode(entry.Opcode, rd, rs1, rs2, 0x7, rs3, imm))
}

func (a *Assembler) parseRegister(s string, line int) uint8 {
	s = strings.TrimSpace(s)
	if len(s) < 2 || (s[0] != 'r' && s[0] != 'R') {
		a.errorf(line, diag.ErrorInvalidOperand, "expected register, got %q", s)
		return 0
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || n < 0 || n > 63 {
		a.errorf(line, diag.ErrorInvalidOperand, "invalid register %q", s)
		return 0
	}
	return uint8(n)
}

// looksLikeLabel reports whether an unresolved immediate operand is a bare
// identifier (a label reference) rather than a malformed number.
func looksLikeLabel(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c == '.'
}

func parseImmediate(s string) (int32, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseInt(s[2:], 16, 64)
		return int32(v), err
	}
	v, err := strconv.ParseInt(s, 10, 64)
	return int32(v), err
}

func parseUint(s string) (uint32, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseUint(s[2:], 16, 32)
		return uint32(v), err
	}
	v, err := strconv.ParseUint(s, 10, 32)
	return uint32(v), err
}

// parseDataValue accepts a decimal/hex integer or a dot-containing float
// literal, returning its raw 32-bit pattern.
func parseDataValue(s string) (uint32, error) {
	if strings.Contains(s, ".") {
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return 0, err
		}
		return floatBits(float32(f)), nil
	}
	return parseUint(s)
}

func splitMnemonic(text string) (mnemonic, rest string) {
	i := strings.IndexAny(text, " \t")
	if i < 0 {
		return text, ""
	}
	return text[:i], strings.TrimSpace(text[i+1:])
}

func splitOperands(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// resolve patches every previously unresolved label operand, replacing the
// word's full low 32 bits with the label's address — matching the
// reference assembler's milo_asm_resolve, which overwrites
// (word & 0xFFFFFFFF00000000) | address rather than OR-ing into the
// 20-bit immediate field alone.
func (a *Assembler) resolve() {
	for _, ref := range a.unresolved {
		addr, ok := a.labels[ref.label]
		if !ok {
			a.Errors.Add(diag.NewError(ref.pos, diag.ErrorUndefinedLabel, fmt.Sprintf("undefined label %q", ref.label)))
			continue
		}
		w := a.words[ref.wordIndex]
		a.words[ref.wordIndex] = isa.Word(uint64(w)&0xFFFFFFFF00000000 | uint64(addr))
	}
}
