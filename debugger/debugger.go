package debugger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/benjcooley/milo832/vm"
)

// Debugger wraps a *vm.VM with breakpoints, command history, and label
// resolution — the SIMT analogue of the teacher's instruction-level
// Debugger, with ARM registers/flags replaced by the lane's register
// file, divergence/return stacks, and uniform/texture slots.
type Debugger struct {
	VM *vm.VM

	Breakpoints *BreakpointManager
	History     *CommandHistory

	// Labels maps assembler label names to word indices, for resolving
	// breakpoint targets and formatting step traces.
	Labels map[string]uint32

	Running bool

	LastCommand string
}

// NewDebugger wraps machine, ready to accept commands.
func NewDebugger(machine *vm.VM) *Debugger {
	return &Debugger{
		VM:          machine,
		Breakpoints: NewBreakpointManager(),
		History:     NewCommandHistory(),
		Labels:      make(map[string]uint32),
	}
}

// LoadLabels installs an assembler's resolved label table.
func (d *Debugger) LoadLabels(labels map[string]uint32) {
	d.Labels = labels
}

// ResolveAddress resolves a label name or a numeric (decimal or 0x-hex)
// string to a word index.
func (d *Debugger) ResolveAddress(s string) (uint32, error) {
	if addr, ok := d.Labels[s]; ok {
		return addr, nil
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseUint(s[2:], 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid address %q: %w", s, err)
		}
		return uint32(v), nil
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return uint32(v), nil
}

// Step executes a single instruction, returning false when the VM has
// stopped (halted, errored, or hit the watchdog).
func (d *Debugger) Step() bool {
	return d.VM.Step()
}

// Continue runs until a breakpoint is hit or the VM stops, returning the
// breakpoint that stopped it (nil if the VM simply halted/errored).
func (d *Debugger) Continue() *Breakpoint {
	for d.VM.Step() {
		if bp := d.Breakpoints.Get(d.VM.PC); bp != nil && bp.Enabled {
			return d.Breakpoints.ProcessHit(d.VM.PC)
		}
	}
	return nil
}

// Reset restores the VM to its power-on state without reloading the
// program, mirroring the teacher debugger's reset command.
func (d *Debugger) Reset() {
	d.VM.Reset()
}

// FormatRegisters renders the register file the way the TUI's register
// pane does, N per row.
func (d *Debugger) FormatRegisters(perRow int) string {
	var sb strings.Builder
	for i := 0; i < vm.NumRegisters; i++ {
		fmt.Fprintf(&sb, "r%-2d=%08x ", i, d.VM.Regs[i])
		if (i+1)%perRow == 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
