// Package debugger is an interactive stepper over a *vm.VM showing the
// register file, divergence/return stack depths, and pc/cycle/status,
// with breakpoints keyed on program counter and step/continue/reset
// commands — the SIMT-lane analogue of the teacher's instruction
// debugger. It has no memory or uniform/texture slot views.
package debugger

import (
	"fmt"
	"sync"
)

// Breakpoint halts execution when the VM's program counter reaches
// Address, the same "address" concept as the teacher's emulator though
// here it indexes a word in the assembled program, not a byte in memory.
type Breakpoint struct {
	ID        int
	Address   uint32
	Enabled   bool
	Temporary bool
	HitCount  int
}

// BreakpointManager manages the set of active breakpoints.
type BreakpointManager struct {
	mu          sync.RWMutex
	breakpoints map[uint32]*Breakpoint
	nextID      int
}

// NewBreakpointManager returns an empty manager.
func NewBreakpointManager() *BreakpointManager {
	return &BreakpointManager{
		breakpoints: make(map[uint32]*Breakpoint),
		nextID:      1,
	}
}

// Add creates or re-enables a breakpoint at address.
func (bm *BreakpointManager) Add(address uint32, temporary bool) *Breakpoint {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bp, exists := bm.breakpoints[address]; exists {
		bp.Enabled = true
		bp.Temporary = temporary
		return bp
	}

	bp := &Breakpoint{ID: bm.nextID, Address: address, Enabled: true, Temporary: temporary}
	bm.breakpoints[address] = bp
	bm.nextID++
	return bp
}

// Delete removes a breakpoint by ID.
func (bm *BreakpointManager) Delete(id int) error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	for addr, bp := range bm.breakpoints {
		if bp.ID == id {
			delete(bm.breakpoints, addr)
			return nil
		}
	}
	return fmt.Errorf("breakpoint %d not found", id)
}

// Get returns the breakpoint at address, or nil.
func (bm *BreakpointManager) Get(address uint32) *Breakpoint {
	bm.mu.RLock()
	defer bm.mu.RUnlock()
	return bm.breakpoints[address]
}

// All returns every breakpoint in no particular order.
func (bm *BreakpointManager) All() []*Breakpoint {
	bm.mu.RLock()
	defer bm.mu.RUnlock()
	result := make([]*Breakpoint, 0, len(bm.breakpoints))
	for _, bp := range bm.breakpoints {
		result = append(result, bp)
	}
	return result
}

// ProcessHit increments the hit count for address and deletes the
// breakpoint if it's temporary, returning a snapshot copy (or nil if
// there's no breakpoint there).
func (bm *BreakpointManager) ProcessHit(address uint32) *Breakpoint {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	bp, exists := bm.breakpoints[address]
	if !exists {
		return nil
	}
	bp.HitCount++
	result := *bp
	if bp.Temporary {
		delete(bm.breakpoints, address)
	}
	return &result
}
