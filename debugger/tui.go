package debugger

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// TUI is a small interactive stepper over a Debugger: a register/stack
// pane, an output log, and a command line, the same panel-and-command-
// line shape as the teacher's TUI scaled down to what a single SIMT lane
// needs to show (no source/disassembly sync, no memory-trace views).
type TUI struct {
	Debugger *Debugger
	App      *tview.Application

	RegisterView *tview.TextView
	StackView    *tview.TextView
	OutputView   *tview.TextView
	CommandInput *tview.InputField
}

// NewTUI wires debugger into a ready-to-run TUI.
func NewTUI(debugger *Debugger) *TUI {
	t := &TUI{Debugger: debugger, App: tview.NewApplication()}
	t.initializeViews()
	t.buildLayout()
	t.RefreshAll()
	return t
}

func (t *TUI) initializeViews() {
	t.RegisterView = tview.NewTextView().SetDynamicColors(true)
	t.RegisterView.SetBorder(true).SetTitle(" Registers ")

	t.StackView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	t.StackView.SetBorder(true).SetTitle(" Divergence / Return Stacks ")

	t.OutputView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(true)
	t.OutputView.SetBorder(true).SetTitle(" Output ")

	t.CommandInput = tview.NewInputField().SetLabel("> ").SetFieldWidth(0)
	t.CommandInput.SetBorder(true).SetTitle(" Command ")
	t.CommandInput.SetDoneFunc(t.handleCommand)
}

func (t *TUI) buildLayout() {
	top := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(t.RegisterView, 0, 2, false).
		AddItem(t.StackView, 0, 1, false)

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(top, 0, 3, false).
		AddItem(t.OutputView, 8, 0, false).
		AddItem(t.CommandInput, 3, 0, true)

	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF5:
			t.executeCommand("continue")
			return nil
		case tcell.KeyF11:
			t.executeCommand("step")
			return nil
		case tcell.KeyCtrlC:
			t.App.Stop()
			return nil
		}
		return event
	})

	t.App.SetRoot(layout, true).SetFocus(t.CommandInput)
}

func (t *TUI) handleCommand(key tcell.Key) {
	if key != tcell.KeyEnter {
		return
	}
	cmd := t.CommandInput.GetText()
	if cmd == "" {
		return
	}
	t.Debugger.History.Add(cmd)
	t.executeCommand(cmd)
	t.CommandInput.SetText("")
}

// executeCommand runs one debugger command line: step, continue, reset,
// break ADDR, regs, or quit.
func (t *TUI) executeCommand(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}

	switch fields[0] {
	case "step", "s":
		t.Debugger.Step()
		t.log(fmt.Sprintf("stepped to pc=%d, status=%v", t.Debugger.VM.PC, t.Debugger.VM.Status))
	case "continue", "c":
		if bp := t.Debugger.Continue(); bp != nil {
			t.log(fmt.Sprintf("hit breakpoint %d at pc=%d", bp.ID, bp.Address))
		} else {
			t.log(fmt.Sprintf("run finished, status=%v", t.Debugger.VM.Status))
		}
	case "reset":
		t.Debugger.Reset()
		t.log("VM reset")
	case "break", "b":
		if len(fields) < 2 {
			t.log("usage: break ADDR")
			break
		}
		addr, err := t.Debugger.ResolveAddress(fields[1])
		if err != nil {
			t.log(err.Error())
			break
		}
		bp := t.Debugger.Breakpoints.Add(addr, false)
		t.log(fmt.Sprintf("breakpoint %d set at %d", bp.ID, bp.Address))
	case "regs", "r":
		t.log(t.Debugger.FormatRegisters(8))
	case "quit", "q":
		t.App.Stop()
		return
	default:
		t.log(fmt.Sprintf("unknown command %q", fields[0]))
	}
	t.RefreshAll()
}

func (t *TUI) log(s string) {
	fmt.Fprintln(t.OutputView, s)
}

// RefreshAll repaints every pane from current VM state.
func (t *TUI) RefreshAll() {
	t.RegisterView.SetText(t.Debugger.FormatRegisters(8))

	var sb strings.Builder
	fmt.Fprintf(&sb, "divergence depth: %d\n", t.Debugger.VM.DivergenceStack.Len())
	fmt.Fprintf(&sb, "return depth:     %d\n", t.Debugger.VM.ReturnStack.Len())
	fmt.Fprintf(&sb, "pc: %d   cycles: %d   status: %v\n", t.Debugger.VM.PC, t.Debugger.VM.Cycles, t.Debugger.VM.Status)
	t.StackView.SetText(sb.String())
}

// Run starts the TUI event loop.
func (t *TUI) Run() error {
	return t.App.Run()
}
