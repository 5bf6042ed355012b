// Package debugger provides interactive stepping over an emulator session,
// shared by a terminal UI (tcell/tview) and a graphical UI (fyne), the same
// split the ARM teacher codebase used between debugger.TUI and debugger.GUI.
package debugger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jchan-dev/rv32i-emu/tools"
	"github.com/jchan-dev/rv32i-emu/vm"
)

// StepMode is the debugger's current single-step disposition.
type StepMode int

const (
	StepNone StepMode = iota
	StepSingle
)

// Debugger drives one processor (index Proc) of an Emulator: breakpoints,
// watchpoints, command history, and step/continue control.
type Debugger struct {
	Emulator *vm.Emulator
	Proc     int

	Breakpoints *BreakpointManager
	Watchpoints *WatchpointManager
	History     *CommandHistory

	Running     bool
	StepMode    StepMode
	LastCommand string
	Output      strings.Builder
}

// NewDebugger wraps e's processor proc for interactive stepping.
func NewDebugger(e *vm.Emulator, proc int) *Debugger {
	return &Debugger{
		Emulator:    e,
		Proc:        proc,
		Breakpoints: NewBreakpointManager(),
		Watchpoints: NewWatchpointManager(),
		History:     NewCommandHistory(),
	}
}

func (d *Debugger) processor() *vm.Processor {
	return d.Emulator.Processors[d.Proc]
}

// ExecuteCommand parses and runs one command line.
func (d *Debugger) ExecuteCommand(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		line = d.LastCommand
	}
	if line != "" {
		d.History.Add(line)
		d.LastCommand = line
	}

	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}
	return d.handleCommand(strings.ToLower(parts[0]), parts[1:])
}

func (d *Debugger) handleCommand(cmd string, args []string) error {
	switch cmd {
	case "step", "s":
		return d.cmdStep()
	case "continue", "c":
		return d.cmdContinue()
	case "break", "b":
		return d.cmdBreak(args)
	case "delete", "d":
		return d.cmdDelete(args)
	case "watch", "w":
		return d.cmdWatch(args)
	case "print", "p":
		return d.cmdPrint(args)
	case "registers", "regs", "i":
		return d.cmdRegisters()
	case "disasm":
		return d.cmdDisasm(args)
	case "reset":
		d.processor().Reset()
		d.Println("processor reset")
		return nil
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func (d *Debugger) cmdStep() error {
	if err := d.Emulator.StepOne(d.Proc); err != nil {
		d.Printf("runtime error: %v\n", err)
		return err
	}
	d.Printf("pc=0x%08x\n", d.processor().PC)
	return nil
}

func (d *Debugger) cmdContinue() error {
	d.Running = true
	for d.Running {
		if stop, reason := d.ShouldBreak(); stop {
			d.Running = false
			d.Printf("stopped: %s at pc=0x%08x\n", reason, d.processor().PC)
			return nil
		}
		if err := d.Emulator.StepOne(d.Proc); err != nil {
			d.Running = false
			d.Printf("runtime error: %v\n", err)
			return err
		}
	}
	return nil
}

func (d *Debugger) cmdBreak(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: break <addr>")
	}
	addr, err := parseAddress(args[0])
	if err != nil {
		return err
	}
	bp := d.Breakpoints.AddBreakpoint(addr, false, "")
	d.Printf("breakpoint %d at 0x%08x\n", bp.ID, addr)
	return nil
}

func (d *Debugger) cmdDelete(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: delete <id>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid breakpoint id: %s", args[0])
	}
	if !d.Breakpoints.DeleteBreakpoint(id) {
		return fmt.Errorf("no breakpoint %d", id)
	}
	d.Printf("deleted breakpoint %d\n", id)
	return nil
}

func (d *Debugger) cmdWatch(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: watch x<n>")
	}
	reg, err := parseRegister(args[0])
	if err != nil {
		return err
	}
	wp := d.Watchpoints.Add(reg, d.processor().Registers.Read(reg))
	d.Printf("watchpoint %d on %s\n", wp.ID, wp.Expression)
	return nil
}

func (d *Debugger) cmdPrint(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: print x<n>")
	}
	reg, err := parseRegister(args[0])
	if err != nil {
		return err
	}
	d.Printf("x%d = 0x%08x\n", reg, d.processor().Registers.Read(reg))
	return nil
}

func (d *Debugger) cmdRegisters() error {
	p := d.processor()
	for i := 0; i < vm.RegisterCount; i++ {
		d.Printf("x%-2d = 0x%08x  ", i, p.Registers.Read(uint32(i)))
		if i%4 == 3 {
			d.Println()
		}
	}
	d.Printf("pc  = 0x%08x\n", p.PC)
	return nil
}

func (d *Debugger) cmdDisasm(args []string) error {
	count := 10
	if len(args) == 1 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			count = n
		}
	}
	d.Output.WriteString(d.DisassemblyText(count))
	return nil
}

// DisassemblyText renders count instructions starting at the processor's
// current PC, marking the current instruction, without touching the
// debugger's output buffer. Used by the TUI/GUI panels, which redraw on
// every command rather than draining Output.
func (d *Debugger) DisassemblyText(count int) string {
	p := d.processor()
	addr := p.PC
	var b strings.Builder
	for i := 0; i < count; i++ {
		word := d.Emulator.Memory.ReadWord(addr)
		marker := "  "
		if addr == p.PC {
			marker = "=>"
		}
		fmt.Fprintf(&b, "%s 0x%08x: %s\n", marker, addr, tools.Disassemble(word))
		addr += 4
	}
	return b.String()
}

// ShouldBreak reports whether execution should pause at the processor's
// current PC, and why.
func (d *Debugger) ShouldBreak() (bool, string) {
	p := d.processor()

	if d.StepMode == StepSingle {
		d.StepMode = StepNone
		return true, "single step"
	}

	if bp := d.Breakpoints.GetBreakpoint(p.PC); bp != nil && bp.Enabled {
		bp.HitCount++
		if bp.Temporary {
			d.Breakpoints.DeleteBreakpoint(bp.ID)
		}
		return true, fmt.Sprintf("breakpoint %d", bp.ID)
	}

	if wp, changed := d.Watchpoints.Check(p.Registers.Read); changed {
		return true, fmt.Sprintf("watchpoint %d: %s", wp.ID, wp.Expression)
	}

	return false, ""
}

// GetOutput returns and clears the output buffer.
func (d *Debugger) GetOutput() string {
	out := d.Output.String()
	d.Output.Reset()
	return out
}

func (d *Debugger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(&d.Output, format, args...)
}

func (d *Debugger) Println(args ...interface{}) {
	fmt.Fprintln(&d.Output, args...)
}

func parseAddress(s string) (uint32, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid address: %s", s)
	}
	return uint32(v), nil
}

func parseRegister(s string) (uint32, error) {
	s = strings.TrimPrefix(s, "x")
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil || v >= vm.RegisterCount {
		return 0, fmt.Errorf("invalid register: %s", s)
	}
	return uint32(v), nil
}
