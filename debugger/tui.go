package debugger

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// TUI is a terminal front end for Debugger, built on tcell/tview the way
// the ARM teacher codebase's debugger.TUI was.
type TUI struct {
	Debugger *Debugger

	App              *tview.Application
	Pages            *tview.Pages
	MainLayout       *tview.Flex
	RegisterView     *tview.TextView
	DisassemblyView  *tview.TextView
	OutputView       *tview.TextView
	CommandInput     *tview.InputField
}

// NewTUI builds the panel layout around dbg without starting the event loop.
func NewTUI(dbg *Debugger) *TUI {
	t := &TUI{
		Debugger:        dbg,
		App:             tview.NewApplication(),
		Pages:           tview.NewPages(),
		RegisterView:    tview.NewTextView().SetDynamicColors(true),
		DisassemblyView: tview.NewTextView().SetDynamicColors(true),
		OutputView:      tview.NewTextView().SetDynamicColors(true),
	}
	t.RegisterView.SetBorder(true).SetTitle("Registers")
	t.DisassemblyView.SetBorder(true).SetTitle("Disassembly")
	t.OutputView.SetBorder(true).SetTitle("Output")

	t.CommandInput = tview.NewInputField().
		SetLabel("(rv32i-dbg) ").
		SetDoneFunc(t.onCommand)

	leftPanel := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(t.RegisterView, 0, 1, false).
		AddItem(t.DisassemblyView, 0, 1, false)

	rightPanel := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(t.OutputView, 0, 1, false).
		AddItem(t.CommandInput, 1, 0, true)

	t.MainLayout = tview.NewFlex().
		AddItem(leftPanel, 0, 1, false).
		AddItem(rightPanel, 0, 1, true)

	t.Pages.AddPage("main", t.MainLayout, true, true)
	t.App.SetRoot(t.Pages, true).SetFocus(t.CommandInput)

	t.refresh()
	return t
}

func (t *TUI) onCommand(key tcell.Key) {
	if key != tcell.KeyEnter {
		return
	}
	line := t.CommandInput.GetText()
	t.CommandInput.SetText("")

	if err := t.Debugger.ExecuteCommand(line); err != nil {
		t.Debugger.Printf("error: %v\n", err)
	}
	t.refresh()
}

func (t *TUI) refresh() {
	p := t.Debugger.Emulator.Processors[t.Debugger.Proc]

	regs := ""
	for i := 0; i < 32; i++ {
		regs += fmt.Sprintf("x%-2d = 0x%08x\n", i, p.Registers.Read(uint32(i)))
	}
	regs += fmt.Sprintf("pc  = 0x%08x\n", p.PC)
	t.RegisterView.SetText(regs)

	t.DisassemblyView.SetText(t.Debugger.DisassemblyText(10))

	if out := t.Debugger.GetOutput(); out != "" {
		fmt.Fprint(t.OutputView, out)
	}
}

// Run starts the TUI event loop. It blocks until the user quits.
func (t *TUI) Run() error {
	return t.App.Run()
}
