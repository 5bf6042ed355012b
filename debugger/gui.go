package debugger

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// GUI is a desktop front end for Debugger, built on fyne.io/fyne/v2 the way
// the ARM teacher codebase's debugger.GUI was.
type GUI struct {
	Debugger *Debugger

	App    fyne.App
	Window fyne.Window

	RegisterView    *widget.TextGrid
	DisassemblyView *widget.TextGrid
	ConsoleOutput   *widget.TextGrid
	StatusLabel     *widget.Label
	CommandEntry    *widget.Entry
}

// NewGUI builds the fyne window around dbg without showing it.
func NewGUI(dbg *Debugger) *GUI {
	g := &GUI{
		Debugger:        dbg,
		App:             app.New(),
		RegisterView:    widget.NewTextGrid(),
		DisassemblyView: widget.NewTextGrid(),
		ConsoleOutput:   widget.NewTextGrid(),
		StatusLabel:     widget.NewLabel("ready"),
	}
	g.Window = g.App.NewWindow("RV32I Emulator Debugger")

	g.CommandEntry = widget.NewEntry()
	g.CommandEntry.SetPlaceHolder("step, continue, break <addr>, print x<n>, watch x<n>")
	g.CommandEntry.OnSubmitted = g.onCommand

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(fyne.NewStaticResource("step", nil), func() { g.onCommand("step") }),
		widget.NewToolbarAction(fyne.NewStaticResource("continue", nil), func() { g.onCommand("continue") }),
		widget.NewToolbarAction(fyne.NewStaticResource("reset", nil), func() { g.onCommand("reset") }),
	)

	left := container.NewVBox(widget.NewLabel("Registers"), g.RegisterView, widget.NewLabel("Disassembly"), g.DisassemblyView)
	right := container.NewBorder(widget.NewLabel("Console"), g.CommandEntry, nil, nil, g.ConsoleOutput)

	content := container.NewBorder(toolbar, g.StatusLabel, nil, nil, container.NewHSplit(left, right))
	g.Window.SetContent(content)
	g.Window.Resize(fyne.NewSize(900, 600))

	g.refresh()
	return g
}

func (g *GUI) onCommand(text string) {
	g.CommandEntry.SetText("")
	if err := g.Debugger.ExecuteCommand(text); err != nil {
		g.StatusLabel.SetText(fmt.Sprintf("error: %v", err))
	} else {
		g.StatusLabel.SetText(fmt.Sprintf("ran: %s", text))
	}
	g.refresh()
}

func (g *GUI) refresh() {
	p := g.Debugger.Emulator.Processors[g.Debugger.Proc]

	regs := ""
	for i := 0; i < 32; i++ {
		regs += fmt.Sprintf("x%-2d = 0x%08x\n", i, p.Registers.Read(uint32(i)))
	}
	regs += fmt.Sprintf("pc  = 0x%08x\n", p.PC)
	g.RegisterView.SetText(regs)

	g.DisassemblyView.SetText(g.Debugger.DisassemblyText(10))

	if out := g.Debugger.GetOutput(); out != "" {
		g.ConsoleOutput.SetText(g.ConsoleOutput.Text() + out)
	}
}

// Run shows the window and blocks until it is closed.
func (g *GUI) Run() error {
	g.Window.ShowAndRun()
	return nil
}
