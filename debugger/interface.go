package debugger

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// RunCLI runs a plain stdin/stdout command loop over dbg, used when neither
// --tui nor --gui is requested.
func RunCLI(dbg *Debugger) error {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("(rv32i-dbg) ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "q" || line == "exit" {
			fmt.Println("exiting")
			break
		}

		if err := dbg.ExecuteCommand(line); err != nil {
			fmt.Printf("error: %v\n", err)
		}
		if out := dbg.GetOutput(); out != "" {
			fmt.Print(out)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("debugger: reading input: %w", err)
	}
	return nil
}

// RunTUI starts the tcell/tview front end over dbg.
func RunTUI(dbg *Debugger) error {
	return NewTUI(dbg).Run()
}

// RunGUI starts the fyne front end over dbg.
func RunGUI(dbg *Debugger) error {
	return NewGUI(dbg).Run()
}
