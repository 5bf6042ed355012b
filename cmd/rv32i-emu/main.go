// Command rv32i-emu is the RV32I emulator's command-line entry point: it
// runs, disassembles, or lints a raw program image, or drives an
// interactive debugger or remote API session over one.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jchan-dev/rv32i-emu/api"
	"github.com/jchan-dev/rv32i-emu/config"
	"github.com/jchan-dev/rv32i-emu/debugger"
	"github.com/jchan-dev/rv32i-emu/loader"
	"github.com/jchan-dev/rv32i-emu/tools"
	"github.com/jchan-dev/rv32i-emu/vm"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rv32i-emu",
		Short: "A user-mode RV32I functional emulator",
	}

	root.AddCommand(newRunCmd(), newDisasmCmd(), newLintCmd(), newDebugCmd(), newServeCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var memSize int

	cmd := &cobra.Command{
		Use:   "run <program>",
		Short: "Load and run a raw RV32I program image to completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := vm.NewEmulator(memSize, 1)
			program, err := loader.ReadProgramFile(args[0])
			if err != nil {
				return err
			}

			state, err := e.Stream(0, program)
			p := e.Processors[0]
			printRegisters(p)

			switch state {
			case vm.StateIllegalInstruction:
				return err
			case vm.StateCycleLimit:
				fmt.Println("stopped: cycle limit reached")
			default:
				fmt.Println("halted")
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&memSize, "memory-size", "m", 1024, "memory size in bytes")
	return cmd
}

func printRegisters(p *vm.Processor) {
	for i := 0; i < vm.RegisterCount; i++ {
		fmt.Printf("x%-2d = 0x%08x\n", i, p.Registers.Read(uint32(i)))
	}
	fmt.Printf("pc  = 0x%08x\n", p.PC)
}

func newDisasmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disasm <program>",
		Short: "Disassemble a raw RV32I program image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := loader.ReadProgramFile(args[0])
			if err != nil {
				return err
			}
			fmt.Print(tools.DisassembleProgram(program, 0))
			return nil
		},
	}
}

func newLintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint <program>",
		Short: "Statically scan a program image for illegal instructions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := loader.ReadProgramFile(args[0])
			if err != nil {
				return err
			}
			findings := tools.Lint(program)
			for _, f := range findings {
				fmt.Println(f.String())
			}
			if tools.HasErrors(findings) {
				os.Exit(1)
			}
			return nil
		},
	}
}

func newDebugCmd() *cobra.Command {
	var memSize int
	var useTUI, useGUI bool

	cmd := &cobra.Command{
		Use:   "debug <program>",
		Short: "Step through a program interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := vm.NewEmulator(memSize, 1)
			if err := loader.LoadProgramIntoEmulator(e, 0, args[0]); err != nil {
				return err
			}
			dbg := debugger.NewDebugger(e, 0)

			switch {
			case useTUI:
				return debugger.RunTUI(dbg)
			case useGUI:
				return debugger.RunGUI(dbg)
			default:
				return debugger.RunCLI(dbg)
			}
		},
	}
	cmd.Flags().IntVarP(&memSize, "memory-size", "m", 1024, "memory size in bytes")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "use the terminal debugger UI")
	cmd.Flags().BoolVar(&useGUI, "gui", false, "use the graphical debugger UI")
	return cmd
}

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the remote session HTTP/WebSocket API",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := config.Load()
			if err != nil {
				return err
			}

			srv := api.NewServer(port)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}
	cmd.Flags().IntVar(&port, "port", 8080, "listen port")
	return cmd
}
