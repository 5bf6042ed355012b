package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/jchan-dev/rv32i-emu/tools"
	"github.com/jchan-dev/rv32i-emu/vm"
)

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "use POST to create a session")
		return
	}

	var req CreateSessionRequest
	if err := readJSON(r, &req); err != nil || req.MemorySize == 0 {
		req.MemorySize = 1024
	}

	sess, err := s.sessions.Create(req.MemorySize)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, CreateSessionResponse{SessionID: sess.ID})
}

// handleSessionRoute dispatches /api/v1/session/{id}/{action}.
func (s *Server) handleSessionRoute(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/session/")
	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] == "" {
		writeError(w, http.StatusBadRequest, "session id required")
		return
	}

	sess := s.sessions.Get(parts[0])
	if sess == nil {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, map[string]any{"session_id": sess.ID})
		case http.MethodDelete:
			s.sessions.Destroy(sess.ID)
			writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
		default:
			writeError(w, http.StatusMethodNotAllowed, "")
		}
		return
	}

	switch parts[1] {
	case "load":
		s.handleLoad(w, r, sess)
	case "step":
		s.handleStep(w, r, sess)
	case "run":
		s.handleRun(w, r, sess)
	case "registers":
		s.handleRegisters(w, r, sess)
	case "memory":
		s.handleMemory(w, r, sess)
	case "disassembly":
		s.handleDisassembly(w, r, sess)
	case "breakpoint":
		s.handleBreakpoint(w, r, sess)
	case "breakpoints":
		s.handleListBreakpoints(w, r, sess)
	default:
		writeError(w, http.StatusNotFound, "unknown action: "+parts[1])
	}
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request, sess *Session) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "")
		return
	}
	var req LoadProgramRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	sess.Lock()
	defer sess.Unlock()
	e := sess.Debugger.Emulator
	if _, err := e.LoadProgram(sess.Debugger.Proc, req.Program); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, StepResponse{PC: e.Processors[sess.Debugger.Proc].PC})
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request, sess *Session) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "")
		return
	}
	sess.Lock()
	defer sess.Unlock()

	e := sess.Debugger.Emulator
	proc := sess.Debugger.Proc
	err := e.StepOne(proc)
	resp := StepResponse{PC: e.Processors[proc].PC}

	var illegal *vm.IllegalInstructionError
	if err != nil {
		resp.Halted = true
		resp.Error = err.Error()
		s.broadcaster.Publish(Event{Type: "illegal_instruction", SessionID: sess.ID, PC: resp.PC, Message: err.Error()})
		if errors.As(err, &illegal) {
			writeJSON(w, http.StatusOK, resp)
			return
		}
	}
	s.broadcaster.Publish(Event{Type: "step", SessionID: sess.ID, PC: resp.PC})
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request, sess *Session) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "")
		return
	}
	sess.Lock()
	defer sess.Unlock()

	e := sess.Debugger.Emulator
	proc := sess.Debugger.Proc
	p := e.Processors[proc]

	for {
		if stop, _ := sess.Debugger.ShouldBreak(); stop {
			break
		}
		if err := e.StepOne(proc); err != nil {
			writeJSON(w, http.StatusOK, StepResponse{PC: p.PC, Halted: true, Error: err.Error()})
			s.broadcaster.Publish(Event{Type: "halted", SessionID: sess.ID, PC: p.PC, Message: err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, StepResponse{PC: p.PC})
	s.broadcaster.Publish(Event{Type: "breakpoint", SessionID: sess.ID, PC: p.PC})
}

func (s *Server) handleRegisters(w http.ResponseWriter, r *http.Request, sess *Session) {
	sess.Lock()
	defer sess.Unlock()
	p := sess.Debugger.Emulator.Processors[sess.Debugger.Proc]

	var resp RegistersResponse
	for i := 0; i < vm.RegisterCount; i++ {
		resp.X[i] = p.Registers.Read(uint32(i))
	}
	resp.PC = p.PC
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMemory(w http.ResponseWriter, r *http.Request, sess *Session) {
	addr, err := strconv.ParseUint(r.URL.Query().Get("address"), 0, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid address")
		return
	}
	length, err := strconv.Atoi(r.URL.Query().Get("length"))
	if err != nil || length <= 0 {
		length = 64
	}

	sess.Lock()
	defer sess.Unlock()
	data := sess.Debugger.Emulator.Memory.Read(uint32(addr), length)
	writeJSON(w, http.StatusOK, MemoryResponse{Address: uint32(addr), Data: data})
}

func (s *Server) handleDisassembly(w http.ResponseWriter, r *http.Request, sess *Session) {
	sess.Lock()
	defer sess.Unlock()
	p := sess.Debugger.Emulator.Processors[sess.Debugger.Proc]
	data := sess.Debugger.Emulator.Memory.Read(p.PC, 64)
	writeJSON(w, http.StatusOK, DisassemblyResponse{Lines: tools.DisassembleProgram(data, p.PC)})
}

func (s *Server) handleBreakpoint(w http.ResponseWriter, r *http.Request, sess *Session) {
	switch r.Method {
	case http.MethodPost:
		var req BreakpointRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
		bp := sess.Debugger.Breakpoints.AddBreakpoint(req.Address, false, "")
		writeJSON(w, http.StatusCreated, BreakpointResponse{ID: bp.ID, Address: bp.Address, Enabled: bp.Enabled})
	case http.MethodDelete:
		id, err := strconv.Atoi(r.URL.Query().Get("id"))
		if err != nil || !sess.Debugger.Breakpoints.DeleteBreakpoint(id) {
			writeError(w, http.StatusNotFound, "unknown breakpoint")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
	default:
		writeError(w, http.StatusMethodNotAllowed, "")
	}
}

func (s *Server) handleListBreakpoints(w http.ResponseWriter, r *http.Request, sess *Session) {
	var out []BreakpointResponse
	for _, bp := range sess.Debugger.Breakpoints.All() {
		out = append(out, BreakpointResponse{ID: bp.ID, Address: bp.Address, Enabled: bp.Enabled})
	}
	writeJSON(w, http.StatusOK, out)
}
