package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jchan-dev/rv32i-emu/api"
)

func TestHealthEndpoint(t *testing.T) {
	s := api.NewServer(0)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func createSession(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	body, _ := json.Marshal(api.CreateSessionRequest{MemorySize: 256})
	resp, err := http.Post(srv.URL+"/api/v1/session", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created api.CreateSessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	return created.SessionID
}

func TestCreateSessionAndStep(t *testing.T) {
	s := api.NewServer(0)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	id := createSession(t, srv)

	// addi x1, x0, 5
	program := []byte{0x93, 0x00, 0x50, 0x00}
	loadBody, _ := json.Marshal(api.LoadProgramRequest{Program: program})
	resp, err := http.Post(srv.URL+"/api/v1/session/"+id+"/load", "application/json", bytes.NewReader(loadBody))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/api/v1/session/"+id+"/step", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	var step api.StepResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&step))
	assert.EqualValues(t, 4, step.PC)

	resp, err = http.Get(srv.URL + "/api/v1/session/" + id + "/registers")
	require.NoError(t, err)
	defer resp.Body.Close()
	var regs api.RegistersResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&regs))
	assert.EqualValues(t, 5, regs.X[1])
}

func TestUnknownSessionReturns404(t *testing.T) {
	s := api.NewServer(0)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/session/doesnotexist")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBreakpointCreateAndList(t *testing.T) {
	s := api.NewServer(0)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	id := createSession(t, srv)

	body, _ := json.Marshal(api.BreakpointRequest{Address: 0x100})
	resp, err := http.Post(srv.URL+"/api/v1/session/"+id+"/breakpoint", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/v1/session/" + id + "/breakpoints")
	require.NoError(t, err)
	defer resp.Body.Close()
	var list []api.BreakpointResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Len(t, list, 1)
	assert.EqualValues(t, 0x100, list[0].Address)
}
