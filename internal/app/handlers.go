package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/tetratelabs/wazero/api"

	"wasmfix/pkg/coerce"
	"wasmfix/pkg/fixtures"
	"wasmfix/pkg/wasm"
)

// functionInfo is the catalog listing payload.
type functionInfo struct {
	Name    string   `json:"name"`
	Params  []string `json:"params"`
	Results []string `json:"results"`
}

// callRequest is the invocation payload. Args are JSON numbers matching the
// function's parameter list; TimeoutMS overrides the server default.
type callRequest struct {
	Args      []interface{} `json:"args"`
	TimeoutMS int           `json:"timeout_ms,omitempty"`
}

type callResponse struct {
	Function string  `json:"function"`
	Results  []int64 `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (app *AppContext) handleListFunctions(w http.ResponseWriter, _ *http.Request) {
	entries := fixtures.Catalog()
	out := make([]functionInfo, 0, len(entries))
	for _, e := range entries {
		info := functionInfo{Name: e.Name, Params: []string{}, Results: []string{}}
		for _, p := range e.Params {
			info.Params = append(info.Params, api.ValueTypeName(p))
		}
		for _, r := range e.Results {
			info.Results = append(info.Results, api.ValueTypeName(r))
		}
		out = append(out, info)
	}
	writeJSON(w, http.StatusOK, out)
}

func (app *AppContext) handleCallFunction(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	entry, ok := fixtures.Lookup(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "function " + name + " not found"})
		return
	}

	var req callRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body: " + err.Error()})
			return
		}
	}

	raw, err := coerce.RawParams(entry.Params, req.Args)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	ctx := r.Context()
	if req.TimeoutMS > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(req.TimeoutMS)*time.Millisecond)
		defer cancel()
	}

	results, err := app.Invoker.Call(ctx, name, raw...)
	if err != nil {
		if errors.Is(err, wasm.ErrCallTimeout) {
			writeJSON(w, http.StatusGatewayTimeout, errorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	decoded, err := coerce.DecodeResults(entry.Results, results)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if decoded == nil {
		decoded = []int64{}
	}
	writeJSON(w, http.StatusOK, callResponse{Function: name, Results: decoded})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
