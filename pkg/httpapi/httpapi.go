// Package httpapi is the thin HTTP collaborator around pkg/compiler: a
// POST /api/compile endpoint and a GET /download/executable endpoint
// serving the most recently assembled binary. Grounded in the reference
// implementation's Flask backend/modules/routes.py (same two routes, same
// request/response shape), rebuilt on stdlib net/http since no HTTP
// framework appears anywhere in the example corpus.
package httpapi

import (
	"encoding/json"
	"net/http"
	"os"
	"sync"

	"github.com/Le36/ezcompiler/pkg/compiler"
	"github.com/Le36/ezcompiler/pkg/driver"
)

// Server holds the one piece of state the two routes share: the path of
// the most recently assembled executable, if any.
type Server struct {
	mu           sync.Mutex
	lastBinary   string
	keepBinaries bool
}

// NewServer returns a Server ready to be mounted on a ServeMux.
// keepBinaries controls whether /api/compile actually invokes the
// assembler/linker (pkg/driver) after a successful compile, populating
// /download/executable; without it, FileGenerated is always false.
func NewServer(keepBinaries bool) *Server {
	return &Server{keepBinaries: keepBinaries}
}

// Routes registers this Server's handlers on mux.
func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/api/compile", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.handleCompile(w, r)
	})
	mux.HandleFunc("/download/executable", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.handleDownload(w, r)
	})
}

type compileRequest struct {
	Code string `json:"code"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	var req compileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body: "+err.Error())
		return
	}

	result, err := compiler.Compile(req.Code)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if s.keepBinaries {
		binaryPath, assembleErr := s.assemble(result.Assembly)
		result.FileGenerated = assembleErr == nil
		if assembleErr == nil {
			s.mu.Lock()
			s.lastBinary = binaryPath
			s.mu.Unlock()
		}
		// An AsmError never fails the response; tokens/ast/ir/asm are
		// still returned, only FileGenerated reflects the failure.
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (s *Server) assemble(assembly string) (string, error) {
	path := os.TempDir() + "/a.out"
	if err := driver.Assemble(assembly, path); err != nil {
		return "", err
	}
	return path, nil
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	path := s.lastBinary
	s.mu.Unlock()

	if path == "" {
		http.Error(w, "no executable has been generated yet", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	http.ServeFile(w, r, path)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: message})
}
