package yumlog

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/darbotlabs/yumlog-manager/command"
	"github.com/darbotlabs/yumlog-manager/recordings"
	"github.com/darbotlabs/yumlog-manager/stats"
	"github.com/darbotlabs/yumlog-manager/toolsconfig"
	"github.com/goccy/go-json"
)

// CommandResponse carries a generated launcher command
type CommandResponse struct {
	Command string `json:"command"`
}

// MessageResponse carries the text of a dialog
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse carries the text of a failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// DirectoryRequest names the recordings directory
type DirectoryRequest struct {
	Directory string `json:"directory"`
}

// ConfigResponse is the default configuration and the dialog raised with it
type ConfigResponse struct {
	Message string `json:"message"`
	Config  string `json:"config"`
}

// SaveRequest carries the configuration editor content
type SaveRequest struct {
	Config string `json:"config"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintf(w, "%s", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// decode reads a json request body into v
func decode(r *http.Request, v any) error {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return ErrEmptyBody
	}
	return json.Unmarshal(data, v)
}

// authorize answers 401 when the audit rejects the request
func (server *Server) authorize(w http.ResponseWriter, r *http.Request) bool {
	if server.Audit(r) {
		return true
	}
	writeError(w, http.StatusUnauthorized, ErrNotAuthorized.Error())
	return false
}

func (server *Server) recordCommand(w http.ResponseWriter, r *http.Request) {
	if !server.authorize(w, r) {
		return
	}
	var params command.RecordParams
	err := decode(r, &params)
	if err != nil {
		server.Console.Err("recordCommand", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cmd := command.Record(params).String()
	server.Console.Log("record", cmd)
	writeJSON(w, http.StatusOK, CommandResponse{Command: cmd})
}

func (server *Server) captureCommand(w http.ResponseWriter, r *http.Request) {
	if !server.authorize(w, r) {
		return
	}
	var params command.CaptureParams
	err := decode(r, &params)
	if err != nil {
		server.Console.Err("captureCommand", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cmd := command.Capture(params).String()
	server.Console.Log("capture", cmd)
	writeJSON(w, http.StatusOK, CommandResponse{Command: cmd})
}

func (server *Server) statistics(w http.ResponseWriter, r *http.Request) {
	if !server.authorize(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, server.Stats)
}

func (server *Server) refreshStatistics(w http.ResponseWriter, r *http.Request) {
	if !server.authorize(w, r) {
		return
	}
	server.Console.Log("refreshStatistics")
	writeJSON(w, http.StatusOK, MessageResponse{Message: stats.RefreshMessage()})
}

func (server *Server) browseRecordings(w http.ResponseWriter, r *http.Request) {
	if !server.authorize(w, r) {
		return
	}
	var req DirectoryRequest
	err := decode(r, &req)
	if err != nil {
		server.Console.Err("browseRecordings", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	server.Console.Log("browse", req.Directory)
	writeJSON(w, http.StatusOK, recordings.Browse(req.Directory))
}

func (server *Server) openFolder(w http.ResponseWriter, r *http.Request) {
	if !server.authorize(w, r) {
		return
	}
	var req DirectoryRequest
	err := decode(r, &req)
	if err != nil {
		server.Console.Err("openFolder", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	server.Console.Log("openFolder", req.Directory)
	writeJSON(w, http.StatusOK, MessageResponse{Message: recordings.OpenFolderMessage(req.Directory)})
}

func (server *Server) loadConfig(w http.ResponseWriter, r *http.Request) {
	if !server.authorize(w, r) {
		return
	}
	server.Console.Log("loadConfig")
	writeJSON(w, http.StatusOK, ConfigResponse{
		Message: toolsconfig.LoadMessage(),
		Config:  toolsconfig.Default(),
	})
}

func (server *Server) saveConfig(w http.ResponseWriter, r *http.Request) {
	if !server.authorize(w, r) {
		return
	}
	var req SaveRequest
	err := decode(r, &req)
	if err != nil && !errors.Is(err, ErrEmptyBody) {
		server.Console.Err("saveConfig", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	instructions, err := toolsconfig.Save(req.Config)
	if errors.Is(err, toolsconfig.ErrEmptyConfig) {
		writeError(w, http.StatusBadRequest, toolsconfig.EmptyMessage)
		return
	}
	if err != nil {
		server.Console.Err("saveConfig", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	server.Console.Log("saveConfig", instructions.Target)
	writeJSON(w, http.StatusOK, instructions)
}
