package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/aguxez/fitplan/models"
	"github.com/aguxez/fitplan/planner"
)

type errorResponse struct {
	Error string `json:"error"`
}

type languageRequest struct {
	Language string `json:"language"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.planner.Snapshot())
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	var u models.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if err := u.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := s.planner.Submit(u); err != nil {
		if errors.Is(err, planner.ErrGenerating) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, s.planner.Snapshot())
}

func (s *Server) handleRecalculate(w http.ResponseWriter, r *http.Request) {
	s.planner.Recalculate()
	writeJSON(w, http.StatusOK, s.planner.Snapshot())
}

// handleGeneratePlans runs a generation to completion. A client that hangs
// up does not cancel it; the outcome is still visible through /state.
func (s *Server) handleGeneratePlans(w http.ResponseWriter, r *http.Request) {
	log.Println("Generating plans...")

	err := s.planner.Generate(context.WithoutCancel(r.Context()))
	switch {
	case errors.Is(err, planner.ErrNotReady):
		writeError(w, http.StatusConflict, err.Error())
	case err != nil:
		writeJSON(w, http.StatusBadGateway, s.planner.Snapshot())
	default:
		writeJSON(w, http.StatusOK, s.planner.Snapshot())
	}
}

func (s *Server) handleLanguage(w http.ResponseWriter, r *http.Request) {
	var req languageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	lang, err := models.ParseLanguage(req.Language)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.planner.SetLanguage(lang)
	writeJSON(w, http.StatusOK, s.planner.Snapshot())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("Error encoding response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
