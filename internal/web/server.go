// Package web is the JSON control plane: a thin translation layer
// between HTTP and the mode controller's narrow command surface.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/AI-Gajendra/traffic-backend/internal/controller"
	"github.com/AI-Gajendra/traffic-backend/internal/logging"
)

var logger = logging.New("web")

type Server struct {
	ctrl    *controller.Controller
	leveler logging.Leveler
	srv     *http.Server
}

func NewServer(addr string, ctrl *controller.Controller) *Server {
	s := &Server{
		ctrl:    ctrl,
		leveler: logging.GetLeveler(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.index)
	mux.HandleFunc("GET /status", s.status)
	mux.HandleFunc("POST /set_mode/{mode}", s.setMode)
	mux.HandleFunc("GET /log_level", s.logLevels)
	mux.HandleFunc("PUT /log_level/{name}/{level}", s.logLevel)

	s.srv = &http.Server{Addr: addr, Handler: mux}
	return s
}

// Handler exposes the route table for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

func (s *Server) ListenAndServe() error {
	logger.With(zap.String("addr", s.srv.Addr)).Info("control plane listening")
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) index(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "traffic signal controller",
	})
}

func (s *Server) status(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"mode": s.ctrl.CurrentMode().String(),
	})
}

func (s *Server) setMode(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("mode")
	logger.With(zap.String("mode", name)).Info("mode change requested")

	mode, err := controller.ParseMode(name)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid mode %q", name))
		return
	}

	switch err := s.ctrl.RequestMode(mode); {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]any{
			"message": fmt.Sprintf("%s mode started", mode),
			"mode":    mode.String(),
		})
	case errors.Is(err, controller.ErrAlreadyRunning):
		writeJSON(w, http.StatusConflict, errorBody("%s mode is already running", mode))
	case errors.Is(err, controller.ErrInvalidMode):
		writeJSON(w, http.StatusBadRequest, errorBody("invalid mode %q", name))
	default:
		logger.With(zap.Error(err)).Error("mode change failed")
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

func (s *Server) logLevels(w http.ResponseWriter, _ *http.Request) {
	levels := make(map[string]string)
	for _, name := range s.leveler.Names() {
		levels[name] = s.leveler.GetLevel(name).String()
	}
	writeJSON(w, http.StatusOK, map[string]any{"levels": levels})
}

func (s *Server) logLevel(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	level, err := zapcore.ParseLevel(r.PathValue("level"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("unknown level %q", r.PathValue("level")))
		return
	}
	s.leveler.SetLevel(name, level)
	writeJSON(w, http.StatusOK, map[string]any{
		"logger": name,
		"level":  level.String(),
	})
}

func errorBody(format string, args ...any) map[string]any {
	return map[string]any{"error": fmt.Sprintf(format, args...)}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.With(zap.Error(err)).Error("failed to write response")
	}
}
