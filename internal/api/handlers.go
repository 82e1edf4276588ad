// Package api exposes the HTTP handlers for the exercise tracker.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"example.com/exercisetracker/internal/domain"
)

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service *domain.Service
	logger  *slog.Logger
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/users", h.listUsers)
	mux.HandleFunc("POST /api/users", h.createUser)
	mux.HandleFunc("POST /api/users/{id}/exercises", h.addExercise)
	mux.HandleFunc("GET /api/users/{id}/logs", h.getLog)
	mux.HandleFunc("GET /healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	views := make([]UserView, 0, len(users))
	for _, user := range users {
		views = append(views, UserView{Username: user.Username, ID: user.ID})
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "unable to parse body")
		return
	}

	user, err := h.service.RegisterUser(r.Context(), req.Username)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, UserView{Username: user.Username, ID: user.ID})
}

func (h *Handler) addExercise(w http.ResponseWriter, r *http.Request) {
	var req AddExerciseRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "unable to parse body")
		return
	}

	exercise, user, err := h.service.AddExercise(r.Context(), domain.AddExerciseInput{
		UserID:      r.PathValue("id"),
		Description: req.Description,
		Duration:    string(req.Duration),
		Date:        req.Date,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ExerciseView{
		ID:          exercise.ID,
		Username:    user.Username,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        domain.DateString(exercise.Date),
	})
}

func (h *Handler) getLog(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	result, err := h.service.GetLog(r.Context(), domain.LogQuery{
		UserID: r.PathValue("id"),
		From:   r.URL.Query().Get("from"),
		To:     r.URL.Query().Get("to"),
		Limit:  limit,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	entries := make([]LogEntryView, 0, len(result.Exercises))
	for _, exercise := range result.Exercises {
		entries = append(entries, LogEntryView{
			Description: exercise.Description,
			Duration:    exercise.Duration,
			Date:        domain.DateString(exercise.Date),
		})
	}

	writeJSON(w, http.StatusOK, LogView{
		Username: result.User.Username,
		Count:    len(entries),
		ID:       result.User.ID,
		Log:      entries,
	})
}

// CreateUserRequest is the payload for POST /api/users.
type CreateUserRequest struct {
	Username string `json:"username"`
}

// AddExerciseRequest is the payload for POST /api/users/{id}/exercises.
// Duration tolerates both a JSON number and a numeric string, since
// form submissions arrive stringly typed.
type AddExerciseRequest struct {
	Description string     `json:"description"`
	Duration    flexString `json:"duration"`
	Date        string     `json:"date"`
}

// UserView is the response shape for user endpoints.
type UserView struct {
	Username string `json:"username"`
	ID       string `json:"id"`
}

// ExerciseView is the response shape for a created exercise. Date is a
// calendar-date string with no time-of-day component.
type ExerciseView struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Date        string  `json:"date"`
}

// LogEntryView is one projected exercise inside a log response.
type LogEntryView struct {
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Date        string  `json:"date"`
}

// LogView is the response shape for GET /api/users/{id}/logs. Count is
// the number of entries returned after the limit, not the range total.
type LogView struct {
	Username string         `json:"username"`
	Count    int            `json:"count"`
	ID       string         `json:"id"`
	Log      []LogEntryView `json:"log"`
}

// flexString decodes a JSON string or number into its textual form.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		*s = flexString(value)
		return nil
	}
	*s = flexString(data)
	return nil
}

// decodeBody fills dst from a JSON or form-encoded request body. The
// landing page posts forms; API clients post JSON.
func decodeBody(r *http.Request, dst interface{}) error {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseForm(); err != nil {
			return err
		}
		switch req := dst.(type) {
		case *CreateUserRequest:
			req.Username = r.PostFormValue("username")
		case *AddExerciseRequest:
			req.Description = r.PostFormValue("description")
			req.Duration = flexString(r.PostFormValue("duration"))
			req.Date = r.PostFormValue("date")
		default:
			return errors.New("unsupported form target")
		}
		return nil
	}
	return json.NewDecoder(r.Body).Decode(dst)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
