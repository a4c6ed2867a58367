package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/vibetune/internal/formatter"
	"github.com/desertthunder/vibetune/internal/models"
	"github.com/desertthunder/vibetune/internal/shared"
	"github.com/desertthunder/vibetune/internal/tasks"
)

// Library is the read side of the song library the API serves.
type Library interface {
	Songs(mood models.Mood) ([]models.Song, error)
}

// API serves the library and run control endpoints.
type API struct {
	logger         *log.Logger
	library        Library
	visualizer     *tasks.Visualizer
	recommendCount int
}

// NewAPI creates the API. The visualizer's sink should be the [Hub] mounted on the same router.
func NewAPI(library Library, visualizer *tasks.Visualizer, recommendCount int, logger *log.Logger) *API {
	if recommendCount <= 0 {
		recommendCount = 5
	}
	return &API{logger: logger, library: library, visualizer: visualizer, recommendCount: recommendCount}
}

// NewHandler assembles the full HTTP surface: API routes, the event stream and middleware.
func NewHandler(api *API, hub *Hub, logger *log.Logger) *BasicRouter {
	r := NewBasicRouter()
	r.Use(Recover(logger), Logging(logger))
	api.Register(r)
	r.Handler(hub)
	return r
}

// Register mounts the API routes on r.
func (a *API) Register(r *BasicRouter) {
	r.HandleFunc(http.MethodGet, "/songs", a.listSongs)
	r.HandleFunc(http.MethodPost, "/runs/sort", a.startSort)
	r.HandleFunc(http.MethodPost, "/runs/recommend", a.startRecommend)
	r.HandleFunc(http.MethodPost, "/runs/path", a.startPathFind)
	r.HandleFunc(http.MethodPost, "/runs/cancel", a.cancel)
	r.HandleFunc(http.MethodGet, "/runs", a.status)
}

type sortRequest struct {
	Algorithm string `json:"algorithm"`
	Criterion string `json:"criterion"`
	Mood      string `json:"mood"`
}

type recommendRequest struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}

type pathRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type runResponse struct {
	Started bool `json:"started"`
	Busy    bool `json:"busy"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (a *API) listSongs(w http.ResponseWriter, r *http.Request) {
	mood, err := parseMood(r.URL.Query().Get("mood"))
	if err != nil {
		a.fail(w, err)
		return
	}
	songs, err := a.library.Songs(mood)
	if err != nil {
		a.fail(w, err)
		return
	}

	records := make([]formatter.SongRecord, len(songs))
	for i, s := range songs {
		records[i] = formatter.NewSongRecord(s)
	}
	writeJSON(w, http.StatusOK, records)
}

func (a *API) startSort(w http.ResponseWriter, r *http.Request) {
	var req sortRequest
	if err := decode(r.Body, &req); err != nil {
		a.fail(w, err)
		return
	}
	mood, err := parseMood(req.Mood)
	if err != nil {
		a.fail(w, err)
		return
	}
	songs, err := a.library.Songs(mood)
	if err != nil {
		a.fail(w, err)
		return
	}

	started, err := a.visualizer.StartSort(req.Algorithm, req.Criterion, songs)
	a.started(w, started, err)
}

func (a *API) startRecommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := decode(r.Body, &req); err != nil {
		a.fail(w, err)
		return
	}
	if req.Count == 0 {
		req.Count = a.recommendCount
	}

	started, err := a.visualizer.StartRecommend(req.Title, req.Count)
	a.started(w, started, err)
}

func (a *API) startPathFind(w http.ResponseWriter, r *http.Request) {
	var req pathRequest
	if err := decode(r.Body, &req); err != nil {
		a.fail(w, err)
		return
	}

	started, err := a.visualizer.StartPathFind(req.From, req.To)
	a.started(w, started, err)
}

func (a *API) cancel(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"cancelled": a.visualizer.Cancel()})
}

// status reports whether a run is in flight. busy=false can precede the run's result on /events.
func (a *API) status(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, runResponse{Busy: a.visualizer.Busy()})
}

// started answers a start request: 202 when a run began, 409 when one was already in flight.
func (a *API) started(w http.ResponseWriter, started bool, err error) {
	switch {
	case err != nil:
		a.fail(w, err)
	case !started:
		writeJSON(w, http.StatusConflict, runResponse{Busy: true})
	default:
		writeJSON(w, http.StatusAccepted, runResponse{Started: true, Busy: true})
	}
}

func (a *API) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, shared.ErrInvalidRun), errors.Is(err, shared.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, shared.ErrBusy):
		status = http.StatusConflict
	case errors.Is(err, shared.ErrSongNotFound):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		a.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func parseMood(s string) (models.Mood, error) {
	if s == "" {
		return models.MoodAll, nil
	}
	return models.ParseMood(s)
}

func decode(body io.Reader, v any) error {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
