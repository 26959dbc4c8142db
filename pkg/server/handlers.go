package server

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/masonry/pkg/buildinfo"
	"github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/geom"
	"github.com/matzehuels/masonry/pkg/render"
	"github.com/matzehuels/masonry/pkg/scenario"
	"github.com/matzehuels/masonry/pkg/waterfall"
)

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// writeJSON encodes v before writing any header, so an encoding failure
// still reaches the client as a 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(errorBody{
			Code:    errors.ErrCodeInternal,
			Message: "encode response: " + err.Error(),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// parseFloat parses a finite number from a query parameter.
func parseFloat(raw string) (float64, bool) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		log.FromContext(r.Context()).Error("request failed", "err", err)
	}
	writeJSON(w, status, errorBody{Code: code, Message: errors.UserMessage(err)})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

// readScenario decodes the request body as TOML or JSON by Content-Type.
func (s *Server) readScenario(w http.ResponseWriter, r *http.Request) (*scenario.Scenario, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body")
	}
	format := scenario.FormatJSON
	if strings.Contains(r.Header.Get("Content-Type"), "toml") {
		format = scenario.FormatTOML
	}
	return scenario.Parse(data, format)
}

func (s *Server) scenario(r *http.Request) (*scenario.Scenario, error) {
	return s.scenarios.Get(r.Context(), chi.URLParam(r, "id"))
}

// prepare lays out sc, honouring a ?width= override.
func prepare(r *http.Request, sc *scenario.Scenario) (*waterfall.Engine, error) {
	opts := []waterfall.Option{waterfall.WithLogger(log.FromContext(r.Context()))}
	if raw := r.URL.Query().Get("width"); raw != "" {
		width, ok := parseFloat(raw)
		if !ok || width < 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid width %q", raw)
		}
		opts = append(opts, waterfall.WithBounds(geom.Size{Width: width}))
	}
	e := sc.Engine(opts...)
	if err := e.Prepare(); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Server) writeLayout(w http.ResponseWriter, r *http.Request, sc *scenario.Scenario) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	if err := errors.ValidateFormat(format); err != nil {
		writeError(w, r, err)
		return
	}
	e, err := prepare(r, sc)
	if err != nil {
		writeError(w, r, err)
		return
	}

	snap := e.Snapshot()
	switch format {
	case "svg":
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(render.RenderSVG(snap))
	case "png":
		png, err := render.RenderPNG(r.Context(), snap)
		if err != nil {
			writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "render png"))
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	default:
		writeJSON(w, http.StatusOK, render.Export(snap))
	}
}

func (s *Server) layoutBody(w http.ResponseWriter, r *http.Request) {
	sc, err := s.readScenario(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.writeLayout(w, r, sc)
}

func (s *Server) putScenario(w http.ResponseWriter, r *http.Request) {
	sc, err := s.readScenario(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := s.scenarios.Put(r.Context(), sc)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/v1/scenarios/"+id)
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) listScenarios(w http.ResponseWriter, r *http.Request) {
	ids, err := s.scenarios.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"ids": ids})
}

func (s *Server) getScenario(w http.ResponseWriter, r *http.Request) {
	sc, err := s.scenario(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func (s *Server) deleteScenario(w http.ResponseWriter, r *http.Request) {
	if err := s.scenarios.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) layoutStored(w http.ResponseWriter, r *http.Request) {
	sc, err := s.scenario(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.writeLayout(w, r, sc)
}

type queryResult struct {
	Items         []waterfall.Attributes `json:"items"`
	Supplementary []waterfall.Attributes `json:"supplementary"`
}

func (s *Server) query(w http.ResponseWriter, r *http.Request) {
	rect, err := parseRect(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	sc, err := s.scenario(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	e, err := prepare(r, sc)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res := queryResult{
		Items:         e.AttributesInRect(rect),
		Supplementary: e.SupplementaryInRect(rect),
	}
	if res.Items == nil {
		res.Items = []waterfall.Attributes{}
	}
	if res.Supplementary == nil {
		res.Supplementary = []waterfall.Attributes{}
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) item(w http.ResponseWriter, r *http.Request) {
	section, err1 := strconv.Atoi(chi.URLParam(r, "section"))
	item, err2 := strconv.Atoi(chi.URLParam(r, "item"))
	if err1 != nil || err2 != nil {
		writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "section and item must be integers"))
		return
	}
	sc, err := s.scenario(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	e, err := prepare(r, sc)
	if err != nil {
		writeError(w, r, err)
		return
	}
	path := waterfall.Path(section, item)
	a, ok := e.AttributesForItem(path)
	if !ok {
		writeError(w, r, errors.New(errors.ErrCodeNotFound, "no item at %s", path))
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// parseRect reads the query rectangle from x, y, w and h.
func parseRect(r *http.Request) (geom.Rect, error) {
	q := r.URL.Query()
	var v [4]float64
	for i, name := range []string{"x", "y", "w", "h"} {
		f, ok := parseFloat(q.Get(name))
		if !ok {
			return geom.Rect{}, errors.New(errors.ErrCodeInvalidInput, "query parameter %s must be a finite number", name)
		}
		v[i] = f
	}
	return geom.R(v[0], v[1], v[2], v[3]), nil
}
