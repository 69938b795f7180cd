package server

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/etnz/betboard"
	"github.com/etnz/betboard/renderer"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleReport reads the ledger, values it and returns the dashboard.
//
// Query parameters override the configured options: threshold, detailed, policy
// and format (json or html).
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	opts, err := s.reportOptions(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	l, err := betboard.OpenLedger(s.cfg.Ledger, s.cfg.Mode)
	if err != nil {
		s.writeError(w, ledgerStatus(err), err.Error())
		return
	}
	valuer := betboard.ValuerFor(l.Mode(), s.cfg.Prices,
		betboard.WithConcurrency(s.cfg.Concurrency),
		betboard.WithLogger(s.log),
	)
	report, err := betboard.NewReport(r.Context(), l, valuer, opts)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	switch r.URL.Query().Get("format") {
	case "", "json":
		s.writeJSON(w, http.StatusOK, renderer.NewDashboard(report))
	case "html":
		page, err := renderer.ReportHTML(report)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	default:
		s.writeError(w, http.StatusBadRequest, "format must be json or html")
	}
}

func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	asset := r.URL.Query().Get("asset")
	if asset == "" {
		asset = ticker
	}
	s.writeJSON(w, http.StatusOK, s.cfg.Prices.Lookup(r.Context(), ticker, asset))
}

func (s *Server) reportOptions(r *http.Request) (betboard.ReportOptions, error) {
	opts := s.cfg.Options
	q := r.URL.Query()
	if v := q.Get("threshold"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil || t < 0 || t >= 1 {
			return opts, errors.New("threshold must be a number in [0, 1)")
		}
		opts.Threshold = t
	}
	if v := q.Get("detailed"); v != "" {
		d, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New("detailed must be a boolean")
		}
		opts.Detailed = d
	}
	if v := q.Get("policy"); v != "" {
		p, err := betboard.ParsePolicy(v)
		if err != nil {
			return opts, err
		}
		opts.Policy = p
	}
	return opts, nil
}

func ledgerStatus(err error) int {
	var schema *betboard.SchemaError
	switch {
	case errors.As(err, &schema), errors.Is(err, betboard.ErrEmptyLedger):
		return http.StatusUnprocessableEntity
	case errors.Is(err, fs.ErrNotExist):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// writeError writes an error response
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
