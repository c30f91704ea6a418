// Package apiutil holds the pieces every handler shares: mapping service errors
// onto status codes and reading common query parameters.
package apiutil

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/MithunXcpu/value-calculator/internal/migrate"
	"github.com/MithunXcpu/value-calculator/internal/service/calculator"
	"github.com/MithunXcpu/value-calculator/internal/storage"
	"github.com/MithunXcpu/value-calculator/internal/templates"
)

var statuses = []struct {
	err    error
	status int
}{
	{storage.ErrCalculatorNotFound, http.StatusNotFound},
	{calculator.ErrStageNotFound, http.StatusNotFound},
	{calculator.ErrRoleNotFound, http.StatusNotFound},
	{templates.ErrTemplateNotFound, http.StatusNotFound},
	{storage.ErrCalculatorExists, http.StatusConflict},
	{calculator.ErrLastRole, http.StatusUnprocessableEntity},
	{calculator.ErrInvalidInput, http.StatusBadRequest},
	{migrate.ErrMalformedRecord, http.StatusBadRequest},
	{migrate.ErrUnsupportedVersion, http.StatusBadRequest},
}

// Status maps an error returned by the services to an HTTP status. Anything
// unrecognized is a 500.
func Status(err error) int {
	for _, s := range statuses {
		if errors.Is(err, s.err) {
			return s.status
		}
	}
	return http.StatusInternalServerError
}

// Message is the client facing text for err: the part of the chain starting at
// the matched sentinel, so operation names stay in the logs.
func Message(err error) string {
	msg := err.Error()
	for _, s := range statuses {
		if !errors.Is(err, s.err) {
			continue
		}
		if i := strings.Index(msg, s.err.Error()); i >= 0 {
			return msg[i:]
		}
		return s.err.Error()
	}
	return "Internal error"
}

// Error logs err and writes the mapped status with a plain text body.
func Error(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	status := Status(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", slog.String("op", op), slog.String("error", err.Error()))
	} else {
		log.Warn("request rejected", slog.String("op", op), slog.Int("status", status), slog.String("error", err.Error()))
	}

	http.Error(w, Message(err), status)
}

// DiscountRate reads the optional discount_rate query parameter. It accepts a
// decimal (0.1) or a percentage (10) and falls back to def when absent.
func DiscountRate(r *http.Request, def float64) (float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("discount_rate"))
	if raw == "" {
		return def, nil
	}

	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, fmt.Errorf("%w: discount_rate %q is not a number", calculator.ErrInvalidInput, raw)
	}

	return NormalizeRate(rate), nil
}

// NormalizeRate reads values above 1 as percentages, so 8 and 0.08 mean the same rate.
func NormalizeRate(rate float64) float64 {
	if rate > 1 {
		return rate / 100
	}
	return rate
}
