package product_discovery

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"

	"github.com/MithunXcpu/value-calculator/internal/discovery"
	"github.com/MithunXcpu/value-calculator/internal/storage"
)

// generationTimeout covers a scrape or a model round trip.
const generationTimeout = 90 * time.Second

type Scraper interface {
	Scrape(ctx context.Context, url string) (discovery.ScrapedContent, error)
}

type Generator interface {
	Mode() discovery.Mode
	Analyze(ctx context.Context, content discovery.ScrapedContent) (discovery.ProductAnalysis, error)
	GenerateUseCases(ctx context.Context, product discovery.ProductAnalysis, roles []storage.Role) ([]storage.Stage, string, error)
	GenerateRationale(ctx context.Context, stage storage.Stage, product discovery.ProductAnalysis) (string, error)
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type ScrapeResponse struct {
	Success bool                     `json:"success"`
	Data    discovery.ScrapedContent `json:"data"`
}

type AnalyzeResponse struct {
	Success  bool                      `json:"success"`
	Analysis discovery.ProductAnalysis `json:"analysis"`
	Mode     discovery.Mode            `json:"mode"`
}

type UseCasesResponse struct {
	Success         bool            `json:"success"`
	Stages          []storage.Stage `json:"stages"`
	IndustryProfile string          `json:"industryProfile"`
	Mode            discovery.Mode  `json:"mode"`
}

type RationaleResponse struct {
	Success   bool           `json:"success"`
	Rationale string         `json:"rationale"`
	Mode      discovery.Mode `json:"mode"`
}

func fail(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Success: false, Error: msg})
}

// failFromErr maps discovery errors to the envelope. Upstream details stay in the log.
func failFromErr(w http.ResponseWriter, r *http.Request, log *slog.Logger, op string, err error) {
	switch {
	case errors.Is(err, discovery.ErrInvalidURL):
		log.Warn("invalid url", slog.String("op", op), slog.String("error", err.Error()))
		fail(w, r, http.StatusBadRequest, "Invalid URL")
	case errors.Is(err, discovery.ErrUpstreamStatus):
		log.Warn("upstream fetch failed", slog.String("op", op), slog.String("error", err.Error()))
		fail(w, r, http.StatusBadGateway, "Failed to fetch: "+lastSegment(err))
	case errors.Is(err, discovery.ErrUnparseableResponse):
		log.Error("model output rejected", slog.String("op", op), slog.String("error", err.Error()))
		fail(w, r, http.StatusInternalServerError, discovery.ErrUnparseableResponse.Error())
	default:
		log.Error("discovery request failed", slog.String("op", op), slog.String("error", err.Error()))
		fail(w, r, http.StatusInternalServerError, "Internal error")
	}
}

// lastSegment returns the text after the final ": ", the status code for
// ErrUpstreamStatus.
func lastSegment(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}

// POST /api/scrape {url}
func Scrape(log *slog.Logger, scraper Scraper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.discovery.Scrape"

		var req struct {
			URL string `json:"url"`
		}
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			fail(w, r, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if strings.TrimSpace(req.URL) == "" {
			fail(w, r, http.StatusBadRequest, "URL is required")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), generationTimeout)
		defer cancel()

		content, err := scraper.Scrape(ctx, req.URL)
		if err != nil {
			failFromErr(w, r, log, op, err)
			return
		}

		log.Info("page scraped", slog.String("url", content.URL), slog.Int("features", len(content.Features)))
		render.JSON(w, r, ScrapeResponse{Success: true, Data: content})
	}
}

// POST /api/analyze {scrapedContent, url}
func Analyze(log *slog.Logger, gen Generator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.discovery.Analyze"

		var req struct {
			ScrapedContent *discovery.ScrapedContent `json:"scrapedContent"`
			URL            string                    `json:"url"`
		}
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			fail(w, r, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if req.ScrapedContent == nil {
			fail(w, r, http.StatusBadRequest, "Scraped content is required")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), generationTimeout)
		defer cancel()

		analysis, err := gen.Analyze(ctx, *req.ScrapedContent)
		if err != nil {
			failFromErr(w, r, log, op, err)
			return
		}
		if req.URL != "" {
			analysis.SourceURL = req.URL
		}

		render.JSON(w, r, AnalyzeResponse{Success: true, Analysis: analysis, Mode: gen.Mode()})
	}
}

// POST /api/generate-use-cases {productAnalysis, roles}
func GenerateUseCases(log *slog.Logger, gen Generator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.discovery.GenerateUseCases"

		var req struct {
			ProductAnalysis *discovery.ProductAnalysis `json:"productAnalysis"`
			Roles           []storage.Role             `json:"roles"`
		}
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			fail(w, r, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if req.ProductAnalysis == nil || len(req.Roles) == 0 {
			fail(w, r, http.StatusBadRequest, "Product analysis and roles are required")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), generationTimeout)
		defer cancel()

		stages, profile, err := gen.GenerateUseCases(ctx, *req.ProductAnalysis, req.Roles)
		if err != nil {
			failFromErr(w, r, log, op, err)
			return
		}

		log.Info("use cases generated",
			slog.Int("stages", len(stages)),
			slog.String("profile", profile),
			slog.String("mode", string(gen.Mode())),
		)

		render.JSON(w, r, UseCasesResponse{Success: true, Stages: stages, IndustryProfile: profile, Mode: gen.Mode()})
	}
}

// POST /api/generate-rationale {stage, productAnalysis}
func GenerateRationale(log *slog.Logger, gen Generator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.discovery.GenerateRationale"

		var req struct {
			Stage           *storage.Stage             `json:"stage"`
			ProductAnalysis *discovery.ProductAnalysis `json:"productAnalysis"`
		}
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			fail(w, r, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if req.Stage == nil || req.ProductAnalysis == nil {
			fail(w, r, http.StatusBadRequest, "Stage and product analysis are required")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), generationTimeout)
		defer cancel()

		rationale, err := gen.GenerateRationale(ctx, *req.Stage, *req.ProductAnalysis)
		if err != nil {
			failFromErr(w, r, log, op, err)
			return
		}

		render.JSON(w, r, RationaleResponse{Success: true, Rationale: rationale, Mode: gen.Mode()})
	}
}
