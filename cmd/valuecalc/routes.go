package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	getsettings "github.com/MithunXcpu/value-calculator/http-server/admin/get"
	upsettings "github.com/MithunXcpu/value-calculator/http-server/admin/update"
	"github.com/MithunXcpu/value-calculator/http-server/calculate"
	deletecalc "github.com/MithunXcpu/value-calculator/http-server/calculator/delete"
	getcalc "github.com/MithunXcpu/value-calculator/http-server/calculator/get"
	savecalc "github.com/MithunXcpu/value-calculator/http-server/calculator/save"
	upcalc "github.com/MithunXcpu/value-calculator/http-server/calculator/update"
	generate_excel "github.com/MithunXcpu/value-calculator/http-server/generate-report/generate-excel"
	printreport "github.com/MithunXcpu/value-calculator/http-server/generate-report/print"
	product_discovery "github.com/MithunXcpu/value-calculator/http-server/product-discovery"
	"github.com/MithunXcpu/value-calculator/internal/config"
	"github.com/MithunXcpu/value-calculator/internal/discovery"
	"github.com/MithunXcpu/value-calculator/internal/middleware/auth"
	"github.com/MithunXcpu/value-calculator/internal/service/calculator"
	generate_excel2 "github.com/MithunXcpu/value-calculator/internal/service/generate-excel"
	"github.com/MithunXcpu/value-calculator/internal/service/report"
)

const frontendDir = "./frontend-dist"

type services struct {
	calculators *calculator.Service
	excel       *generate_excel2.GenerateExcelService
	reports     *report.Service
	scraper     *discovery.Scraper
	generator   discovery.ContentGenerator
}

func routes(cfg config.Config, log *slog.Logger, svc services) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.HTTPServer.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	calcs := svc.calculators
	rate := calcs.DefaultDiscountRate()

	router.Get("/api/templates", getcalc.ListTemplates(log, calcs))

	router.Route("/api/calculators", func(r chi.Router) {
		r.Get("/", getcalc.ListCalculators(log, calcs))
		r.Post("/", savecalc.CreateCalculator(log, calcs))
		r.Post("/import", savecalc.ImportCalculator(log, calcs))

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", getcalc.GetCalculator(log, calcs))
			r.Put("/", savecalc.SaveCalculator(log, calcs))
			r.Patch("/", upcalc.RenameCalculator(log, calcs))
			r.Delete("/", deletecalc.DeleteCalculator(log, calcs))
			r.Post("/duplicate", savecalc.DuplicateCalculator(log, calcs))

			r.Put("/assumptions", upcalc.UpdateAssumptions(log, calcs))
			r.Put("/wizard", upcalc.UpdateWizard(log, calcs))

			r.Post("/stages", upcalc.AddStage(log, calcs))
			r.Post("/stages/reorder", upcalc.ReorderStages(log, calcs))
			r.Post("/stages/append", upcalc.AppendStages(log, calcs))
			r.Put("/stages/{stageId}", upcalc.UpdateStage(log, calcs))
			r.Delete("/stages/{stageId}", upcalc.RemoveStage(log, calcs))

			r.Post("/roles", upcalc.AddRole(log, calcs))
			r.Delete("/roles/{roleId}", upcalc.RemoveRole(log, calcs))

			r.Get("/dashboard", calculate.GetDashboard(log, calcs, rate))
			r.Get("/report/excel", generate_excel.GenerateReportExcel(log, svc.excel, rate))
			r.Get("/report/print", printreport.PrintReport(log, svc.reports, rate))
		})
	})

	router.Post("/api/calculate", calculate.Calculate(log, calcs, rate))

	router.Post("/api/scrape", product_discovery.Scrape(log, svc.scraper))
	router.Post("/api/analyze", product_discovery.Analyze(log, svc.generator))
	router.Post("/api/generate-use-cases", product_discovery.GenerateUseCases(log, svc.generator))
	router.Post("/api/generate-rationale", product_discovery.GenerateRationale(log, svc.generator))

	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

	adminRouter.Get("/settings", getsettings.GetSettingsAdmin(log, calcs))
	adminRouter.Put("/settings", upsettings.UpdateSettingsAdmin(log, calcs))

	router.Mount("/api/admin", adminRouter)

	// the dashboard front-end is optional; the API runs without it
	if info, err := os.Stat(frontendDir); err != nil || !info.IsDir() {
		log.Info("frontend not found, serving API only", slog.String("path", frontendDir))
		return router
	}

	fileServer := http.FileServer(http.Dir(frontendDir))
	router.Handle("/assets/*", fileServer)

	// SPA fallback: unknown paths get index.html
	router.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(frontendDir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
		http.ServeFile(w, r, filepath.Join(frontendDir, "index.html"))
	})

	return router
}
