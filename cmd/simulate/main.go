// Comando simulate: simula por lotes una planilla de escenarios sin levantar el servidor.
//
//	simulate -in escenarios.xlsx [-out resultado.xlsx] [-pdf-dir reportes/]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jhoicas/Rentabilidad-api/internal/application/simulation"
	"github.com/jhoicas/Rentabilidad-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/Rentabilidad-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Rentabilidad-api/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/Rentabilidad-api/pkg/config"
	"github.com/jhoicas/Rentabilidad-api/pkg/logger"
)

func main() {
	in := flag.String("in", "", "planilla de escenarios (xlsx o csv)")
	out := flag.String("out", "", "planilla de salida (por defecto <in>-resultado.xlsx)")
	pdfDir := flag.String("pdf-dir", "", "si se indica, escribe un PDF por escenario simulado")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *out == "" {
		*out = strings.TrimSuffix(*in, filepath.Ext(*in)) + "-resultado.xlsx"
	}

	if err := run(context.Background(), cfg, log, *in, *out, *pdfDir); err != nil {
		log.Fatal().Err(err).Str("in", *in).Msg("simulación por lotes")
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger, in, out, pdfDir string) error {
	f, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("abrir %s: %w", in, err)
	}
	defer f.Close()

	rows, err := spreadsheet.ParseScenarioRows(in, f)
	if err != nil {
		return err
	}

	var resultCache simulation.ResultCache = simulation.NopCache{}
	if cfg.Redis.Enabled() {
		rc := cache.NewRedisResultCache(cache.NewClient(cfg.Redis), cfg.Redis.TTL, log)
		defer rc.Close()
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := rc.Ping(pingCtx); err == nil {
			resultCache = rc
		}
		cancel()
	}

	report := infrapdf.NewRoasReport(cfg.Report.Locale)
	uc := simulation.NewSimulationUseCase(resultCache, spreadsheet.NewExporter(), report, log.Component("simulation"))

	data, batch, err := uc.ExportBatch(ctx, rows)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", out, err)
	}

	if pdfDir != "" {
		if err := os.MkdirAll(pdfDir, 0o755); err != nil {
			return fmt.Errorf("crear %s: %w", pdfDir, err)
		}
		for _, item := range batch.Items {
			if item.Result == nil {
				continue
			}
			doc, _, err := uc.Render(ctx, item.Result, simulation.FormatPDF, item.Name)
			if err != nil {
				return err
			}
			name := filepath.Join(pdfDir, fmt.Sprintf("fila-%03d.pdf", item.Row))
			if err := os.WriteFile(name, doc, 0o644); err != nil {
				return fmt.Errorf("escribir %s: %w", name, err)
			}
		}
	}

	log.Info().
		Str("out", out).
		Int("total", batch.Total).
		Int("failed", batch.Failed).
		Msg("simulación por lotes terminada")
	return nil
}
