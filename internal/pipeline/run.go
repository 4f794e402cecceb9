package pipeline

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"psephos/internal/chart"
	"psephos/internal/config"
	"psephos/internal/dataset"
	"psephos/internal/scrape"
	"psephos/internal/storage"
)

// Runner drives the whole linear flow: optional dataset load, scrape,
// normalize, persist, aggregate, chart. Each stage blocks on the
// previous one and any failure aborts the run.
type Runner struct {
	db     *storage.DB
	cfg    config.Config
	client *scrape.Client
}

func NewRunner(db *storage.DB, cfg config.Config) *Runner {
	return &Runner{db: db, cfg: cfg, client: scrape.NewClient(cfg)}
}

type RunResult struct {
	ContestRows    int
	RawRows        int
	NormalizedRows int
	Systems        int
	Countries      int
	ChartPath      string
}

func (r *Runner) Run(ctx context.Context, chartPath string) (RunResult, error) {
	start := time.Now()
	timings := map[string]float64{}
	result := RunResult{ChartPath: chartPath}

	if r.cfg.DatasetPath != "" {
		if _, err := os.Stat(r.cfg.DatasetPath); err == nil {
			ds, err := dataset.Load(r.cfg.DatasetPath)
			if err != nil {
				return result, err
			}
			if err := r.db.ReplaceContests(ds); err != nil {
				return result, err
			}
			result.ContestRows = len(ds.Rows)
		}
	}
	timings["datasetMs"] = msSince(start)

	fetchStart := time.Now()
	doc, err := r.client.FetchDocument(ctx)
	if err != nil {
		return result, err
	}
	raw, err := scrape.ExtractSystemsTable(doc, r.cfg.SystemsTableIndex)
	if err != nil {
		return result, err
	}
	if err := r.db.ReplaceRawSystems(raw); err != nil {
		return result, err
	}
	result.RawRows = len(raw)
	timings["scrapeMs"] = msSince(fetchStart)

	normStart := time.Now()
	normalized := NormalizeRows(raw)
	if err := r.db.ReplaceNormalizedSystems(normalized); err != nil {
		return result, err
	}
	result.NormalizedRows = len(normalized)
	timings["normalizeMs"] = msSince(normStart)

	chartStart := time.Now()
	counts := CountSystems(normalized)
	result.Systems = len(counts)
	result.Countries = DistinctCountries(normalized)
	caption := r.cfg.ChartCaption
	if caption == "" {
		caption = "Source: " + r.cfg.SystemsPageURL
	}
	if err := chart.RenderSystemCounts(counts, result.Countries, r.cfg.ChartTitle, caption, chartPath); err != nil {
		return result, err
	}
	timings["chartMs"] = msSince(chartStart)
	timings["totalMs"] = msSince(start)

	_ = r.db.InsertRun(traceID(), timings, map[string]int{
		"contests":   result.ContestRows,
		"raw":        result.RawRows,
		"normalized": result.NormalizedRows,
		"systems":    result.Systems,
		"countries":  result.Countries,
	})
	_ = r.db.SetMetadata("last_run_at", time.Now().UTC().Format(time.RFC3339))

	return result, nil
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Milliseconds())
}

func traceID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
