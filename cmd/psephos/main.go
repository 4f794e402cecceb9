package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"psephos/internal/chart"
	"psephos/internal/config"
	"psephos/internal/dataset"
	"psephos/internal/pipeline"
	"psephos/internal/scrape"
	"psephos/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	cmd := os.Args[1]
	switch cmd {
	case "dataset:load":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		path := fs.String("path", cfg.DatasetPath, "contest dataset xlsx path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*path) == "" {
			must(fmt.Errorf("--path or DATASET_PATH is required"))
		}
		ds, err := dataset.Load(*path)
		must(err)
		must(db.ReplaceContests(ds))
		fmt.Printf("dataset loaded rows=%d columns=%d\n", len(ds.Rows), len(ds.Columns))
	case "systems:scrape":
		client := scrape.NewClient(cfg)
		doc, err := client.FetchDocument(context.Background())
		must(err)
		rows, err := scrape.ExtractSystemsTable(doc, cfg.SystemsTableIndex)
		must(err)
		must(db.ReplaceRawSystems(rows))
		fmt.Printf("scrape done url=%s table=%d rows=%d\n", cfg.SystemsPageURL, cfg.SystemsTableIndex, len(rows))
	case "systems:process":
		raw, err := db.ListRawSystems()
		must(err)
		if len(raw) == 0 {
			must(fmt.Errorf("no raw rows stored; run systems:scrape first"))
		}
		normalized := pipeline.NormalizeRows(raw)
		must(db.ReplaceNormalizedSystems(normalized))
		fmt.Printf("normalize done raw=%d normalized=%d countries=%d\n",
			len(raw), len(normalized), pipeline.DistinctCountries(normalized))
	case "chart:render":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		out := fs.String("out", cfg.ChartOutputPath, "output png path")
		_ = fs.Parse(os.Args[2:])
		normalized, err := db.ListNormalizedSystems()
		must(err)
		if len(normalized) == 0 {
			must(fmt.Errorf("no normalized rows stored; run systems:process first"))
		}
		counts := pipeline.CountSystems(normalized)
		caption := cfg.ChartCaption
		if caption == "" {
			caption = "Source: " + cfg.SystemsPageURL
		}
		must(chart.RenderSystemCounts(counts, pipeline.DistinctCountries(normalized), cfg.ChartTitle, caption, *out))
		fmt.Printf("chart written systems=%d output=%s\n", len(counts), *out)
	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--out is required"))
		}
		normalized, err := db.ListNormalizedSystems()
		must(err)
		if len(normalized) == 0 {
			must(fmt.Errorf("no normalized rows stored; run systems:process first"))
		}
		must(pipeline.ExportNormalizedToXLSX(normalized, *out))
		fmt.Printf("exported %d rows to %s\n", len(normalized), *out)
	case "run":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		out := fs.String("out", cfg.ChartOutputPath, "output png path")
		_ = fs.Parse(os.Args[2:])
		runner := pipeline.NewRunner(db, cfg)
		res, err := runner.Run(context.Background(), *out)
		must(err)
		fmt.Printf("run done raw=%d normalized=%d systems=%d countries=%d chart=%s\n",
			res.RawRows, res.NormalizedRows, res.Systems, res.Countries, res.ChartPath)
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: psephos <command>")
	fmt.Println("commands:")
	fmt.Println("  dataset:load --path=./contests.xlsx")
	fmt.Println("  systems:scrape")
	fmt.Println("  systems:process")
	fmt.Println("  chart:render --out=./out/voting-systems.png")
	fmt.Println("  export:xlsx --out=./out/systems.xlsx")
	fmt.Println("  run --out=./out/voting-systems.png")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
