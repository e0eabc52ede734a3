package main

import (
	"context"
	"flag"
	"os"

	"namdo-bot-be/internal/bootstrap"
	"namdo-bot-be/internal/config"
	"namdo-bot-be/pkg/database"
	"namdo-bot-be/pkg/export"

	"github.com/fatih/color"
)

func main() {
	outDir := flag.String("out", ".", "directory for the CSV files")
	runSync := flag.Bool("sync", false, "fetch festivals from TourAPI before exporting")
	flag.Parse()

	info := color.New(color.FgCyan)
	ok := color.New(color.FgGreen, color.Bold)
	warn := color.New(color.FgYellow)
	fail := color.New(color.FgRed, color.Bold)

	cfg := config.Load()
	db, err := database.Open(database.Options{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.Connection,
	})
	if err != nil {
		fail.Printf("✗ database: %v\n", err)
		os.Exit(1)
	}

	container := bootstrap.NewContainer(db, cfg)
	defer container.Close()
	ctx := context.Background()

	if *runSync {
		info.Printf("→ syncing festivals for %v\n", cfg.Festival.Regions)
		report, err := container.FestivalService.Sync(ctx)
		if err != nil {
			fail.Printf("✗ sync: %v\n", err)
			os.Exit(1)
		}
		for region, n := range report.PerRegion {
			info.Printf("  %s: %d\n", region, n)
		}
		if report.Failed > 0 {
			warn.Printf("  %d detail lookups failed and were stored empty\n", report.Failed)
		}
	}

	base, common, intro, err := container.FestivalService.ExportRows(ctx)
	if err != nil {
		fail.Printf("✗ load festivals: %v\n", err)
		os.Exit(1)
	}

	files := []struct {
		name string
		keys []string
		rows []export.Row
	}{
		{export.BaseFile, export.BaseKeys, base},
		{export.CommonFile, export.CommonKeys, common},
		{export.IntroFile, export.IntroKeys, intro},
	}
	for _, f := range files {
		written, err := export.WriteFile(*outDir, f.name, f.keys, f.rows)
		if err != nil {
			fail.Printf("✗ %s: %v\n", f.name, err)
			os.Exit(1)
		}
		if !written {
			warn.Printf("- %s: no data, skipped\n", f.name)
			continue
		}
		ok.Printf("✓ %s (%d rows)\n", f.name, len(f.rows))
	}
}
