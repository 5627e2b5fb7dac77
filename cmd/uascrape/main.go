package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/spf13/cobra"

	"umbodsmadur-scraper/lib/casestore"
	"umbodsmadur-scraper/lib/scrapers/umbodsmadur"
	"umbodsmadur-scraper/lib/serviceutil"
	"umbodsmadur-scraper/lib/telemetry"
)

var (
	startId      int
	targetCount  int
	outputPath   string
	databasePath string
	baseUrl      string
	concurrency  int
)

var rootCmd = &cobra.Command{
	Use:   "uascrape",
	Short: "uascrape discovers and extracts case records from the Umboðsmaður Alþingis case site.",
	Run:   run,
}

func init() {
	flags := rootCmd.Flags()
	flags.IntVar(&startId, "start-id", 11150, "id to start scanning backwards from")
	flags.IntVar(&targetCount, "count", 20, "number of valid cases to find")
	flags.StringVar(&outputPath, "output", "output/cases.json", "path of the output artifact")
	flags.StringVar(&databasePath, "database", "", "optional sqlite database to upsert cases into")
	flags.StringVar(&baseUrl, "base-url", umbodsmadur.DefaultBaseUrl, "case page url prefix")
	flags.IntVar(&concurrency, "concurrency", 10, "ceiling on in-flight fetches")
}

func run(cmd *cobra.Command, args []string) {
	ctx := serviceutil.SignalContext()

	tel, err := telemetry.SetupFromEnv(ctx, "uascrape")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer tel.Shutdown(context.Background())

	var store *casestore.Store
	if databasePath != "" {
		database, err := casestore.OpenDB(databasePath)
		if err != nil {
			serviceutil.Fatal("failed to open case database", err)
		}
		defer database.Close()
		s := casestore.NewStore(database)
		store = &s
	}

	pw := progress.NewWriter()
	pw.SetUpdateFrequency(time.Millisecond * 100)
	go pw.Render()
	tracker := &progress.Tracker{
		Message: "scraping cases",
		Total:   int64(targetCount),
	}
	pw.AppendTracker(tracker)

	scraper := umbodsmadur.NewScraper(umbodsmadur.Options{
		BaseUrl:     baseUrl,
		Concurrency: concurrency,
	})
	sink := &umbodsmadur.Sink{
		OutputPath: outputPath,
		Store:      store,
		Tracker:    tracker,
	}

	scraper.Run(ctx, umbodsmadur.RunOptions{
		StartId:     startId,
		TargetCount: targetCount,
	}, sink)

	tracker.MarkAsDone()
	pw.Stop()
	for pw.IsRenderInProgress() {
		time.Sleep(time.Millisecond * 10)
	}

	// flush even when the run was interrupted, whatever was found is kept
	err = sink.Flush(targetCount)
	if err != nil {
		serviceutil.Fatal("failed to write output artifact", err)
	}

	slog.Info("scrape complete", "found", sink.Len(), "output", outputPath)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
