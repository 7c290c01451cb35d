package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/imkonsowa/rera-insights/analysis"
	"github.com/imkonsowa/rera-insights/config"
	"github.com/imkonsowa/rera-insights/llm"
	"github.com/imkonsowa/rera-insights/logger"
	"github.com/imkonsowa/rera-insights/metrics"
	"github.com/imkonsowa/rera-insights/models"
	"github.com/spf13/pflag"
)

type stringifier interface {
	Stringify() string
}

func main() {
	configPath := pflag.StringP("config", "c", config.DefaultPath, "path to the config file")
	mode := pflag.StringP("mode", "m", analysis.OperationListings, "listings | valuation")
	address := pflag.StringP("address", "a", "", "address to analyse")
	lat := pflag.Float64("lat", 0, "latitude of the pinned location")
	lng := pflag.Float64("lng", 0, "longitude of the pinned location")
	text := pflag.Bool("text", false, "print a human readable summary instead of JSON")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	// keep stdout clean for the result
	slog.SetDefault(logger.New(cfg.Log, os.Stderr))

	req := models.AnalysisRequest{Address: *address}
	if pflag.CommandLine.Changed("lat") || pflag.CommandLine.Changed("lng") {
		req.Lat, req.Lng = lat, lng
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool := llm.NewPool(ctx, 1, 1)
	defer pool.Stop()

	analyzer, err := analysis.FromConfig(ctx, cfg, pool, metrics.New())
	if err != nil {
		log.Fatal(err)
	}

	var result stringifier
	switch *mode {
	case analysis.OperationListings:
		listings, err := analyzer.FindListings(ctx, req)
		if err != nil {
			log.Fatalf("failed to find listings: %v", err)
		}
		result = listingsSummary(*listings)
	case analysis.OperationValuation:
		report, err := analyzer.ValuationReport(ctx, req)
		if err != nil {
			log.Fatalf("failed to build valuation report: %v", err)
		}
		result = report
	default:
		log.Fatalf("unknown mode %q", *mode)
	}

	if *text {
		fmt.Print(result.Stringify())
		return
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Fatal("failed to encode result:", err)
	}
}

type listingsSummary models.ListingsResponse

func (l listingsSummary) Stringify() string {
	if len(l.Listings) == 0 {
		return "no listings found\n"
	}

	var out string
	for i := range l.Listings {
		out += l.Listings[i].Stringify() + "\n"
	}

	return out
}
