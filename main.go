package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"agent-staffing/config"
	"agent-staffing/formatter"
	"agent-staffing/logging"
	"agent-staffing/metrics"
	"agent-staffing/models"
	"agent-staffing/parser"
	"agent-staffing/scheduler"
	"agent-staffing/validator"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Define flags
	input := flag.String("input", "", "Forecast file, .csv or .xlsx (required)")
	batches := flag.Bool("batches", false, "Treat -input as a call batch CSV (name, aht, start, end, calls)")
	scenarioPath := flag.String("scenario", "", "YAML scenario file with service targets and shrinkage")
	format := flag.String("format", "text", "Output format: text|json|csv")
	capacity := flag.Int("capacity", -1, "Maximum agents available per interval (0 = unlimited, default from scenario)")
	workers := flag.Int("workers", cfg.Workers, "Intervals calculated concurrently")
	logLevel := flag.String("log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	logFormat := flag.String("log-format", cfg.LogFormat, "Log format: console|json")
	metricsAddr := flag.String("metrics-addr", cfg.MetricsAddr, "Address to expose Prometheus metrics (e.g., :9090)")
	pushGateway := flag.String("push-url", cfg.PushURL, "Pushgateway URL to push metrics to (e.g., http://localhost:9091)")
	wait := flag.Bool("wait", false, "Keep process running after completion to allow for metric scraping")

	// Parse command-line flags
	flag.Parse()

	runID := logging.Setup(os.Stderr, *logLevel, *logFormat)

	// Start metrics server if address provided
	if *metricsAddr != "" {
		go func() {
			http.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
			log.Info().Str("addr", *metricsAddr).Msg("metrics server listening")
			if err := http.ListenAndServe(*metricsAddr, nil); err != nil {
				log.Error().Err(err).Msg("metrics server error")
			}
		}()
	}

	// Validate required input flag
	if *input == "" {
		fmt.Println("Error: -input flag is required")
		fmt.Println("\nUsage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Validate format enum
	validFormats := map[string]bool{"text": true, "json": true, "csv": true}
	if !validFormats[*format] {
		fmt.Printf("Error: format must be one of: text, json, csv (got: %s)\n", *format)
		os.Exit(1)
	}

	scenario, err := config.LoadScenario(*scenarioPath)
	if err != nil {
		fmt.Printf("Error loading scenario: %v\n", err)
		os.Exit(1)
	}
	if *capacity >= 0 {
		scenario.Capacity = *capacity
	}

	points, err := loadForecast(*input, *batches)
	if err != nil {
		fmt.Printf("Error parsing file: %v\n", err)
		os.Exit(1)
	}

	if errs := validator.ValidateForecast(points); len(errs) > 0 {
		fmt.Println("Error: invalid forecast:")
		for _, msg := range errs.Messages() {
			fmt.Printf("  - %s\n", msg)
		}
		os.Exit(1)
	}

	log.Info().
		Int("intervals", len(points)).
		Float64("service_level", scenario.Service.ServiceLevel).
		Float64("target_answer_time", scenario.Service.TargetAnswerTime).
		Int("workers", *workers).
		Msg("calculating staffing plan")

	plan := scheduler.Calculate(points, scenario.Service, scenario.Shrinkage, scheduler.Options{
		Workers:  *workers,
		Capacity: scenario.Capacity,
	})
	plan.Intervals = scheduler.SortChronologically(plan.Intervals)
	metrics.ResetPlanGauges()
	metrics.RecordPlan(plan)

	log.Info().
		Float64("total_fte", plan.TotalFTE).
		Float64("average_service_level", plan.AverageServiceLevel).
		Int("peak_agents", plan.PeakAgents).
		Int("capacity_warnings", len(plan.CapacityWarnings)).
		Msg("staffing plan calculated")

	// Output based on format
	switch *format {
	case "json":
		fmt.Print(formatter.FormatJSON(plan))
	case "csv":
		fmt.Print(formatter.FormatCSV(plan))
	default: // "text"
		fmt.Print(formatter.FormatText(plan))
	}

	// Handle metrics pushing or waiting
	if *pushGateway != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := metrics.Push(ctx, *pushGateway, runID, cfg.PushRetries); err != nil {
			log.Error().Err(err).Msg("error pushing to Pushgateway")
		} else {
			log.Info().Str("url", *pushGateway).Msg("metrics successfully pushed to Pushgateway")
		}
		cancel()
	}

	if *wait && *metricsAddr != "" {
		log.Info().Msg("process kept alive for metric scraping, press Ctrl+C to exit")
		// Wait for interrupt signal
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		log.Info().Msg("exiting")
	} else if *metricsAddr != "" && *pushGateway == "" {
		// Small delay to allow final scrape if not waiting explicitly
		time.Sleep(100 * time.Millisecond)
	}
}

// loadForecast reads the forecast directly or buckets a call batch file into hourly points.
func loadForecast(path string, batches bool) ([]models.ForecastPoint, error) {
	if !batches {
		return parser.ParseFile(path)
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".csv" && ext != ".txt" {
		return nil, fmt.Errorf("call batches must be a CSV file (got %s)", ext)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open call batches: %w", err)
	}
	defer file.Close()

	data, err := parser.ParseCallBatches(file)
	if err != nil {
		return nil, err
	}
	return scheduler.BucketCallBatches(data), nil
}
