package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"linesheet-extractor/internal/types"
	"linesheet-extractor/model"
	"linesheet-extractor/pipeline"
)

func main() {
	// Load .env file if present
	_ = godotenv.Load()

	// Parse command line flags
	var (
		urlFlag        = flag.String("url", "", "Rep firm line sheet URL to scrape")
		urlsFlag       = flag.String("urls", "", "Comma-separated list of URLs (batch mode)")
		firmFlag       = flag.String("firm", "", "Rep firm name (optional, extracted from content if omitted)")
		outputFlag     = flag.String("output", "", "Output spreadsheet filename (default: generated)")
		outputDir      = flag.String("output-dir", "rep_firm_data", "Directory for output files")
		timeout        = flag.Duration("timeout", 30*time.Second, "Page load timeout")
		requestDelay   = flag.Duration("delay", 1*time.Second, "Delay between batch requests")
		useBrowser     = flag.Bool("browser", true, "Use headless browser for JavaScript-heavy sites")
		httpOnly       = flag.Bool("http-only", false, "Use HTTP requests only (disable headless browser)")
		maxPromptChars = flag.Int("max-prompt-chars", 12000, "Maximum page text characters embedded in the prompt")
		verbose        = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	// Validate flags - either --url or --urls must be provided
	if *urlFlag == "" && *urlsFlag == "" {
		log.Fatal("Either --url or --urls flag is required")
	}
	if *urlFlag != "" && *urlsFlag != "" {
		log.Fatal("Cannot use both --url and --urls flags")
	}

	// Setup logging
	logger := logrus.New()

	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	// Set log level from LOG_LEVEL env if present
	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		if level, err := logrus.ParseLevel(levelStr); err == nil {
			logger.SetLevel(level)
		}
	} else if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	// Create configuration
	config := types.DefaultConfig()
	config.Timeout = *timeout
	config.RequestDelay = *requestDelay
	config.UseHeadlessBrowser = *useBrowser && !*httpOnly
	config.MaxPromptChars = *maxPromptChars
	config.OutputDir = *outputDir

	// The model credential is read once here and handed to the client
	// explicitly; its absence fails before any network activity.
	modelCfg := model.DefaultConfig()
	modelCfg.APIKey = os.Getenv("REP_FIRM_KEY")
	modelCfg.Endpoint = os.Getenv("REP_FIRM_ENDPOINT")
	modelCfg.MaxPromptChars = *maxPromptChars

	p, err := pipeline.New(config, modelCfg, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize pipeline: %v", err)
	}
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	startTime := time.Now()

	if *urlFlag != "" {
		// Single firm mode
		outputPath, err := p.ScrapeLineSheet(ctx, *urlFlag, *firmFlag, *outputFlag)
		if err != nil {
			logger.Fatalf("Scraping failed: %v", err)
		}
		logger.Infof("Results saved to: %s", outputPath)
	} else {
		// Batch mode: one independent pipeline run per firm
		var requests []pipeline.BatchRequest
		for _, u := range strings.Split(*urlsFlag, ",") {
			u = strings.TrimSpace(u)
			if u != "" {
				requests = append(requests, pipeline.BatchRequest{URL: u})
			}
		}

		results, consolidatedPath, err := p.ScrapeBatch(ctx, requests, *outputFlag)
		if err != nil {
			logger.Fatalf("Batch scraping failed: %v", err)
		}

		succeeded := 0
		for _, r := range results {
			if r.Error == "" {
				succeeded++
			}
		}
		logger.Infof("Batch finished: %d/%d firms succeeded", succeeded, len(results))
		if consolidatedPath != "" {
			logger.Infof("Consolidated results saved to: %s", consolidatedPath)
		}
		if succeeded == 0 && len(results) > 0 {
			os.Exit(1)
		}
	}

	logger.Infof("Completed in %v", time.Since(startTime))
}
