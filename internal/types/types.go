package types

import "time"

// ScrapedPage holds the visible text extracted from a rep firm's website.
type ScrapedPage struct {
	URL     string `json:"url"`
	RawText string `json:"raw_text"`
}

// CatalogRow is one (brand, product, category) entry for a rep firm.
// Every row carries exactly these four fields; empty strings are allowed.
type CatalogRow struct {
	RepFirmName   string `json:"rep_firm_name"`
	Brand         string `json:"brand_carried"`
	Product       string `json:"product_covered"`
	SpaceCategory string `json:"space"`
}

// ScrapeResult represents the outcome of scraping a single rep firm.
type ScrapeResult struct {
	RepFirmName string       `json:"rep_firm_name"`
	URL         string       `json:"url"`
	OutputPath  string       `json:"output_path,omitempty"`
	Rows        []CatalogRow `json:"rows,omitempty"`
	Error       string       `json:"error,omitempty"`
}

// Config holds the configuration for the pipeline
type Config struct {
	Timeout            time.Duration
	RequestDelay       time.Duration
	UseHeadlessBrowser bool
	UserAgent          string
	MaxPromptChars     int
	OutputDir          string
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Timeout:            30 * time.Second,
		RequestDelay:       1 * time.Second,
		UseHeadlessBrowser: true,
		UserAgent:          "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
		MaxPromptChars:     12000,
		OutputDir:          "rep_firm_data",
	}
}

// Logger defines the logging interface
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}
