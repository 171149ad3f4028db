// Package pipeline orchestrates the four-stage line sheet workflow:
// fetch page text, categorize it with the model, parse the reply into
// catalog rows, and export a spreadsheet. Stages run strictly in sequence;
// each either completes or fails the run with a stage-tagged error.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"linesheet-extractor/fetcher"
	"linesheet-extractor/internal/types"
	"linesheet-extractor/model"
	"linesheet-extractor/parser"
	"linesheet-extractor/writer"
)

// Pipeline wires the four stages together for one or more rep firms.
type Pipeline struct {
	config  *types.Config
	logger  types.Logger
	fetcher *fetcher.Fetcher
	client  *model.Client
}

// BatchRequest identifies one rep firm in a batch run.
type BatchRequest struct {
	URL         string
	RepFirmName string
}

// New constructs a pipeline. The model credential is validated here, before
// any network activity, so a missing key fails the run up front.
func New(config *types.Config, modelCfg model.Config, logger types.Logger) (*Pipeline, error) {
	if modelCfg.MaxPromptChars == 0 {
		modelCfg.MaxPromptChars = config.MaxPromptChars
	}
	client, err := model.New(modelCfg, logger)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		config:  config,
		logger:  logger,
		fetcher: fetcher.New(config, logger),
		client:  client,
	}, nil
}

// ScrapeLineSheet runs the full pipeline for a single rep firm URL and
// returns the path of the spreadsheet written. repFirmName may be empty, in
// which case the model is asked to extract it from the page content.
// outputFilename may be empty, in which case a standardized timestamped name
// is generated. An empty parsed row set is a successful (if unhelpful) run.
func (p *Pipeline) ScrapeLineSheet(ctx context.Context, url, repFirmName, outputFilename string) (string, error) {
	startTime := time.Now()
	p.logger.Infof("Starting rep firm line sheet scraping for: %s", url)

	page, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", fmt.Errorf("scrape %s: %w", url, err)
	}

	response, err := p.client.Categorize(ctx, page.RawText, repFirmName)
	if err != nil {
		return "", fmt.Errorf("scrape %s: %w", url, err)
	}

	rows := parser.Parse(response, repFirmName, p.logger)
	p.logger.Infof("Parsed %d catalog rows", len(rows))

	outputPath, err := p.outputPath(outputFilename, repFirmName)
	if err != nil {
		return "", err
	}

	finalPath, err := writer.Write(rows, outputPath)
	if err != nil {
		return "", fmt.Errorf("scrape %s: %w", url, err)
	}

	p.logger.Infof("Scraping completed in %v, results saved to: %s", time.Since(startTime), finalPath)
	return finalPath, nil
}

// ScrapeBatch runs one independent pipeline invocation per rep firm,
// sequentially, pausing RequestDelay between firms. A failed firm is
// recorded in its result and does not abort the batch. When
// consolidatedFilename is non-empty (or there is more than one firm), all
// successfully parsed rows are additionally written to one combined
// workbook, whose path is returned alongside the per-firm results.
func (p *Pipeline) ScrapeBatch(ctx context.Context, requests []BatchRequest, consolidatedFilename string) ([]types.ScrapeResult, string, error) {
	startTime := time.Now()
	p.logger.Infof("Starting batch scraping of %d rep firms", len(requests))

	results := make([]types.ScrapeResult, 0, len(requests))
	var allRows []types.CatalogRow

	for i, req := range requests {
		if i > 0 {
			select {
			case <-time.After(p.config.RequestDelay):
			case <-ctx.Done():
				return results, "", ctx.Err()
			}
		}

		p.logger.Infof("Processing rep firm %d/%d: %s", i+1, len(requests), req.URL)
		result := types.ScrapeResult{RepFirmName: req.RepFirmName, URL: req.URL}

		rows, outputPath, err := p.scrapeRows(ctx, req.URL, req.RepFirmName)
		if err != nil {
			p.logger.Warnf("Failed to scrape %s: %v", req.URL, err)
			result.Error = err.Error()
		} else {
			result.Rows = rows
			result.OutputPath = outputPath
			allRows = append(allRows, rows...)
		}
		results = append(results, result)
	}

	consolidatedPath := ""
	if len(requests) > 1 || consolidatedFilename != "" {
		name := consolidatedFilename
		if name == "" {
			name = writer.BatchFilename(len(requests), time.Now())
		}
		path, err := p.outputPath(name, "")
		if err != nil {
			return results, "", err
		}
		consolidatedPath, err = writer.Write(allRows, path)
		if err != nil {
			return results, "", err
		}
		p.logger.Infof("Consolidated results saved to: %s", consolidatedPath)
	}

	succeeded := 0
	for _, r := range results {
		if r.Error == "" {
			succeeded++
		}
	}
	p.logger.Infof("Batch completed in %v: %d/%d firms succeeded", time.Since(startTime), succeeded, len(requests))

	return results, consolidatedPath, nil
}

// scrapeRows is ScrapeLineSheet minus the consolidated bookkeeping: it runs
// the stages for one firm and also returns the parsed rows for reuse.
func (p *Pipeline) scrapeRows(ctx context.Context, url, repFirmName string) ([]types.CatalogRow, string, error) {
	page, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, "", err
	}

	response, err := p.client.Categorize(ctx, page.RawText, repFirmName)
	if err != nil {
		return nil, "", err
	}

	rows := parser.Parse(response, repFirmName, p.logger)

	outputPath, err := p.outputPath("", repFirmName)
	if err != nil {
		return nil, "", err
	}
	finalPath, err := writer.Write(rows, outputPath)
	if err != nil {
		return nil, "", err
	}

	return rows, finalPath, nil
}

// outputPath resolves the target file inside the configured output
// directory, generating a standardized name when none was given.
func (p *Pipeline) outputPath(filename, repFirmName string) (string, error) {
	if filename == "" {
		filename = writer.DefaultFilename(repFirmName, time.Now())
	}
	if p.config.OutputDir == "" || filepath.IsAbs(filename) {
		return filename, nil
	}
	if err := writer.EnsureOutputDir(p.config.OutputDir); err != nil {
		return "", types.NewWriteError("failed to create output directory", err)
	}
	return filepath.Join(p.config.OutputDir, filename), nil
}

// Close cleans up resources
func (p *Pipeline) Close() {
	if p.fetcher != nil {
		p.fetcher.Close()
	}
}
