package parser

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/penwyp/go-claude-statusline/internal/core/model"
	"github.com/penwyp/go-claude-statusline/internal/util"
)

const maxLineSize = 10 * 1024 * 1024

// Parser is a struct for parsing usage log files.
type Parser struct {
	concurrency int
}

// ParseResult represents the result of parsing a single file.
type ParseResult struct {
	Index   int
	File    string
	Records []model.UsageRecord
	Skipped int
	Error   error
}

// NewParser creates a new Parser instance.
func NewParser(concurrency int) *Parser {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Parser{concurrency: concurrency}
}

// SessionIDFromPath returns the file name without its .jsonl extension.
func SessionIDFromPath(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".jsonl")
}

// ParseFile parses the log file at the specified path. Bad lines are skipped
// and counted; when reading stops early the records read so far are returned
// alongside the error.
func (p *Parser) ParseFile(path string) ([]model.UsageRecord, int, error) {
	file, err := os.Open(path)
	if err != nil {
		util.LogDebug(fmt.Sprintf("Failed to open file: %s - %v", path, err))
		return nil, 0, err
	}
	defer file.Close()

	sessionID := SessionIDFromPath(path)

	var records []model.UsageRecord
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineCount := 0
	skipped := 0
	for scanner.Scan() {
		lineCount++
		record, err := ParseLine(scanner.Bytes(), sessionID)
		if err != nil {
			if !errors.Is(err, ErrEmptyLine) {
				skipped++
				if !errors.Is(err, ErrNoUsage) {
					util.LogDebug(fmt.Sprintf("Skip invalid line %s:%d - %v", path, lineCount, err))
				}
			}
			continue
		}
		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		util.LogDebug(fmt.Sprintf("Error scanning file: %s at line %d - %v", path, lineCount, err))
		return records, skipped, err
	}

	return records, skipped, nil
}

// ParseFiles parses files concurrently. Each result carries the index of its
// file so callers can restore discovery order.
func (p *Parser) ParseFiles(ctx context.Context, files []string) <-chan ParseResult {
	start := time.Now()
	results := make(chan ParseResult, len(files))

	util.LogDebug(fmt.Sprintf("Start concurrent parsing of %d files, concurrency: %d", len(files), p.concurrency))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	go func() {
		for i, file := range files {
			i, file := i, file
			g.Go(func() error {
				if ctx.Err() != nil {
					results <- ParseResult{Index: i, File: file, Error: ctx.Err()}
					return nil
				}

				fileStart := time.Now()
				records, skipped, err := p.ParseFile(file)
				if err != nil {
					util.LogDebug(fmt.Sprintf("File parsing failed: %s, duration %v - %v", file, time.Since(fileStart), err))
				}

				results <- ParseResult{
					Index:   i,
					File:    file,
					Records: records,
					Skipped: skipped,
					Error:   err,
				}
				return nil
			})
		}

		_ = g.Wait()
		close(results)
		util.LogDebug(fmt.Sprintf("Concurrent parsing finished, total duration: %v", time.Since(start)))
	}()

	return results
}
