// Command metagen analyzes a local document and prints its metadata
// record as JSON.
//
//	metagen [-insights=false] [-stats] path/to/file
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BerylCAtieno/document-metadata-api/internal/app"
	"github.com/BerylCAtieno/document-metadata-api/internal/config"
	"github.com/BerylCAtieno/document-metadata-api/internal/metadata"
	"github.com/BerylCAtieno/document-metadata-api/internal/models"
	"github.com/BerylCAtieno/document-metadata-api/internal/utils"
)

func main() {
	withInsights := flag.Bool("insights", true, "generate LLM summary, key points and document type")
	withStats := flag.Bool("stats", false, "print the full analysis including text statistics")
	verbose := flag.Bool("v", false, "log progress to stderr")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] file\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *withInsights, *withStats, *verbose); err != nil {
		fmt.Fprintln(os.Stderr, "metagen:", err)
		os.Exit(1)
	}
}

func run(path string, withInsights, withStats, verbose bool) error {
	var overrides []func(*config.Config)
	if !withInsights {
		overrides = append(overrides, func(c *config.Config) { c.InsightsEnabled = false })
	}

	cfg, err := config.LoadWith(overrides...)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := utils.NopLogger()
	if verbose {
		logger = utils.NewLoggerWithWriter(cfg.LogLevel, os.Stderr)
	}

	pipe, err := app.NewPipeline(cfg, logger)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	file := models.UploadedFile{
		Name:      filepath.Base(path),
		SizeBytes: info.Size(),
		Content:   f,
	}

	analysis, err := pipe.Run(context.Background(), file, withInsights)
	if err != nil {
		return err
	}

	var out []byte
	if withStats {
		out, err = json.MarshalIndent(analysis, "", "  ")
	} else {
		out, err = metadata.ExportJSON(analysis.Metadata)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(os.Stdout, string(out))
	return err
}
