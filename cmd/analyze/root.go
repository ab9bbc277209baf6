package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"transcript-backend/internal/analyses"
	"transcript-backend/internal/bootstrap"
	"transcript-backend/internal/report"
	"transcript-backend/internal/shared/config"
	"transcript-backend/internal/shared/telemetry"
	"transcript-backend/internal/transcripts"
)

const (
	formatJSON = "json"
	formatHTML = "html"
)

var (
	pdfPath string
	format  string
	outPath string
)

var rootCmd = &cobra.Command{
	Use:          "analyze",
	Short:        "Analyze an earnings call transcript PDF",
	Long:         "Runs extraction and structured analysis on a local PDF using the same configuration as the API server.",
	SilenceUsage: true,
	RunE:         runAnalyze,
}

func init() {
	rootCmd.Flags().StringVar(&pdfPath, "pdf", "", "path to the transcript PDF (required)")
	rootCmd.Flags().StringVar(&format, "format", formatJSON, "output format: json or html")
	rootCmd.Flags().StringVarP(&outPath, "out", "o", "", "write output to this file instead of stdout")
	_ = rootCmd.MarkFlagRequired("pdf")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != formatJSON && format != formatHTML {
		return fmt.Errorf("unsupported format %q", format)
	}

	cfg := config.Load()
	telemetry.Init(cfg.LogLevel, cfg.LogFormat)
	defer telemetry.Sync()

	data, err := os.ReadFile(pdfPath)
	if err != nil {
		return fmt.Errorf("read pdf: %w", err)
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := app.TranscriptService.Process(ctx, transcripts.UploadedDocument{
		Data:     data,
		FileName: pdfPath,
		MimeType: "application/pdf",
	})
	if err != nil {
		return err
	}

	if outPath == "" {
		return write(cmd.OutOrStdout(), format, result)
	}
	return writeFile(outPath, format, result)
}

// writeFile renders into path. A failed close is returned.
func writeFile(path, format string, result analyses.Result) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()
	return write(f, format, result)
}

func write(w io.Writer, format string, result analyses.Result) error {
	if format == formatHTML {
		return report.Render(w, result)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
