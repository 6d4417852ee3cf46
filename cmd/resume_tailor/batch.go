package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/logger"
)

var batchCmd = &cobra.Command{
	Use:   "batch <job files or directories...>",
	Short: "Tailor one resume to many job descriptions",
	Long: `Runs an independent pipeline per job description, several at a time. Each
job file produces <out-dir>/<job name>.tex. A failed job does not stop the
others; the command fails if any job failed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

var (
	batchResume      string
	batchOutDir      string
	batchConcurrency int
)

func init() {
	batchCmd.Flags().StringVarP(&batchResume, "resume", "r", "", "Path to the source resume (PDF or text)")
	batchCmd.Flags().StringVarP(&batchOutDir, "out-dir", "o", "out", "Directory for generated LaTeX files")
	batchCmd.Flags().IntVarP(&batchConcurrency, "concurrency", "c", 3, "Maximum concurrent pipeline runs")
	_ = batchCmd.MarkFlagRequired("resume")
	rootCmd.AddCommand(batchCmd)
}

// jobFiles expands directories to the .txt, .md and .html files they contain
func jobFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", arg, err)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", arg, err)
		}
		for _, e := range entries {
			switch strings.ToLower(filepath.Ext(e.Name())) {
			case ".txt", ".md", ".html", ".htm":
				if !e.IsDir() {
					files = append(files, filepath.Join(arg, e.Name()))
				}
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	files, err := jobFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no job description files found")
	}

	resumeText, err := ingestion.ReadResume(batchResume)
	if err != nil {
		return err
	}

	client, err := newClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	p, err := newPipeline(cfg, client, true)
	if err != nil {
		return err
	}

	var (
		mu       sync.Mutex
		failures = map[string]error{}
	)

	g, gctx := errgroup.WithContext(ctx)
	if batchConcurrency < 1 {
		batchConcurrency = 1
	}
	g.SetLimit(batchConcurrency)

	for _, file := range files {
		g.Go(func() error {
			name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
			target := filepath.Join(batchOutDir, name+".tex")

			err := tailorOne(gctx, p, resumeText, file, target)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures[file] = err
				logger.Error().Err(err).Str("job", file).Msg("batch job failed")
				_, _ = fmt.Fprintf(out, "FAIL %s: %v\n", file, err)
				return nil
			}
			_, _ = fmt.Fprintf(out, "ok   %s -> %s\n", file, target)
			return nil
		})
	}
	_ = g.Wait()

	if len(failures) > 0 {
		return fmt.Errorf("%d of %d jobs failed", len(failures), len(files))
	}
	return nil
}
