package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/geobiz/internal/model"
	"github.com/sells-group/geobiz/internal/provider"
)

var (
	batchFile        string
	batchConcurrency int
	batchOutput      string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run every query in a YAML file and write JSON lines",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if batchConcurrency > 0 {
			cfg.Batch.MaxConcurrent = batchConcurrency
		}

		svc, err := initService("batch")
		if err != nil {
			return err
		}

		queries, err := loadBatchFile(batchFile)
		if err != nil {
			return err
		}

		out, err := openOutput(batchOutput, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer out.Close() //nolint:errcheck

		_, err = processBatch(ctx, svc, queries, batchOptions{
			Concurrency:       cfg.Batch.MaxConcurrent,
			RequestsPerMinute: cfg.Batch.RequestsPerMinute,
		}, out)
		return err
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchFile, "file", "queries.yaml", "YAML file listing queries")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "max concurrent searches (default from config)")
	batchCmd.Flags().StringVar(&batchOutput, "output", "", "JSON lines output file (default stdout)")
	rootCmd.AddCommand(batchCmd)
}

// batchEntry is one item of the batch file.
type batchEntry struct {
	Query     string   `yaml:"query"`
	Geography string   `yaml:"geography"`
	Lat       *float64 `yaml:"lat"`
	Lng       *float64 `yaml:"lng"`
}

func (e batchEntry) toQuery() model.Query {
	q := model.Query{Text: e.Query, Geography: e.Geography}
	if e.Lat != nil || e.Lng != nil {
		loc := model.LatLng{}
		if e.Lat != nil {
			loc.Lat = *e.Lat
		}
		if e.Lng != nil {
			loc.Lng = *e.Lng
		}
		q.Location = &loc
	}
	return q
}

// loadBatchFile reads a YAML list of queries.
func loadBatchFile(path string) ([]model.Query, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read batch file %s", path)
	}
	return parseBatch(data)
}

func parseBatch(data []byte) ([]model.Query, error) {
	var entries []batchEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, eris.Wrap(err, "parse batch file")
	}
	queries := make([]model.Query, len(entries))
	for i, e := range entries {
		queries[i] = e.toQuery()
	}
	return queries, nil
}

type batchOptions struct {
	Concurrency       int
	RequestsPerMinute int // 0 disables pacing
}

// batchLine is one JSON line of batch output.
type batchLine struct {
	Index     int                   `json:"index"`
	Query     string                `json:"query"`
	Geography string                `json:"geography,omitempty"`
	Response  *model.SearchResponse `json:"response,omitempty"`
	Error     string                `json:"error,omitempty"`
	Transient bool                  `json:"transient,omitempty"`
}

type batchStats struct {
	Succeeded int64
	Failed    int64
}

// processBatch runs queries concurrently and writes one JSON line per query
// as each finishes. A failed query is reported in its line and does not
// stop the others.
func processBatch(ctx context.Context, svc searcher, queries []model.Query, opts batchOptions, out io.Writer) (batchStats, error) {
	if len(queries) == 0 {
		zap.L().Info("no queries in batch")
		return batchStats{}, nil
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}

	var limiter *rate.Limiter
	if opts.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RequestsPerMinute)), 1)
	}

	zap.L().Info("processing batch",
		zap.Int("queries", len(queries)),
		zap.Int("concurrency", opts.Concurrency),
		zap.Int("requests_per_minute", opts.RequestsPerMinute),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	var (
		mu                sync.Mutex
		enc               = json.NewEncoder(out)
		succeeded, failed atomic.Int64
	)

	for i, q := range queries {
		g.Go(func() error {
			line := batchLine{Index: i, Query: q.Text, Geography: q.Geography}

			var err error
			if limiter != nil {
				err = limiter.Wait(gctx)
			}
			if err == nil {
				line.Response, err = svc.Search(gctx, q)
			}
			if err != nil {
				failed.Add(1)
				line.Error = err.Error()
				var pe *provider.Error
				if errors.As(err, &pe) {
					line.Transient = pe.Transient()
				}
				zap.L().Error("batch query failed", zap.Int("index", i), zap.String("query", q.Text), zap.Error(err))
			} else {
				succeeded.Add(1)
			}

			mu.Lock()
			defer mu.Unlock()
			if encErr := enc.Encode(line); encErr != nil {
				return eris.Wrap(encErr, "write batch line")
			}
			return nil // don't abort batch on individual failure
		})
	}

	stats := batchStats{}
	err := g.Wait()
	stats.Succeeded, stats.Failed = succeeded.Load(), failed.Load()

	zap.L().Info("batch complete",
		zap.Int("total", len(queries)),
		zap.Int64("succeeded", stats.Succeeded),
		zap.Int64("failed", stats.Failed),
	)
	if err != nil {
		return stats, eris.Wrap(err, "batch processing")
	}
	return stats, nil
}
