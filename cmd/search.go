package main

import (
	"context"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/geobiz/internal/model"
)

var (
	searchGeography string
	searchLat       float64
	searchLng       float64
	searchIndustry  string
	searchFormat    string
	searchOutput    string
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search for businesses matching an activity",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if searchFormat == formatXLSX && searchOutput == "" {
			return eris.New("--output is required for xlsx format")
		}

		svc, err := initService("search")
		if err != nil {
			return err
		}

		q := model.Query{
			Text:      strings.Join(args, " "),
			Geography: searchGeography,
		}
		if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lng") {
			q.Location = &model.LatLng{Lat: searchLat, Lng: searchLng}
		}

		out, err := openOutput(searchOutput, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer out.Close() //nolint:errcheck

		return runSearch(ctx, svc, q, searchIndustry, searchFormat, out)
	},
}

// runSearch executes one query and writes the result, optionally narrowed
// to one industry.
func runSearch(ctx context.Context, svc searcher, q model.Query, industry, format string, out io.Writer) error {
	resp, err := svc.Search(ctx, q)
	if err != nil {
		return eris.Wrap(err, "search")
	}
	return writeResult(out, filterIndustry(resp, industry), format)
}

func init() {
	searchCmd.Flags().StringVar(&searchGeography, "geography", "", "region to search in (default: near --lat/--lng)")
	searchCmd.Flags().Float64Var(&searchLat, "lat", 0, "caller latitude used to bias results")
	searchCmd.Flags().Float64Var(&searchLng, "lng", 0, "caller longitude used to bias results")
	searchCmd.Flags().StringVar(&searchIndustry, "industry", "", "only list businesses in this industry (\"Other\" for unclassified)")
	searchCmd.Flags().StringVar(&searchFormat, "format", formatJSON, "output format: json, table or xlsx")
	searchCmd.Flags().StringVar(&searchOutput, "output", "", "output file (default stdout)")
	rootCmd.AddCommand(searchCmd)
}
