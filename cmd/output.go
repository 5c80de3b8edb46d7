package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/geobiz/internal/export"
	"github.com/sells-group/geobiz/internal/model"
	"github.com/sells-group/geobiz/internal/view"
)

// Output formats accepted by --format.
const (
	formatJSON  = "json"
	formatTable = "table"
	formatXLSX  = "xlsx"
)

// writeResult renders resp to w in the given format.
func writeResult(w io.Writer, resp *model.SearchResponse, format string) error {
	switch format {
	case formatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			return eris.Wrap(err, "encode json")
		}
		return nil
	case formatTable:
		return export.WriteTable(w, resp)
	case formatXLSX:
		return export.WriteXLSX(w, resp)
	default:
		return eris.Errorf("unknown format %q (want json, table or xlsx)", format)
	}
}

// filterIndustry returns a copy of resp whose businesses are narrowed to
// one industry filter. The analytics still describe the full result.
func filterIndustry(resp *model.SearchResponse, industry string) *model.SearchResponse {
	if industry == "" || industry == view.AllIndustries {
		return resp
	}
	filtered := *resp
	filtered.Businesses = view.Select(view.GroupByIndustry(resp.Businesses), industry)
	return &filtered
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns path for writing, or stdout when path is empty.
func openOutput(path string, stdout io.Writer) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, eris.Wrapf(err, "create output %s", path)
	}
	return f, nil
}
