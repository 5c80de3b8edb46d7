package export

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/sells-group/geobiz/internal/model"
	"github.com/sells-group/geobiz/internal/view"
)

// WriteTable writes a plain-text registry of resp to out: the summary, one
// row per business, the analytics, the map view and the verification sources.
func WriteTable(out io.Writer, resp *model.SearchResponse) error {
	if _, err := fmt.Fprintf(out, "%s\n\n", resp.Summary); err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tINDUSTRY\tRATING\tPHONE\tCONTACT\tACTIVITIES")
	_, _ = fmt.Fprintln(w, "--\t----\t--------\t------\t-----\t-------\t----------")
	for _, b := range resp.Businesses {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			b.ID,
			truncate(b.Name, 40),
			b.Industry,
			FormatRating(b.Rating),
			b.Phone,
			FormatContact(b.ContactPerson),
			truncate(strings.Join(b.Activities, ", "), 60),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "\nIndustries:")
	for _, ic := range resp.Analytics.IndustryDistribution {
		_, _ = fmt.Fprintf(w, "  %s\t%d\n", ic.Name, ic.Value)
	}
	_, _ = fmt.Fprintln(w, "Ratings:")
	for _, rc := range resp.Analytics.RatingDistribution {
		_, _ = fmt.Fprintf(w, "  %s\t%d\n", rc.Rating, rc.Count)
	}
	_, _ = fmt.Fprintln(w, "Top activities:")
	for _, ac := range resp.Analytics.ActivityFrequency {
		_, _ = fmt.Fprintf(w, "  %s\t%d\n", ac.Activity, ac.Count)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if err := writeMapView(out, resp.Businesses); err != nil {
		return err
	}

	if len(resp.GroundingLinks) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(out, "\nVerification sources:"); err != nil {
		return err
	}
	for _, l := range resp.GroundingLinks {
		if _, err := fmt.Fprintf(out, "  %s  %s\n", l.Title, l.URI); err != nil {
			return err
		}
	}
	return nil
}

func writeMapView(out io.Writer, businesses []model.Business) error {
	vp := view.Fit(businesses, nil)
	if vp.Empty() {
		_, err := fmt.Fprintln(out, "\nMap view: no locations")
		return err
	}
	if _, err := fmt.Fprintf(out, "\nMap view: center %.6f,%.6f zoom %d, %d markers\n",
		vp.Center.Lat, vp.Center.Lng, vp.Zoom, len(view.Markers(businesses))); err != nil {
		return err
	}
	if vp.Bounds == nil {
		return nil
	}
	_, err := fmt.Fprintf(out, "  bounds %.6f,%.6f to %.6f,%.6f\n",
		vp.Bounds.SouthWest.Lat, vp.Bounds.SouthWest.Lng,
		vp.Bounds.NorthEast.Lat, vp.Bounds.NorthEast.Lng)
	return err
}
