package export

import (
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/geobiz/internal/model"
)

// Sheet names written by WriteXLSX.
const (
	SheetBusinesses = "Businesses"
	SheetIndustries = "Industries"
	SheetRatings    = "Ratings"
	SheetActivities = "Activities"
	SheetSources    = "Sources"
)

var businessHeader = []string{
	"ID", "Name", "Industry", "Activities", "Rating", "Popularity",
	"Address", "Lat", "Lng", "Phone", "Website", "Email",
	"Contact Name", "Contact Role", "Maps URL",
}

// WriteXLSX writes resp as a workbook with one sheet per view.
func WriteXLSX(w io.Writer, resp *model.SearchResponse) error {
	f := xlsx.NewFile()

	sheet, err := f.AddSheet(SheetBusinesses)
	if err != nil {
		return eris.Wrap(err, "export: add businesses sheet")
	}
	addStringRow(sheet, businessHeader...)
	for _, b := range resp.Businesses {
		row := sheet.AddRow()
		row.AddCell().SetString(b.ID)
		row.AddCell().SetString(b.Name)
		row.AddCell().SetString(b.Industry)
		row.AddCell().SetString(strings.Join(b.Activities, ", "))
		row.AddCell().SetFloat(b.Rating)
		if b.PopularityScore != nil {
			row.AddCell().SetFloat(*b.PopularityScore)
		} else {
			row.AddCell().SetString("")
		}
		row.AddCell().SetString(b.Address)
		row.AddCell().SetFloat(b.Location.Lat)
		row.AddCell().SetFloat(b.Location.Lng)
		row.AddCell().SetString(b.Phone)
		row.AddCell().SetString(WebsiteURL(b.Website))
		row.AddCell().SetString(b.Email)
		var contactName, contactRole string
		if b.ContactPerson != nil {
			contactName, contactRole = b.ContactPerson.Name, b.ContactPerson.Role
		}
		row.AddCell().SetString(contactName)
		row.AddCell().SetString(contactRole)
		row.AddCell().SetString(b.URL)
	}

	sheet, err = f.AddSheet(SheetIndustries)
	if err != nil {
		return eris.Wrap(err, "export: add industries sheet")
	}
	addStringRow(sheet, "Industry", "Businesses")
	for _, ic := range resp.Analytics.IndustryDistribution {
		row := sheet.AddRow()
		row.AddCell().SetString(ic.Name)
		row.AddCell().SetInt(ic.Value)
	}

	sheet, err = f.AddSheet(SheetRatings)
	if err != nil {
		return eris.Wrap(err, "export: add ratings sheet")
	}
	addStringRow(sheet, "Rating", "Businesses")
	for _, rc := range resp.Analytics.RatingDistribution {
		row := sheet.AddRow()
		row.AddCell().SetString(rc.Rating)
		row.AddCell().SetInt(rc.Count)
	}

	sheet, err = f.AddSheet(SheetActivities)
	if err != nil {
		return eris.Wrap(err, "export: add activities sheet")
	}
	addStringRow(sheet, "Activity", "Businesses")
	for _, ac := range resp.Analytics.ActivityFrequency {
		row := sheet.AddRow()
		row.AddCell().SetString(ac.Activity)
		row.AddCell().SetInt(ac.Count)
	}

	sheet, err = f.AddSheet(SheetSources)
	if err != nil {
		return eris.Wrap(err, "export: add sources sheet")
	}
	addStringRow(sheet, "Title", "URI")
	for _, l := range resp.GroundingLinks {
		addStringRow(sheet, l.Title, l.URI)
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "export: write workbook")
	}
	return nil
}

func addStringRow(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}
