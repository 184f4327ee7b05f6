package export

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// WriteWorkbook writes the result to an XLSX workbook with one sheet of
// companies and one of contacts.
func WriteWorkbook(path string, res *model.Result) error {
	f := xlsx.NewFile()

	if err := addCompanySheet(f, res); err != nil {
		return err
	}
	if err := addContactSheet(f, res); err != nil {
		return err
	}
	return eris.Wrap(f.Save(path), "export: save workbook")
}

func addCompanySheet(f *xlsx.File, res *model.Result) error {
	sheet, err := f.AddSheet("Companies")
	if err != nil {
		return eris.Wrap(err, "export: add companies sheet")
	}

	header := sheet.AddRow()
	for _, h := range []string{
		"Company", "Website", "Intent Score", "Confidence", "Discovery Source",
		"Signals", "Mentions", "Employees", "Industry", "Location",
	} {
		header.AddCell().Value = h
	}

	for i := range res.Companies {
		c := &res.Companies[i]
		row := sheet.AddRow()
		row.AddCell().Value = c.Name
		row.AddCell().Value = c.Website
		row.AddCell().SetInt(c.IntentScore)
		row.AddCell().SetInt(c.ConfidenceScore)
		row.AddCell().Value = c.DiscoverySource
		row.AddCell().Value = signalSummary(c.Signals)
		row.AddCell().SetInt(c.TotalMentions())
		if c.Enrichment != nil {
			row.AddCell().SetInt(c.Enrichment.Employees)
			row.AddCell().Value = c.Enrichment.Industry
			row.AddCell().Value = c.Enrichment.Location
		}
	}
	return nil
}

func addContactSheet(f *xlsx.File, res *model.Result) error {
	sheet, err := f.AddSheet("Contacts")
	if err != nil {
		return eris.Wrap(err, "export: add contacts sheet")
	}

	header := sheet.AddRow()
	for _, h := range []string{"Company", "Email", "First Name", "Last Name", "Role", "Confidence", "Source"} {
		header.AddCell().Value = h
	}

	for i := range res.Companies {
		c := &res.Companies[i]
		for _, ct := range c.Contacts {
			row := sheet.AddRow()
			row.AddCell().Value = c.Name
			row.AddCell().Value = ct.Email
			row.AddCell().Value = ct.FirstName
			row.AddCell().Value = ct.LastName
			row.AddCell().Value = ct.Role
			row.AddCell().SetInt(ct.Confidence)
			row.AddCell().Value = ct.Source
		}
	}
	return nil
}

func signalSummary(signals []model.Signal) string {
	types := make([]string, len(signals))
	for i, s := range signals {
		types[i] = s.Type
	}
	return strings.Join(types, ", ")
}
