package export

import (
	"io"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/caprae-capital/leadgen-cli/internal/model"
)

const sheetName = "Leads"

// WriteXLSX writes leads as a single-sheet workbook with the same
// column contract as WriteCSV.
func WriteXLSX(w io.Writer, leads []model.Lead) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(sheetName)
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range Header() {
		header.AddCell().Value = col
	}

	for _, l := range leads {
		r := toRow(l)
		cells := []string{
			r.FirstName, r.LastName, r.CompanyName, r.Title, r.Revenue,
			r.Industry, r.Email, r.Phone, r.LinkedInURL, r.Website,
			r.Location, r.Employees, r.Source, strconv.Itoa(r.Score),
			r.CreatedAt,
		}
		row := sheet.AddRow()
		for _, c := range cells {
			row.AddCell().Value = c
		}
	}

	if err := file.Write(w); err != nil {
		return eris.Wrap(err, "export: write workbook")
	}
	return nil
}
