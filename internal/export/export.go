// Package export writes processed leads to flat tabular formats for
// downstream spreadsheet tooling. The row shape omits the outreach
// message body and the enriched flag.
package export

import (
	"io"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/caprae-capital/leadgen-cli/internal/model"
)

// row is the flattened export representation of a lead. Field order
// here is the export header contract; change it only with the
// downstream consumers.
type row struct {
	FirstName   string `csv:"first_name"`
	LastName    string `csv:"last_name"`
	CompanyName string `csv:"company_name"`
	Title       string `csv:"title"`
	Revenue     string `csv:"revenue"`
	Industry    string `csv:"industry"`
	Email       string `csv:"email"`
	Phone       string `csv:"phone"`
	LinkedInURL string `csv:"linkedin_url"`
	Website     string `csv:"website"`
	Location    string `csv:"location"`
	Employees   string `csv:"employees"`
	Source      string `csv:"source"`
	Score       int    `csv:"score"`
	CreatedAt   string `csv:"created_date"`
}

func toRow(l model.Lead) row {
	return row{
		FirstName:   l.FirstName,
		LastName:    l.LastName,
		CompanyName: l.CompanyName,
		Title:       l.Title,
		Revenue:     l.Revenue,
		Industry:    l.Industry,
		Email:       l.Email,
		Phone:       l.Phone,
		LinkedInURL: l.LinkedInURL,
		Website:     l.Website,
		Location:    l.Location,
		Employees:   l.Employees,
		Source:      l.Source,
		Score:       l.Score,
		CreatedAt:   l.CreatedAt,
	}
}

// Header lists the export columns in order.
func Header() []string {
	return []string{
		"first_name", "last_name", "company_name", "title", "revenue",
		"industry", "email", "phone", "linkedin_url", "website",
		"location", "employees", "source", "score", "created_date",
	}
}

// WriteCSV writes leads as CSV, header included even for an empty
// collection.
func WriteCSV(w io.Writer, leads []model.Lead) error {
	rows := make([]row, 0, len(leads))
	for _, l := range leads {
		rows = append(rows, toRow(l))
	}

	data, err := csvutil.Marshal(rows)
	if err != nil {
		return eris.Wrap(err, "export: marshal csv")
	}
	if _, err := w.Write(data); err != nil {
		return eris.Wrap(err, "export: write csv")
	}
	return nil
}
