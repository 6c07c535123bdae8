package enrich

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/caprae-capital/leadgen-cli/internal/model"
	"github.com/caprae-capital/leadgen-cli/pkg/peopledata"
)

// PeopleDataLookup adapts a people-data API client to the Lookup
// interface. Leads without an email address are not looked up.
func PeopleDataLookup(client peopledata.Client) Lookup {
	return LookupFunc(func(ctx context.Context, lead *model.Lead) (Result, error) {
		if lead.Email == "" {
			return NotFound, nil
		}

		person, err := client.LookupEmail(ctx, lead.NormalizedEmail())
		if err != nil {
			if eris.Is(err, peopledata.ErrNotFound) {
				return NotFound, nil
			}
			return NotFound, err
		}

		return Result{
			Found: true,
			Data: ContactData{
				Phone:       person.Phone,
				LinkedInURL: person.LinkedInURL,
				Website:     person.Website,
				Location:    person.Location,
				Employees:   person.Employees,
			},
		}, nil
	})
}
