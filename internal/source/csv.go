package source

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/caprae-capital/leadgen-cli/internal/model"
)

// CSVOptions configures the CSV lead reader.
type CSVOptions struct {
	// Charset names the input encoding (e.g. "windows-1252") for
	// uploads that are not UTF-8. Empty means UTF-8.
	Charset string
	// Source overrides the provenance tag on rows that carry none.
	// Defaults to "CSV Upload".
	Source string
}

const defaultCSVSource = "CSV Upload"

// ReadLeadsCSV parses raw leads from a CSV file. Expected header
// columns are the lead's identity and firmographic fields; optional
// contact columns are honored when present, and unknown columns are
// ignored.
func ReadLeadsCSV(path string, opts CSVOptions) ([]model.Lead, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "source: open csv")
	}
	defer f.Close()

	return DecodeLeadsCSV(f, opts)
}

// DecodeLeadsCSV parses raw leads from an open CSV stream.
func DecodeLeadsCSV(r io.Reader, opts CSVOptions) ([]model.Lead, error) {
	if opts.Charset != "" {
		enc, err := htmlindex.Get(opts.Charset)
		if err != nil {
			return nil, eris.Wrapf(err, "source: unknown charset %q", opts.Charset)
		}
		r = transform.NewReader(r, enc.NewDecoder())
	}

	csvReader := csv.NewReader(r)
	csvReader.TrimLeadingSpace = true

	dec, err := csvutil.NewDecoder(csvReader)
	if err != nil {
		return nil, eris.Wrap(err, "source: read csv header")
	}
	dec.DisallowMissingColumns = false

	srcTag := opts.Source
	if srcTag == "" {
		srcTag = defaultCSVSource
	}

	var leads []model.Lead
	for {
		var lead model.Lead
		if err := dec.Decode(&lead); err == io.EOF {
			break
		} else if err != nil {
			return nil, eris.Wrap(err, "source: decode csv row")
		}
		if lead.Source == "" {
			lead.Source = srcTag
		}
		leads = append(leads, lead)
	}
	return leads, nil
}
