package betboard

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingHeaders is wrapped by SchemaError.
	ErrMissingHeaders = errors.New("missing required headers")
	// ErrEmptyLedger is returned for a ledger file without even a header line.
	ErrEmptyLedger = errors.New("empty ledger")
	// ErrUnsupportedFormat is returned for ledger files that are neither CSV nor XLSX.
	ErrUnsupportedFormat = errors.New("unsupported ledger format")
)

// SchemaError reports a ledger whose headers do not match the expected schema.
type SchemaError struct {
	Schema   string   // "simple" or "full"
	Required []string // required headers, as documented
	Missing  []string
	Found    []string // headers as they appear in the file
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s ledger must contain headers: %s. Missing: %s. Found: [%s]",
		e.Schema,
		strings.Join(e.Required, ", "),
		strings.Join(e.Missing, ", "),
		strings.Join(e.Found, ", "),
	)
}

func (e *SchemaError) Unwrap() error { return ErrMissingHeaders }
