package price

import (
	"context"
	"errors"
	"net"
)

// Reason tells why a lookup produced its price.
type Reason int

const (
	Resolved    Reason = iota // a source returned a usable price
	Cash                      // the asset is cash, worth 1 USD
	Placeholder               // "other" is a label, not a tradable symbol
	Unsupported               // the source does not know the symbol
	Unreachable               // network or HTTP failure
	Malformed                 // the response could not be decoded
	NoData                    // the response had no usable price
	Timeout                   // the source did not answer in time
)

var reasonNames = [...]string{
	Resolved:    "resolved",
	Cash:        "cash",
	Placeholder: "placeholder",
	Unsupported: "unsupported",
	Unreachable: "unreachable",
	Malformed:   "malformed",
	NoData:      "no-data",
	Timeout:     "timeout",
}

func (r Reason) String() string {
	if r >= 0 && int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return "unknown"
}

func (r Reason) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// Source errors. Sources wrap them so the resolver can classify failures.
var (
	ErrUnsupported = errors.New("symbol not supported")
	ErrMalformed   = errors.New("malformed response")
	ErrNoData      = errors.New("no price in response")
)

// Outcome is the result of asking one source for a price.
type Outcome struct {
	Source string  `json:"source"`
	Price  float64 `json:"price"`
	Reason Reason  `json:"reason"`
	Err    error   `json:"-"`
}

// OK reports whether the outcome carries a usable price.
func (o Outcome) OK() bool { return o.Reason == Resolved || o.Reason == Cash }

// Error returns the failure message, "" on success.
func (o Outcome) Error() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// classify maps a source error to a Reason.
func classify(err error) Reason {
	var netErr net.Error
	switch {
	case err == nil:
		return Resolved
	case errors.Is(err, context.DeadlineExceeded):
		return Timeout
	case errors.As(err, &netErr) && netErr.Timeout():
		return Timeout
	case errors.Is(err, ErrUnsupported):
		return Unsupported
	case errors.Is(err, ErrMalformed):
		return Malformed
	case errors.Is(err, ErrNoData):
		return NoData
	default:
		return Unreachable
	}
}

// Quote is the full story of a price resolution.
type Quote struct {
	Ticker   string    `json:"ticker"`
	Asset    string    `json:"asset"`
	Symbol   string    `json:"symbol"` // normalized ticker
	Price    float64   `json:"price"`
	Source   string    `json:"source,omitempty"`
	Reason   Reason    `json:"reason"`
	Attempts []Outcome `json:"attempts,omitempty"`
}
