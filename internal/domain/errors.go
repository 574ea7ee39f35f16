package domain

import (
	"errors"
	"fmt"
)

// ErrNoData marks an ASN for which the spoof-test or rank source carried no
// usable record. It is a per-ASN outcome, never a batch failure.
var ErrNoData = errors.New("no data found")

// InvalidRangeError reports a token that contained CIDR or range notation but
// did not parse as a network or address range. It aborts resolution of that
// single token only.
type InvalidRangeError struct {
	Token string
	Err   error
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid CIDR/range %q: %v", e.Token, e.Err)
}

func (e *InvalidRangeError) Unwrap() error {
	return e.Err
}
