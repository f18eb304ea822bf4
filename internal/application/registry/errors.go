package registry

import "errors"

// Registry error taxonomy. Each one names a failed precondition of a single operation.
var (
	ErrNotEnoughRights     = errors.New("Not enough rights")
	ErrPropertyDoesntExist = errors.New("Property doesn't exist")
	ErrUnsufficientRent    = errors.New("Unsufficient rent")
	ErrNotApprovedTenant   = errors.New("Caller is not the approved tenant")
	ErrNoApprovedTenant    = errors.New("No approved tenant")
	ErrPriceIsntSet        = errors.New("Price isn't set")
	ErrFailedTransferFunds = errors.New("Failed to transfer funds")
	ErrTimespanDoesntExist = errors.New("Timespan doesn't exist")

	// ErrNumericOverflow is an arithmetic trap (duration out of range, zero price).
	ErrNumericOverflow = errors.New("Numeric overflow")
)

var kinds = []struct {
	err  error
	name string
}{
	{ErrNotEnoughRights, "NotEnoughRights"},
	{ErrPropertyDoesntExist, "PropertyDoesntExist"},
	{ErrUnsufficientRent, "UnsufficientRent"},
	{ErrNotApprovedTenant, "NotApprovedTenant"},
	{ErrNoApprovedTenant, "NoApprovedTenant"},
	{ErrPriceIsntSet, "PriceIsntSet"},
	{ErrFailedTransferFunds, "FailedTransferFunds"},
	{ErrTimespanDoesntExist, "TimespanDoesntExist"},
	{ErrNumericOverflow, "NumericOverflow"},
}

// Kind returns the taxonomy name of err, or "" when err is not a registry error.
func Kind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return ""
}
