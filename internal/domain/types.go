package domain

import (
	"errors"
	"strconv"
	"strings"
)

// PropertyID identifies a registered property. Issued from 1 and never reused.
type PropertyID uint64

// AccountID is the host ledger's account address. Opaque to the registry.
type AccountID string

// Balance is an amount in the ledger's smallest unit.
type Balance uint64

// Timestamp is a block timestamp in milliseconds since the Unix epoch.
type Timestamp uint64

// Duration is a paid-through period in months.
type Duration uint64

var (
	ErrInvalidPropertyID = errors.New("Invalid property id")
	ErrInvalidAccountID  = errors.New("Invalid account id")
)

// ParsePropertyID parses a path/query value into a PropertyID. Zero is never
// issued but is a well-formed id; lookups on it miss.
func ParsePropertyID(s string) (PropertyID, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, ErrInvalidPropertyID
	}
	return PropertyID(n), nil
}

// ParseAccountID trims and validates an account address.
func ParseAccountID(s string) (AccountID, error) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 128 {
		return "", ErrInvalidAccountID
	}
	return AccountID(s), nil
}

func (a AccountID) String() string { return string(a) }
