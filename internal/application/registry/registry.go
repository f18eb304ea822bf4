// Package registry is the property rental state machine: property approval and
// removal, pricing, tenant approval and rent settlement.
//
// Every operation receives the Ledger of the call it runs in. The registry never
// commits or rolls back; the host discards all writes of a call that returns an error.
package registry

// Payout split of an attached rent value, in percent of floor(value/100).
const (
	payoutPercent = 90
	percentBase   = 100
)

// Registry operates on Store. Construct one per call over the call's transaction.
type Registry struct {
	Store Store
}

func New(store Store) *Registry {
	return &Registry{Store: store}
}
