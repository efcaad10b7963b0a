package gencache

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The cache calls them on hot paths. Wrap with hooks/async to decouple
// slow consumers.
type Hooks interface {
	// A sweep finished. dropped is the number of entries discarded with
	// the retired generation.
	Swept(cache string, dropped int)

	// A computed value lost the insert race to a concurrent caller and
	// was discarded. The winner's value is what every racer returned.
	ComputeDiscarded(cache string, key any)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) Swept(string, int)            {}
func (NopHooks) ComputeDiscarded(string, any) {}
