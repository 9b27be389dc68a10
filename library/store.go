package library

// Store is a durable encoding of a Snapshot. Implementations are pure
// transforms: they hold no copy of the state and no domain rules.
//
// Load must treat absent durable state as an empty snapshot, not an error,
// so a first run starts clean. Save must replace the prior durable state
// atomically from the caller's perspective.
type Store interface {
	Load() (Snapshot, error)
	Save(Snapshot) error
}
