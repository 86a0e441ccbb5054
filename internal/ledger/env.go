package ledger

// Principal is an opaque authenticated identity supplied by the host.
type Principal string

// Env is the per-call context injected by the host: who is calling and the
// logical clock value at which the call executes. The ledger never stores or
// reassigns it; every write derives its owner from Caller.
type Env struct {
	Caller Principal
	Height uint64
}
