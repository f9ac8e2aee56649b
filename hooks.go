package remcache

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The cache calls them on hot paths.
type Hooks interface {
	// A public operation short-circuited on a malformed key.
	// op ∈ {"get", "put", "forever", "forget", "has", "pull", "add",
	// "remember", "multiget", "multiput", "ttl"}
	InvalidKey(op, key string)

	// The store returned an error for a foreground command.
	StoreError(op, storageKey string, err error)

	// The codec could not encode a value on a write path.
	EncodeError(op, storageKey string, err error)

	// A stored entry failed to decode and was deleted on read.
	// reason ∈ {"decode"}
	SelfHeal(storageKey, reason string)

	// Remember's producer returned an error or panicked; nothing was written.
	ProducerFailed(key string, err error)

	// A fire-and-forget task was rejected (runner full or closed).
	// op ∈ {"forget", "self_heal", "remember_writeback", "multiput_expire"}
	TaskDropped(op string)

	// A fire-and-forget task ran and failed. Errors are dropped by contract;
	// this is the only place they are observable.
	TaskFailed(op string, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) InvalidKey(string, string)         {}
func (NopHooks) StoreError(string, string, error)  {}
func (NopHooks) EncodeError(string, string, error) {}
func (NopHooks) SelfHeal(string, string)           {}
func (NopHooks) ProducerFailed(string, error)      {}
func (NopHooks) TaskDropped(string)                {}
func (NopHooks) TaskFailed(string, error)          {}
