// Package remcache is a small semantic caching facade in front of a remote
// key-value store. Application code talks to a uniform vocabulary
// (Get, Put, Add, Forget, Forever, Pull, Remember, MultiGet, MultiPut)
// instead of issuing store commands directly.
//
// Components:
//   - store.Store: the remote command surface (GET/SET/SETNX/GETDEL/DEL/
//     EXISTS/HMGET/HMSET/EXPIRE/TTL). Redis implementation in store/redis.
//   - codec.Codec[V]: (de)serializes V <-> []byte. Hash fields in
//     MultiGet/MultiPut go through the same codec as scalar entries.
//   - config.Config: layered resolution (environment > explicit > defaults)
//     and single-node vs cluster address selection.
//
// Failure policy: every operation recovers locally and reports failure
// through its return value (false / miss / empty), never by returning an
// error. Errors remain observable through the Logger and Hooks. Forget,
// the MultiPut expire step, and Remember's deferred write-back are
// fire-and-forget: their failures are dropped by contract and only
// reported to Hooks. Close drains in-flight background work.
//
// Keys:
//
//	<ns>:<key>  - when Options.Namespace is set
//	<key>       - otherwise
package remcache
