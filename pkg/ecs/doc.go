// Package ecs is a small entity-component helper.
//
// Entities are opaque values. All of an entity's components live in one
// Components container keyed by name, and a component can be any Go value.
// Nothing about a component's shape is declared up front. Capabilities are
// probed at the call site, either by method name (Invoke and friends) or
// by Go interface (Lookup, EachOf).
//
// # Enumeration
//
// ForEachComponent walks the components synchronously. ForEachComponentAsync
// fans out to every component first and then waits for each one to call its
// Finish continuation. The first error concludes the batch; otherwise the
// batch concludes once every dispatched component has finished. A batch
// concludes exactly once and later Finish calls are ignored.
//
// Completion bookkeeping is pluggable. LedgerStable (the default) tracks each
// dispatched component by a token fixed at dispatch time. LedgerPositional
// removes entries from the shared key list by their dispatch-time index, the
// way the classic JavaScript implementation of this helper does; completions
// landing out of dispatch order then remove the wrong key or leave entries
// behind that never drain.
//
// Go and InvokeGo expose the same protocol as a Completion that can be
// awaited, and ForEachComponentParallel runs one goroutine per component.
package ecs
