// Package wait polls a slow, non-deterministic UI until a condition holds.
//
// Every poll re-resolves its target, so a handle whose page has navigated or whose DOM node was
// replaced is looked up again rather than trusted. The same algorithm covers a bounded wait with a
// short fixed interval and a fluent wait with a coarser interval and a set of transient errors
// that are treated as "not satisfied yet".
package wait
