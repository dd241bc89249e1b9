// Package binding implements the contract every field-like widget follows to
// take part in a form scope.
//
// A binder is constructed with the registry of its scope, a field key and its
// validation requirements. On every value change it
//
//   - evaluates the value (required check, kind rule, custom rule),
//   - writes the value and then the validity into the registry,
//   - updates its own presentation state: the error text and a transient
//     Shaking flag that clears itself after Config.ShakeDuration,
//   - invokes the optional change and validity callbacks.
//
// Input debounces Change calls so only the latest keystroke of a burst is
// validated; Commit runs the same pipeline immediately. Choice fields register
// their first option as a valid default exactly once, at construction.
//
// Binders own timers. Close them, or Track them on the scope, when the form
// unmounts so no pending validation reaches a discarded registry.
package binding
