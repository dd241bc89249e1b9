// Package validate holds the per-kind field validators and the precedence
// pipeline that combines them with required-ness and caller supplied rules.
//
// Every validator maps a raw string to a user facing message. An empty
// message means the value is valid. Validators never return Go errors:
// parse failures inside the date and number rules are reported as messages.
//
// Evaluate applies the rules in a fixed order:
//
//  1. A required field with an empty value yields RequiredMessage(kind) and
//     nothing else runs.
//  2. The kind rule registered for the kind runs (text has none).
//  3. A Custom rule, when present, replaces the kind message whenever it
//     reports an error.
package validate
