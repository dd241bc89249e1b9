// Package formspec builds a set of field binders from a declarative form
// definition.
//
// Definitions are JSON or YAML documents:
//
//	form: signup
//	fields:
//	  - key: email
//	    kind: email
//	    label: Email
//	  - key: password
//	    kind: password
//	    security: max
//	  - key: plan
//	    widget: radio
//	    options:
//	      - {value: basic, label: Basic}
//	      - {value: pro, label: Pro}
//
// Labels, placeholders and option labels are stripped of markup on load.
// Build resolves a widget per field, seeds defaults and prefill values into
// the scope's store, constructs the binders and tracks them on the scope so
// closing the scope cancels their timers.
package formspec
