// Package component bootstraps a plugin registry from declarative
// configuration.
//
// Deployments describe their plugin set in a YAML file; each entry
// names a category, a provider from the catalog, and the provider's
// settings. An optional "when" expression, written in CEL against the
// deployment's environment, gates whether the entry is applied at all.
// This is how white-label deployments swap providers without code
// changes: the decision is made once at startup, never per request.
package component
