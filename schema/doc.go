// Package schema provides a small JSON Schema subset used to declare and
// validate plugin settings.
//
// Each plugin variant declares the settings keys it requires as a schema
// and validates the caller-supplied configuration against it before the
// registry accepts a registration. The subset covers the shapes settings
// actually take: objects of strings, numbers, and booleans, with
// required-key, enum, range, length, and pattern constraints.
package schema
