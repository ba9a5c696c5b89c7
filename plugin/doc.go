// Package plugin defines the capability contract for enterprise plugins.
//
// A plugin is a swappable adapter that binds the platform's uniform
// execution contract to one external provider (a market-data API, a video
// chat vendor, an ASL interpretation service, and so on). Every plugin
// belongs to exactly one Category and is constructed from caller-supplied
// Settings at registration time.
//
// The package provides three building blocks:
//
//   - The Plugin interface, which every variant implements. The registry
//     treats heterogeneous providers identically through this interface.
//   - Settings, the configuration mapping bound to a plugin instance for
//     the duration of its lifecycle.
//   - A builder (NewConfig / New) for constructing function-backed plugins
//     without declaring a new type, useful for tests and ad-hoc
//     integrations.
//
// Concrete variants live in the apiconn, videochat, and interpreter
// packages. Registration and dispatch live in the enterprise root package.
package plugin
