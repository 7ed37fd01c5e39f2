// Package registry holds the catalog of actor kinds known to an engine.
//
// A registry is populated once at startup (see actors.RegisterDefaults) and
// then sealed. Sealed registries are safe for concurrent lookups from any
// number of runs without locking.
package registry
