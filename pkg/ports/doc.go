/*
Package ports defines the driven ports (interfaces) used by the built-in actor
kinds. These interfaces decouple the actors from concrete backends, so the same
actor runs against an in-memory store in tests and Redis in production.

# Key Interfaces

  - ArrayStore: persistence of server arrays, used by the server_array.* kinds.
*/
package ports
