/*
Package domain contains the core models of the troupe actor engine.
It defines the declarative input (Definition), the executable tree (Node),
the capability interfaces actor kinds implement (Leaf and Composite), and the
outcome of a run (Result and Run). This package is kept pure and free of I/O,
so adapters and actor kinds can depend on it without pulling in the runtime.

# Key Entities

  - Definition: the raw, unvalidated form of an actor as authors write it.
  - Node: one validated actor with its resolved behavior and ordered children.
  - Leaf / Composite: the two variants of actor behavior.
  - Result: the per-node outcome, mirroring the shape of the Node tree.
*/
package domain
