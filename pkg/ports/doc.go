/*
Package ports defines the driven ports (interfaces) of the density engine.

These interfaces decouple evaluation from the collaborators around it: where
asset-pack documents come from, where preview grids are kept, and how replicas
coordinate access to a shared preview session.

# Key Interfaces

  - AssetSource: lists and loads density documents, curves and positions of an asset pack.
  - GridStore: persists evaluated preview grids under a content key.
  - DistributedLocker: provides distributed locking for preview sessions shared across replicas.
*/
package ports
