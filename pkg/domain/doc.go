/*
Package domain contains the value types shared by every layer of the density engine.

It is kept free of I/O and of the node schema itself, so that adapters, the
runtime and the resolver can all depend on it.

# Key Entities

  - Vec3 / Mat3: coordinates and the rotations used by spatial transforms and shapes.
  - ContextInputs: externally supplied terrain, base heights, biome edge and positions.
  - Domain / Grid: the sample lattice of a preview pass and its result.
  - SchemaError / ResolveError / EvalError: the three error families, one per stage.
  - LifecycleHooks: callbacks used by observability.
*/
package domain
