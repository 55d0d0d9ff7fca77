/*
Package ports defines the driven port (interface) rcupdate requires from
its service registry backend.

The Registry interface decouples the mutation and rendering logic from the
storage of services, runlevels, and memberships, allowing filesystem,
Redis, and in-memory backends to be swapped freely.

# Key Interfaces

  - Registry: existence checks, membership queries, and mutation primitives.
  - Provisioner: optional seeding surface for setup tooling and tests.
*/
package ports
