// Package core contains the lattice domain contracts, the paginated entity
// resolver and the signed request forwarding orchestration. Adapters
// (VPC Lattice listing, SigV4 signing, HTTP transport, Lambda handlers)
// depend on this package; core must not depend on them.
package core
