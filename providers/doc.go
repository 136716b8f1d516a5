// Package providers groups the entity listers that back name resolution.
//
// vpclattice pages through the VPC Lattice control plane. devkit holds
// in-memory listers and transports plus conformance checks for tests.
package providers
