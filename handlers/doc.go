// Package handlers adapts the resolver and the signed request forwarder to
// Lambda event shapes: CloudFormation custom resource events and the small
// JSON payloads used to call VPC Lattice services.
package handlers
