// Package balancer provides a gRPC load balancer that routes RPCs by key
// with rendezvous hashing, so requests for the same key reach the same
// backend and only the keys of a departed backend move.
package balancer
