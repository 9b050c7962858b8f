// Package placement assigns keys to cluster nodes with rendezvous hashing.
// It wraps the lock-free selector with a read/write lock and node
// addresses, and supports preference lists for replica placement.
package placement
