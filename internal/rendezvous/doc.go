// Package rendezvous implements highest random weight (HRW) hashing.
// Every (key, node) pair gets a 64-bit score from a pluggable hash builder
// and a key belongs to the node with the highest score. Adding or removing
// a node only moves the keys that the node wins or loses, roughly 1/N of
// them. Top-k selection yields a ranked replica list for the key.
package rendezvous
