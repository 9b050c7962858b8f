// Package replication chooses replica sets for keys from a placement.
package replication
