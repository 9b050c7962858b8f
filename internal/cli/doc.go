// Package cli implements the hrw command: inspecting which nodes own a
// key and how many keys move when membership changes.
package cli
