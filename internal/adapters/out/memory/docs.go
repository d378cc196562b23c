// Package memory implements the coordination ports on an in-process
// patrickmn/go-cache store. It serves a single replica; the redis package
// covers deployments with more than one.
package memory
