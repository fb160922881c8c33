// Package handlers holds the HTTP endpoints of the pre-staging API.
package handlers

import "github.com/remitrack/internal/provider"

// Handler is the endpoint entry point over the shared container.
type Handler struct {
	*provider.Container
}

// New creates the handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
