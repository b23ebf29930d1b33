package services

import (
	"context"
	"fmt"
	"strings"

	"tophits/internal/search"
)

// CatalogService is a music catalog the resolver can search
type CatalogService interface {
	search.CatalogSearchClient

	// Name returns the catalog name used in logs and errors
	Name() string

	// Health checks if the catalog is reachable with the configured credentials
	Health(ctx context.Context) error
}

// PlatformError is a failed call to a catalog API. StatusCode is zero when
// no HTTP response was received.
type PlatformError struct {
	Platform   string
	Operation  string
	Message    string
	Query      string
	StatusCode int
	Err        error
}

func (e *PlatformError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s failed", e.Platform, e.Operation)
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	if e.Query != "" {
		fmt.Fprintf(&b, " (query %q)", e.Query)
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *PlatformError) Unwrap() error { return e.Err }
