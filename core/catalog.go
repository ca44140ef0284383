package core

import "context"

type ServiceEntry struct {
	Title string `json:"title"`
}

type CatalogStore interface {
	// Search returns the bank's catalog entries whose title contains query,
	// case-insensitive. An empty query matches everything.
	Search(ctx context.Context, bank, query string) []*ServiceEntry
}
