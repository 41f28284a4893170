package provider

import "strconv"

// Provider represents a supplier a purchase order can be placed with.
// Providers are read-only from this system's perspective.
type Provider struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ResolveName returns the name of the provider with the given id, falling
// back to the raw id when no match exists. A missing provider is never an
// error; the list may simply be stale or empty.
func ResolveName(providers []Provider, id int64) string {
	for _, p := range providers {
		if p.ID == id {
			return p.Name
		}
	}

	return strconv.FormatInt(id, 10)
}
