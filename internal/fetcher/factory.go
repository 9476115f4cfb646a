// file: internal/fetcher/factory.go
// version: 1.0.0
// guid: 7b468dce-f342-4f32-9012-5f70f0c348f3

package fetcher

import "fmt"

// Registry is the closed set of source fetchers, dispatched through a
// single lookup rather than inheritance.
type Registry struct {
	fetchers map[Source]Fetcher
}

// RegistryOptions carries the cross-source dependencies fetchers need.
type RegistryOptions struct {
	// HardcoverToken supplies the API token at call time (settings-backed).
	HardcoverToken func() string
}

// NewRegistry builds the registry with one fetcher per supported source.
func NewRegistry(opts RegistryOptions) *Registry {
	return &Registry{
		fetchers: map[Source]Fetcher{
			SourceOpenLibrary: NewOpenLibraryFetcher(),
			SourceGoodreads:   NewGoodreadsFetcher(),
			SourceHardcover:   NewHardcoverFetcher(opts.HardcoverToken),
		},
	}
}

// Get returns the fetcher for a source.
func (r *Registry) Get(source Source) (Fetcher, error) {
	f, ok := r.fetchers[source]
	if !ok {
		return nil, fmt.Errorf("unsupported list source: %s", source)
	}
	return f, nil
}

// Sources describes every supported source for the configuration UI,
// including which optional capabilities each one implements.
func (r *Registry) Sources() []SourceInfo {
	infos := []SourceInfo{
		{
			Source:      SourceOpenLibrary,
			Name:        "Open Library",
			Description: "Public reading-log shelves on openlibrary.org",
		},
		{
			Source:      SourceGoodreads,
			Name:        "Goodreads",
			Description: "Public shelves of a Goodreads profile",
		},
		{
			Source:        SourceHardcover,
			Name:          "Hardcover",
			Description:   "Lists on hardcover.app (requires an API token)",
			RequiresToken: true,
		},
	}
	for i := range infos {
		f := r.fetchers[infos[i].Source]
		_, infos[i].SupportsListEnumeration = f.(ListEnumerator)
		_, infos[i].SupportsProfileURL = f.(ProfileURLParser)
	}
	return infos
}

// ParseProfileURL tries every source that supports profile URLs and returns
// the first match.
func (r *Registry) ParseProfileURL(url string) (Source, string, bool) {
	// Fixed order keeps the result deterministic.
	for _, source := range []Source{SourceOpenLibrary, SourceGoodreads, SourceHardcover} {
		if parser, ok := r.fetchers[source].(ProfileURLParser); ok {
			if userID, ok := parser.ParseProfileURL(url); ok {
				return source, userID, true
			}
		}
	}
	return "", "", false
}
