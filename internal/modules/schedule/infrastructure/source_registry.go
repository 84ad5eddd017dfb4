package infrastructure

import (
	"tvGuideBff/internal/modules/schedule/application/port"
	"tvGuideBff/internal/shared/normalization"
)

// SourceRegistry resolves listing sources by provider name.
type SourceRegistry struct {
	sources map[string]port.ListingSource
}

func NewSourceRegistry(sources ...port.ListingSource) *SourceRegistry {
	registry := &SourceRegistry{sources: make(map[string]port.ListingSource, len(sources))}
	for _, source := range sources {
		registry.Register(source)
	}
	return registry
}

func (r *SourceRegistry) Register(source port.ListingSource) {
	if source == nil {
		return
	}
	r.sources[normalization.NormalizeProvider(source.Provider())] = source
}

func (r *SourceRegistry) Lookup(provider string) (port.ListingSource, bool) {
	source, ok := r.sources[normalization.NormalizeProvider(provider)]
	return source, ok
}
