package restrepo

import (
	"context"
	"fmt"

	"github.com/pomanager/po-admin/internal/dal/backend"
	"github.com/pomanager/po-admin/internal/service/models/provider"
)

// RestProviderRepository maps the provider repository onto the upstream REST
// resource.
type RestProviderRepository struct {
	client *backend.Client
}

func NewRestProviderRepository(client *backend.Client) *RestProviderRepository {
	return &RestProviderRepository{client: client}
}

// List fetches the full provider collection.
func (r *RestProviderRepository) List(ctx context.Context) ([]provider.Provider, error) {
	var providers []provider.Provider
	if err := r.client.Get(ctx, "/providers", nil, &providers); err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}

	return providers, nil
}
