package iproviderrepo

import (
	"context"

	"github.com/pomanager/po-admin/internal/service/models/provider"
)

// IProviderRepository is an interface for the read-only provider resource.
type IProviderRepository interface {
	List(ctx context.Context) ([]provider.Provider, error)
}
