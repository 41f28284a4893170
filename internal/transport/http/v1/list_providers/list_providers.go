package listproviders

import (
	"log/slog"
	"net/http"

	"github.com/pomanager/po-admin/internal/dal/interfaces/iproviderrepo"
	"github.com/pomanager/po-admin/internal/transport/http/v1/converters"
)

// ListProviders serves the read-only provider collection.
func ListProviders(w http.ResponseWriter, r *http.Request, providerRepo iproviderrepo.IProviderRepository) {
	providers, err := providerRepo.List(r.Context())
	if err != nil {
		converters.WriteError(w, converters.StatusFromError(err), "failed to list providers")
		slog.Error("Error listing providers", "error", err)

		return
	}

	converters.WriteJSON(w, http.StatusOK, providers)
}
