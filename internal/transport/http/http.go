package httptransport

import (
	"context"
	_ "embed"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/pomanager/po-admin/internal/dal/interfaces/iauditrepo"
	"github.com/pomanager/po-admin/internal/dal/interfaces/iorderitemrepo"
	"github.com/pomanager/po-admin/internal/dal/interfaces/iorderrepo"
	"github.com/pomanager/po-admin/internal/dal/interfaces/iproviderrepo"
	"github.com/pomanager/po-admin/internal/service/services/formview"
	"github.com/pomanager/po-admin/internal/transport/http/v1/converters"
	createorder "github.com/pomanager/po-admin/internal/transport/http/v1/create_order"
	deleteorder "github.com/pomanager/po-admin/internal/transport/http/v1/delete_order"
	listorders "github.com/pomanager/po-admin/internal/transport/http/v1/list_orders"
	listproviders "github.com/pomanager/po-admin/internal/transport/http/v1/list_providers"
	orderdetails "github.com/pomanager/po-admin/internal/transport/http/v1/order_details"
	orderform "github.com/pomanager/po-admin/internal/transport/http/v1/order_form"
	updateorder "github.com/pomanager/po-admin/internal/transport/http/v1/update_order"
	"github.com/pomanager/po-admin/pkg/http/middleware/trace"
	"github.com/pomanager/po-admin/pkg/logger"
)

//go:embed openapi.json
var openapiDoc []byte

// HTTPTransport serves the admin screens as a JSON API for the browser.
type HTTPTransport struct {
	server       *http.Server
	router       *chi.Mux
	orderRepo    iorderrepo.IOrderRepository
	itemRepo     iorderitemrepo.IOrderItemRepository
	providerRepo iproviderrepo.IProviderRepository
	auditRepo    iauditrepo.IAuditRepository
}

func NewHTTPTransport(
	orderRepo iorderrepo.IOrderRepository,
	itemRepo iorderitemrepo.IOrderItemRepository,
	providerRepo iproviderrepo.IProviderRepository,
	auditRepo iauditrepo.IAuditRepository,
) *HTTPTransport {
	router := newRouter()
	server := newServer(router)

	return &HTTPTransport{
		server:       server,
		router:       router,
		orderRepo:    orderRepo,
		itemRepo:     itemRepo,
		providerRepo: providerRepo,
		auditRepo:    auditRepo,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/orders", h.listOrders)
		r.Post("/orders", h.createOrder)
		r.Get("/orders/form", h.createForm)
		r.Get("/orders/{id}", h.orderDetails)
		r.Put("/orders/{id}", h.updateOrder)
		r.Delete("/orders/{id}", h.deleteOrder)
		r.Get("/orders/{id}/form", h.editForm)
		r.Get("/providers", h.listProviders)
	})

	h.router.Get("/swagger/doc.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(openapiDoc)
	})
	h.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
}

func (h *HTTPTransport) formDeps() formview.Deps {
	return formview.Deps{
		Orders:    h.orderRepo,
		Items:     h.itemRepo,
		Providers: h.providerRepo,
		Audit:     h.auditRepo,
	}
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.orderRepo, h.providerRepo)
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	createorder.CreateOrder(w, r, h.formDeps())
}

func (h *HTTPTransport) orderDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	orderdetails.OrderDetails(w, r, id, h.orderRepo, h.itemRepo, h.auditRepo)
}

func (h *HTTPTransport) updateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	updateorder.UpdateOrder(w, r, id, h.formDeps())
}

func (h *HTTPTransport) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	deleteorder.DeleteOrder(w, r, id, h.orderRepo, h.itemRepo, h.auditRepo)
}

func (h *HTTPTransport) createForm(w http.ResponseWriter, r *http.Request) {
	orderform.OrderForm(w, r, nil, h.formDeps())
}

func (h *HTTPTransport) editForm(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	orderform.OrderForm(w, r, &id, h.formDeps())
}

func (h *HTTPTransport) listProviders(w http.ResponseWriter, r *http.Request) {
	listproviders.ListProviders(w, r, h.providerRepo)
}

func orderID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		converters.WriteError(w, http.StatusBadRequest, "invalid order id")

		return 0, false
	}

	return id, true
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
