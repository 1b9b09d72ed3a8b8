package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/adilet-dev/campus-inventory/internal/product/domain"
	"github.com/adilet-dev/campus-inventory/internal/product/usecase/command"
	"github.com/adilet-dev/campus-inventory/internal/product/usecase/query"
	userhttp "github.com/adilet-dev/campus-inventory/internal/user/delivery/http"
	"github.com/adilet-dev/campus-inventory/pkg/logger"
)

// ProductHandler handles HTTP requests for products using CQRS pattern
type ProductHandler struct {
	// Command handlers
	createHandler *command.CreateProductHandler
	updateHandler *command.UpdateProductHandler
	deleteHandler *command.DeleteProductHandler

	// Query handlers
	getProductHandler *query.GetProductHandler
	listHandler       *query.ListProductsHandler
	lowStockHandler   *query.LowStockHandler

	repo           domain.ProductRepository
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	requestSummary *prometheus.SummaryVec
	totalProducts  prometheus.Gauge
}

// NewProductHandler creates a new product handler with CQRS pattern (manual DI for backwards compatibility)
func NewProductHandler(repo domain.ProductRepository) *ProductHandler {
	createHandler := command.NewCreateProductHandler(repo)
	updateHandler := command.NewUpdateProductHandler(repo)
	deleteHandler := command.NewDeleteProductHandler(repo)

	getProductHandler := query.NewGetProductHandler(repo)
	listHandler := query.NewListProductsHandler(repo)
	lowStockHandler := query.NewLowStockHandler(repo)

	return newProductHandler(
		createHandler, updateHandler, deleteHandler,
		getProductHandler, listHandler, lowStockHandler,
		repo,
	)
}

// NewProductHandlerWithDI creates a new product handler using dependency injection
// This is used by Wire for automatic dependency injection
func NewProductHandlerWithDI(
	createHandler *command.CreateProductHandler,
	updateHandler *command.UpdateProductHandler,
	deleteHandler *command.DeleteProductHandler,
	getProductHandler *query.GetProductHandler,
	listHandler *query.ListProductsHandler,
	lowStockHandler *query.LowStockHandler,
	repo domain.ProductRepository,
) *ProductHandler {
	return newProductHandler(
		createHandler, updateHandler, deleteHandler,
		getProductHandler, listHandler, lowStockHandler,
		repo,
	)
}

// newProductHandler is the internal constructor used by both manual and Wire DI
func newProductHandler(
	createHandler *command.CreateProductHandler,
	updateHandler *command.UpdateProductHandler,
	deleteHandler *command.DeleteProductHandler,
	getProductHandler *query.GetProductHandler,
	listHandler *query.ListProductsHandler,
	lowStockHandler *query.LowStockHandler,
	repo domain.ProductRepository,
) *ProductHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_requests_total",
			Help: "Total number of requests to the inventory API",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventory_request_duration_seconds",
			Help:    "Duration of inventory API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Summary metric for percentile calculation (p50, p90, p95, p99)
	requestSummary := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "inventory_request_duration_summary",
			Help: "Summary of request durations with percentiles (client-side quantiles)",
			Objectives: map[float64]float64{
				0.5:  0.05,
				0.9:  0.01,
				0.95: 0.01,
				0.99: 0.001,
			},
			MaxAge: 10 * time.Minute,
		},
		[]string{"method", "endpoint"},
	)

	totalProducts := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "inventory_total_products",
			Help: "Total number of products in the system",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(requestSummary)
	prometheus.MustRegister(totalProducts)

	return &ProductHandler{
		createHandler:     createHandler,
		updateHandler:     updateHandler,
		deleteHandler:     deleteHandler,
		getProductHandler: getProductHandler,
		listHandler:       listHandler,
		lowStockHandler:   lowStockHandler,
		repo:              repo,
		requestCounter:    requestCounter,
		requestLatency:    requestLatency,
		requestSummary:    requestSummary,
		totalProducts:     totalProducts,
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// MetricsMiddleware wraps handlers with Prometheus metrics
func (h *ProductHandler) MetricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()

		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestSummary.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

func (h *ProductHandler) RegisterRoutes(router *mux.Router) {
	// Read routes (any authenticated user)
	router.HandleFunc("/products", h.MetricsMiddleware("/products", userhttp.AuthMiddleware(h.ListProducts))).Methods("GET")
	router.HandleFunc("/products/low-stock", h.MetricsMiddleware("/products/low-stock", userhttp.AuthMiddleware(h.LowStock))).Methods("GET")
	router.HandleFunc("/products/{id}", h.MetricsMiddleware("/products/{id}", userhttp.AuthMiddleware(h.GetProduct))).Methods("GET")

	// Mutations (admin role required)
	router.HandleFunc("/products", h.MetricsMiddleware("/products", userhttp.AdminMiddleware(h.CreateProduct))).Methods("POST")
	router.HandleFunc("/products/{id}", h.MetricsMiddleware("/products/{id}", userhttp.AdminMiddleware(h.UpdateProduct))).Methods("PUT")
	router.HandleFunc("/products/{id}", h.MetricsMiddleware("/products/{id}", userhttp.AdminMiddleware(h.DeleteProduct))).Methods("DELETE")
}

type productRequest struct {
	Name          string `json:"name"`
	Category      string `json:"category"`
	Quantity      int    `json:"quantity"`
	MinStockLevel int    `json:"min_stock_level"`
	Description   string `json:"description"`
}

// CreateProduct handles POST /products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, userhttp.Response{
			Success: false,
			Error:   "Invalid request body",
			Kind:    "Validation",
		})
		return
	}

	cmd := command.CreateProductCommand{
		Name:          req.Name,
		Category:      req.Category,
		Quantity:      req.Quantity,
		MinStockLevel: req.MinStockLevel,
		Description:   req.Description,
		Actor:         userhttp.ActorFromRequest(r),
	}

	product, err := h.createHandler.Handle(cmd)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create product")
		respondJSON(w, http.StatusBadRequest, userhttp.Response{
			Success: false,
			Error:   err.Error(),
			Kind:    "Validation",
		})
		return
	}

	h.updateProductsMetric()

	respondJSON(w, http.StatusCreated, userhttp.Response{
		Success: true,
		Message: "Product created successfully",
		Data:    product,
	})
}

// ListProducts handles GET /products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	category := r.URL.Query().Get("category")

	q := query.ListProductsQuery{
		Limit:    limit,
		Offset:   offset,
		Category: category,
	}

	products, err := h.listHandler.Handle(q)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list products")
		respondJSON(w, http.StatusInternalServerError, userhttp.Response{
			Success: false,
			Error:   "Failed to list products",
			Kind:    "Internal",
		})
		return
	}

	count, _ := h.repo.Count()

	respondJSON(w, http.StatusOK, userhttp.Response{
		Success: true,
		Data: map[string]interface{}{
			"products": products,
			"total":    count,
			"limit":    q.Limit,
			"offset":   offset,
		},
	})
}

// GetProduct handles GET /products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, userhttp.Response{
			Success: false,
			Error:   "Invalid product ID",
			Kind:    "Validation",
		})
		return
	}

	product, err := h.getProductHandler.Handle(query.GetProductQuery{ID: uint(id)})
	if err != nil {
		respondJSON(w, http.StatusNotFound, userhttp.Response{
			Success: false,
			Error:   "Product not found",
			Kind:    "NotFound",
		})
		return
	}

	respondJSON(w, http.StatusOK, userhttp.Response{
		Success: true,
		Data:    product,
	})
}

// UpdateProduct handles PUT /products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, userhttp.Response{
			Success: false,
			Error:   "Invalid product ID",
			Kind:    "Validation",
		})
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, userhttp.Response{
			Success: false,
			Error:   "Invalid request body",
			Kind:    "Validation",
		})
		return
	}

	cmd := command.UpdateProductCommand{
		ID:            uint(id),
		Name:          req.Name,
		Category:      req.Category,
		Quantity:      req.Quantity,
		MinStockLevel: req.MinStockLevel,
		Description:   req.Description,
		Actor:         userhttp.ActorFromRequest(r),
	}

	product, err := h.updateHandler.Handle(cmd)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, userhttp.Response{
			Success: true,
			Message: "Product updated successfully",
			Data:    product,
		})
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondJSON(w, http.StatusNotFound, userhttp.Response{
			Success: false,
			Error:   "Product not found",
			Kind:    "NotFound",
		})
	default:
		logger.Error(r.Context()).Err(err).Msg("Failed to update product")
		respondJSON(w, http.StatusBadRequest, userhttp.Response{
			Success: false,
			Error:   err.Error(),
			Kind:    "Validation",
		})
	}
}

// DeleteProduct handles DELETE /products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, userhttp.Response{
			Success: false,
			Error:   "Invalid product ID",
			Kind:    "Validation",
		})
		return
	}

	cmd := command.DeleteProductCommand{
		ID:    uint(id),
		Actor: userhttp.ActorFromRequest(r),
	}

	err = h.deleteHandler.Handle(cmd)
	switch {
	case err == nil:
		h.updateProductsMetric()
		respondJSON(w, http.StatusOK, userhttp.Response{
			Success: true,
			Message: "Product deleted successfully",
		})
	case errors.Is(err, domain.ErrHasOpenAssignments):
		respondJSON(w, http.StatusConflict, userhttp.Response{
			Success: false,
			Error:   err.Error(),
			Kind:    "Conflict",
		})
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondJSON(w, http.StatusNotFound, userhttp.Response{
			Success: false,
			Error:   "Product not found",
			Kind:    "NotFound",
		})
	default:
		logger.Error(r.Context()).Err(err).Msg("Failed to delete product")
		respondJSON(w, http.StatusInternalServerError, userhttp.Response{
			Success: false,
			Error:   "Failed to delete product",
			Kind:    "Internal",
		})
	}
}

// LowStock handles GET /products/low-stock
func (h *ProductHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	products, err := h.lowStockHandler.Handle(query.LowStockQuery{Limit: limit})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list low stock products")
		respondJSON(w, http.StatusInternalServerError, userhttp.Response{
			Success: false,
			Error:   "Failed to list low stock products",
			Kind:    "Internal",
		})
		return
	}

	respondJSON(w, http.StatusOK, userhttp.Response{
		Success: true,
		Data: map[string]interface{}{
			"products": products,
			"count":    len(products),
		},
	})
}

func (h *ProductHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, userhttp.Response{
				Success: false,
				Error:   "Database unavailable",
			})
			return
		}

		respondJSON(w, http.StatusOK, userhttp.Response{
			Success: true,
			Message: "Service is healthy",
		})
	}).Methods("GET")
}

// updateProductsMetric updates the total products gauge
func (h *ProductHandler) updateProductsMetric() {
	count, err := h.repo.Count()
	if err != nil {
		return
	}
	h.totalProducts.Set(float64(count))
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
