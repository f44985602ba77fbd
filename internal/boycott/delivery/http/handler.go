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

	"github.com/boycottapp/weekly-boycott/internal/boycott/domain"
	"github.com/boycottapp/weekly-boycott/internal/boycott/usecase/command"
	"github.com/boycottapp/weekly-boycott/internal/boycott/usecase/query"
	"github.com/boycottapp/weekly-boycott/pkg/cache"
	"github.com/boycottapp/weekly-boycott/pkg/logger"
)

const boycottListCacheKey = "boycott:list:"

// BoycottHandler handles HTTP requests for the weekly boycott service using
// the CQRS pattern
type BoycottHandler struct {
	// Command handlers
	castVoteHandler    *command.CastVoteHandler
	likeProductHandler *command.LikeProductHandler
	runRotationHandler *command.RunRotationHandler

	// Query handlers
	listBoycottedHandler *query.ListBoycottedHandler
	listVotableHandler   *query.ListVotableHandler
	getUserVoteHandler   *query.GetUserVoteHandler
	getUserLikesHandler  *query.GetUserLikesHandler
	statsHandler         *query.GetStatsHandler

	listCache *cache.ListCache

	requestCounter    *prometheus.CounterVec
	requestLatency    *prometheus.HistogramVec
	requestSummary    *prometheus.SummaryVec
	boycottedProducts prometheus.Gauge
}

// NewBoycottHandler creates a new boycott handler with CQRS pattern (manual DI)
func NewBoycottHandler(
	products domain.ProductRepository,
	votes domain.VoteRepository,
	likes domain.LikeRepository,
	listCache *cache.ListCache,
) *BoycottHandler {
	return NewBoycottHandlerWithDI(
		command.NewCastVoteHandler(votes, products),
		command.NewLikeProductHandler(likes, products),
		command.NewRunRotationHandler(products, votes),
		query.NewListBoycottedHandler(products),
		query.NewListVotableHandler(products),
		query.NewGetUserVoteHandler(votes),
		query.NewGetUserLikesHandler(likes),
		query.NewGetStatsHandler(products, votes, likes),
		listCache,
	)
}

// NewBoycottHandlerWithDI creates a new boycott handler from prebuilt
// command and query handlers. Used by Wire.
func NewBoycottHandlerWithDI(
	castVoteHandler *command.CastVoteHandler,
	likeProductHandler *command.LikeProductHandler,
	runRotationHandler *command.RunRotationHandler,
	listBoycottedHandler *query.ListBoycottedHandler,
	listVotableHandler *query.ListVotableHandler,
	getUserVoteHandler *query.GetUserVoteHandler,
	getUserLikesHandler *query.GetUserLikesHandler,
	statsHandler *query.GetStatsHandler,
	listCache *cache.ListCache,
) *BoycottHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boycott_service_requests_total",
			Help: "Total number of requests to the boycott service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "boycott_service_request_duration_seconds",
			Help:    "Duration of boycott service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	requestSummary := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "boycott_service_request_duration_summary",
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

	boycottedProducts := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "boycott_service_boycotted_products",
			Help: "Number of products currently holding boycotted status",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(requestSummary)
	prometheus.MustRegister(boycottedProducts)

	return &BoycottHandler{
		castVoteHandler:      castVoteHandler,
		likeProductHandler:   likeProductHandler,
		runRotationHandler:   runRotationHandler,
		listBoycottedHandler: listBoycottedHandler,
		listVotableHandler:   listVotableHandler,
		getUserVoteHandler:   getUserVoteHandler,
		getUserLikesHandler:  getUserLikesHandler,
		statsHandler:         statsHandler,
		listCache:            listCache,
		requestCounter:       requestCounter,
		requestLatency:       requestLatency,
		requestSummary:       requestSummary,
		boycottedProducts:    boycottedProducts,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
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

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *BoycottHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
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

func (h *BoycottHandler) RegisterRoutes(router *mux.Router) {
	// Public read routes
	router.HandleFunc("/api/products/boycotted", h.metricsMiddleware("/api/products/boycotted", h.ListBoycotted)).Methods("GET")
	router.HandleFunc("/api/products/votable", h.metricsMiddleware("/api/products/votable", h.ListVotable)).Methods("GET")
	router.HandleFunc("/api/stats", h.metricsMiddleware("/api/stats", h.GetStats)).Methods("GET")

	// Authenticated user routes
	router.HandleFunc("/api/votes", h.metricsMiddleware("/api/votes", AuthMiddleware(h.CastVote))).Methods("POST")
	router.HandleFunc("/api/votes/me", h.metricsMiddleware("/api/votes/me", AuthMiddleware(h.GetMyVote))).Methods("GET")
	router.HandleFunc("/api/products/{id}/like", h.metricsMiddleware("/api/products/{id}/like", AuthMiddleware(h.LikeProduct))).Methods("POST")
	router.HandleFunc("/api/likes/me", h.metricsMiddleware("/api/likes/me", AuthMiddleware(h.GetMyLikes))).Methods("GET")

	// Admin routes; the normal rotation trigger is the scheduled runner,
	// this endpoint exists for operators re-running a failed rotation.
	router.HandleFunc("/api/admin/rotation", h.metricsMiddleware("/api/admin/rotation", AdminMiddleware(h.RunRotation))).Methods("POST")
}

// ListBoycotted handles GET /api/products/boycotted
func (h *BoycottHandler) ListBoycotted(w http.ResponseWriter, r *http.Request) {
	cacheKey := boycottListCacheKey + domain.WeekID(time.Now())

	var cached []domain.RankedProduct
	if h.listCache.Get(r.Context(), cacheKey, &cached) {
		w.Header().Set("X-Cache", "HIT")
		respondJSON(w, http.StatusOK, Response{Success: true, Data: cached})
		return
	}

	products, err := h.listBoycottedHandler.Handle(query.ListBoycottedQuery{})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list boycotted products")
		respondError(w, err)
		return
	}

	h.boycottedProducts.Set(float64(len(products)))
	h.listCache.Set(r.Context(), cacheKey, products)

	respondJSON(w, http.StatusOK, Response{Success: true, Data: products})
}

// ListVotable handles GET /api/products/votable
func (h *BoycottHandler) ListVotable(w http.ResponseWriter, r *http.Request) {
	products, err := h.listVotableHandler.Handle(query.ListVotableQuery{})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list votable products")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: products})
}

// CastVote handles POST /api/votes
func (h *BoycottHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductIDs []string `json:"product_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	cmd := command.CastVoteCommand{
		UserID:     UserIDFromContext(r.Context()),
		ProductIDs: req.ProductIDs,
	}

	vote, err := h.castVoteHandler.Handle(cmd)
	if err != nil {
		logger.Logger.Warn().Err(err).Str("user_id", cmd.UserID).Msg("Vote rejected")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Vote recorded",
		Data:    vote,
	})
}

// GetMyVote handles GET /api/votes/me
func (h *BoycottHandler) GetMyVote(w http.ResponseWriter, r *http.Request) {
	result, err := h.getUserVoteHandler.Handle(query.GetUserVoteQuery{
		UserID: UserIDFromContext(r.Context()),
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to load user vote")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: result})
}

// LikeProduct handles POST /api/products/{id}/like
func (h *BoycottHandler) LikeProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	cmd := command.LikeProductCommand{
		UserID:    UserIDFromContext(r.Context()),
		ProductID: vars["id"],
	}

	count, err := h.likeProductHandler.Handle(cmd)
	if err != nil {
		logger.Logger.Warn().Err(err).Str("user_id", cmd.UserID).Str("product_id", cmd.ProductID).Msg("Like rejected")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Like recorded",
		Data:    map[string]interface{}{"weekly_likes": count},
	})
}

// GetMyLikes handles GET /api/likes/me
func (h *BoycottHandler) GetMyLikes(w http.ResponseWriter, r *http.Request) {
	productIDs, err := h.getUserLikesHandler.Handle(query.GetUserLikesQuery{
		UserID: UserIDFromContext(r.Context()),
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to load user likes")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]interface{}{"product_ids": productIDs},
	})
}

// RunRotation handles POST /api/admin/rotation
func (h *BoycottHandler) RunRotation(w http.ResponseWriter, r *http.Request) {
	result, err := h.runRotationHandler.Handle(r.Context())
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Manual rotation failed")
		respondError(w, err)
		return
	}

	h.listCache.InvalidatePrefix(r.Context(), boycottListCacheKey)

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Rotation completed",
		Data:    result,
	})
}

// GetStats handles GET /api/stats
func (h *BoycottHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsHandler.Handle(query.GetStatsQuery{})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to get stats")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: stats})
}

func (h *BoycottHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.Ping(); err != nil {
				respondJSON(w, http.StatusServiceUnavailable, Response{
					Success: false,
					Error:   "Database unavailable",
				})
				return
			}
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Boycott service is healthy",
		})
	}).Methods("GET")
}

// respondError maps domain errors onto HTTP statuses. Validation and
// conflict messages are caller-safe; everything else gets a generic retry
// message so storage details never leak.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsValidationError(err):
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
	case errors.Is(err, domain.ErrAlreadyVoted), errors.Is(err, domain.ErrAlreadyLiked):
		respondJSON(w, http.StatusConflict, Response{Success: false, Error: err.Error()})
	case errors.Is(err, domain.ErrProductNotFound):
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Product not found"})
	default:
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Something went wrong, please try again",
		})
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
