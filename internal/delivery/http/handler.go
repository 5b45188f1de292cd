package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nutriswap/backend/internal/domain"
)

const (
	serviceName    = "nutriswap-backend"
	serviceVersion = "1.0.0"
)

// ProductService is the use case surface the handlers depend on
type ProductService interface {
	LookupBarcode(ctx context.Context, barcode string) (*domain.Product, error)
	SearchByName(ctx context.Context, name string) ([]domain.Product, error)
	Analyze(product *domain.Product, profile domain.HealthProfile) []domain.Warning
	FindSubstitutes(ctx context.Context, product *domain.Product, profile domain.HealthProfile) []domain.Product
	SubstitutesFromPool(product *domain.Product, profile domain.HealthProfile, pool []domain.Product) []domain.Product
	Report(ctx context.Context, product *domain.Product, profile domain.HealthProfile, withSubstitutes bool) *domain.ProductReport
	Rules() domain.RuleSet
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	products ProductService
	logger   *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(products ProductService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{products: products, logger: logger.Named("handler")}
}

// AnalyzeRequest is the body of POST /api/v1/analyze
type AnalyzeRequest struct {
	Product *domain.Product       `json:"product" binding:"required"`
	Profile *domain.HealthProfile `json:"profile"`
}

// SubstitutesRequest is the body of POST /api/v1/substitutes.
// Without candidates the category pool is fetched upstream.
type SubstitutesRequest struct {
	Product    *domain.Product       `json:"product" binding:"required"`
	Profile    *domain.HealthProfile `json:"profile"`
	Candidates *[]domain.Product     `json:"candidates"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	})
}

// GetProduct looks up a product by barcode and returns its report
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.products.LookupBarcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	withSubstitutes := !strings.EqualFold(c.Query("substitutes"), "false")
	report := h.products.Report(c.Request.Context(), product, tokenProfile(c), withSubstitutes)
	c.JSON(http.StatusOK, report)
}

// SearchProducts handles product name search requests
func (h *Handler) SearchProducts(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		h.respondError(c, domain.ErrInvalidRequest)
		return
	}

	products, err := h.products.SearchByName(c.Request.Context(), query)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// Analyze returns the warnings for a posted product
func (h *Handler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, errors.Join(domain.ErrInvalidRequest, err))
		return
	}

	profile := requestProfile(c, req.Profile)
	c.JSON(http.StatusOK, gin.H{
		"warnings": h.products.Analyze(req.Product, profile),
	})
}

// Substitutes returns safer alternatives for a posted product
func (h *Handler) Substitutes(c *gin.Context) {
	var req SubstitutesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, errors.Join(domain.ErrInvalidRequest, err))
		return
	}

	profile := requestProfile(c, req.Profile)

	var substitutes []domain.Product
	if req.Candidates != nil {
		substitutes = h.products.SubstitutesFromPool(req.Product, profile, *req.Candidates)
	} else {
		substitutes = h.products.FindSubstitutes(c.Request.Context(), req.Product, profile)
	}

	c.JSON(http.StatusOK, gin.H{
		"substitutes": substitutes,
	})
}

// Conditions returns the loaded condition rule table
func (h *Handler) Conditions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"conditions": h.products.Rules(),
	})
}

// requestProfile prefers the profile in the body over the token profile
func requestProfile(c *gin.Context, body *domain.HealthProfile) domain.HealthProfile {
	if body != nil {
		return *body
	}
	return tokenProfile(c)
}

// respondError maps domain errors to HTTP status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err),
		)
	}
	_ = c.Error(err)
	c.JSON(status, errorResponse(err, c))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrUpstreamFailure):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func errorResponse(err error, c *gin.Context) gin.H {
	message := err.Error()
	if statusFor(err) == http.StatusInternalServerError {
		message = "internal server error"
	}
	resp := gin.H{"error": message}
	if id := c.GetString(requestIDKey); id != "" {
		resp["requestId"] = id
	}
	return resp
}
