package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"codeflow.app/relay/internal/http/dto"
	"codeflow.app/relay/internal/service"
	"github.com/gin-gonic/gin"
)

const redactedProviderError = "model provider request failed"

type ReviewHandler struct {
	reviewService        service.ReviewService
	exposeProviderErrors bool
}

// NewReviewHandler creates the handler for the four relay endpoints.
// With exposeProviderErrors set, provider failures return the raw error text
// instead of a generic message.
func NewReviewHandler(reviewService service.ReviewService, exposeProviderErrors bool) *ReviewHandler {
	return &ReviewHandler{
		reviewService:        reviewService,
		exposeProviderErrors: exposeProviderErrors,
	}
}

func (h *ReviewHandler) Analyze(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CodeRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.reviewService.Analyze(ctx, req.ToInput())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ReviewHandler) Fix(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.FixRequest
	if !bindJSON(c, &req) {
		return
	}

	fixed, err := h.reviewService.Fix(ctx, req.ToInput())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FixResponse{FixedCode: fixed})
}

func (h *ReviewHandler) GenerateTests(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CodeRequest
	if !bindJSON(c, &req) {
		return
	}

	doc, err := h.reviewService.GenerateTests(ctx, req.ToInput())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (h *ReviewHandler) Verify(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CodeRequest
	if !bindJSON(c, &req) {
		return
	}

	doc, err := h.reviewService.Verify(ctx, req.ToInput())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		slog.WarnContext(c.Request.Context(), "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return false
	}
	return true
}

func (h *ReviewHandler) respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var (
		parseErr    *service.ParseError
		providerErr *service.ProviderError
	)

	switch {
	case errors.Is(err, service.ErrEmptyCode):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.As(err, &parseErr):
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: parseErr.Error()})
	case errors.As(err, &providerErr):
		msg := redactedProviderError
		if h.exposeProviderErrors {
			msg = providerErr.Err.Error()
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: msg})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}
