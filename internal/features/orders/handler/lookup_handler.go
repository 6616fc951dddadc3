package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"repair-tracker/internal/core/logger"
	"repair-tracker/internal/features/orders/domain"
	"repair-tracker/internal/features/orders/service"

	"github.com/gofiber/fiber/v2"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

const qrSize = 256

// HealthChecker reports whether the order store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// LookupHandler handles HTTP requests for order lookups.
type LookupHandler struct {
	// service is the LookupService instance.
	service *service.LookupService
	// health checks the order store.
	health HealthChecker
	// trackURL is the public tracking page format, with %s for the token.
	trackURL string
}

// NewLookupHandler creates a new instance of LookupHandler.
func NewLookupHandler(s *service.LookupService, health HealthChecker, trackURL string) *LookupHandler {
	return &LookupHandler{
		service:  s,
		health:   health,
		trackURL: trackURL,
	}
}

// LookupResponse is the body of a successful lookup.
type LookupResponse struct {
	// QueryKind tells which field the search matched on.
	QueryKind domain.QueryKind `json:"query_kind"`
	// Ambiguous is true when several orders matched an owner search.
	Ambiguous bool `json:"ambiguous"`
	// Orders holds the matches with their progress.
	Orders []service.TrackedOrder `json:"orders"`
}

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id"`
}

// Lookup handles a search submitted by the customer.
// @Summary Look up an order
// @Description Finds orders by order id, tracking token, national id or phone fragment.
// @Tags Orders
// @Produce json
// @Param q query string true "Order id, tracking token, national id or phone fragment"
// @Success 200 {object} LookupResponse
// @Success 204 "Blank query, nothing looked up"
// @Failure 404 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /lookup [get]
func (h *LookupHandler) Lookup(c *fiber.Ctx) error {
	return h.lookup(c, c.Query("q"))
}

// Track handles the automatic lookup triggered by a tracking link.
// @Summary Track an order from a link
// @Description Same as /lookup, driven by the id parameter of a tracking link.
// @Tags Orders
// @Produce json
// @Param id query string true "Tracking token or order id"
// @Success 200 {object} LookupResponse
// @Success 204 "Blank id, nothing looked up"
// @Failure 404 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /track [get]
func (h *LookupHandler) Track(c *fiber.Ctx) error {
	return h.lookup(c, c.Query("id"))
}

func (h *LookupHandler) lookup(c *fiber.Ctx, raw string) error {
	rayID := rayIDFrom(c)

	result, err := h.service.Lookup(c.UserContext(), raw)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyQuery):
			return c.SendStatus(http.StatusNoContent)
		case errors.Is(err, service.ErrOrderNotFound):
			return c.Status(http.StatusNotFound).JSON(ErrorResponse{
				Message: "Order not found",
				RayID:   rayID,
			})
		default:
			logger.Get().Error("Failed to look up order",
				zap.String("ray_id", rayID),
				zap.Error(err),
			)
			return c.Status(http.StatusBadGateway).JSON(ErrorResponse{
				Message: "Connection error",
				RayID:   rayID,
			})
		}
	}

	logger.Get().Debug("Order lookup succeeded",
		zap.String("ray_id", rayID),
		zap.String("query_kind", string(result.Query.Kind())),
		zap.Int("matches", len(result.Orders)),
	)

	return c.Status(http.StatusOK).JSON(LookupResponse{
		QueryKind: result.Query.Kind(),
		Ambiguous: result.Ambiguous,
		Orders:    result.Orders,
	})
}

// Progress maps a status label onto the repair pipeline.
// @Summary Map a status label to progress
// @Description Returns the stage index and completion percentage for a status label. Unknown labels map to the first stage.
// @Tags Orders
// @Produce json
// @Param status query string false "Status label"
// @Success 200 {object} domain.Progress
// @Router /progress [get]
func (h *LookupHandler) Progress(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(h.service.Progress(c.Query("status")))
}

// TrackingQR renders the tracking link for a token as a QR code.
// @Summary Tracking link QR code
// @Description PNG QR code pointing at the public tracking page for a token.
// @Tags Orders
// @Produce png
// @Param id query string true "Tracking token"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Router /track/qr [get]
func (h *LookupHandler) TrackingQR(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Tracking id is required",
			RayID:   rayIDFrom(c),
		})
	}

	png, err := qrcode.Encode(fmt.Sprintf(h.trackURL, url.QueryEscape(id)), qrcode.Medium, qrSize)
	if err != nil {
		logger.Get().Error("Failed to render QR code", zap.String("ray_id", rayIDFrom(c)), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Message: "Internal Server Error",
			RayID:   rayIDFrom(c),
		})
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Status(http.StatusOK).Send(png)
}

// Health reports whether the order store can be reached.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} ErrorResponse
// @Router /health [get]
func (h *LookupHandler) Health(c *fiber.Ctx) error {
	if err := h.health.HealthCheck(c.UserContext()); err != nil {
		logger.Get().Warn("Order store health check failed", zap.Error(err))
		return c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{
			Message: "Order store unreachable",
			RayID:   rayIDFrom(c),
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"status": "ok"})
}

func rayIDFrom(c *fiber.Ctx) string {
	rayID, ok := c.Locals("requestid").(string)
	if !ok {
		return "unknown"
	}
	return rayID
}
