package rest

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/api/middleware"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/api/shared/dto"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/checkin"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/domain"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/qrcode"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/redemption"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/rotation"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/store/schema"
)

// CheckinService is the subset of the check-in service used by the handlers
type CheckinService interface {
	Redeem(ctx context.Context, req checkin.RedeemRequest) (*checkin.Result, error)
	RecordManual(ctx context.Context, req checkin.ManualRequest) (*checkin.Result, error)
	RecordManualBatch(ctx context.Context, reqs []checkin.ManualRequest) ([]checkin.BatchResult, error)
	ListAttendance(ctx context.Context, eventID string, limit, offset int) ([]schema.AttendanceEntry, error)
}

// TokenAuthority is the subset of the rotation authority used by the handlers
type TokenAuthority interface {
	Rotate(ctx context.Context, eventID string) (*rotation.Rotation, error)
	CurrentToken(ctx context.Context, eventID string) (*string, error)
}

// Handler defines the interface for REST API handlers
type Handler interface {
	// RotateToken issues a fresh token for an event (operator)
	// POST /api/v1/events/:event_id/token/rotate
	RotateToken(c *gin.Context)

	// GetCurrentToken returns the event's current token (operator)
	// GET /api/v1/events/:event_id/token
	GetCurrentToken(c *gin.Context)

	// GetQRCode renders the current redemption address as a PNG without rotating (operator)
	// GET /api/v1/events/:event_id/qr.png?size=<pixels>
	GetQRCode(c *gin.Context)

	// Redeem records the caller's attendance from a JSON body
	// POST /api/v1/checkin
	Redeem(c *gin.Context)

	// RedeemAddress records the caller's attendance from a scanned redemption address
	// GET /checkin?event=<event_id>&token=<token>
	RedeemAddress(c *gin.Context)

	// RecordManual records attendance without a token (operator)
	// POST /api/v1/events/:event_id/attendance/manual
	RecordManual(c *gin.Context)

	// RecordManualBatch records several manual entries (operator)
	// POST /api/v1/events/:event_id/attendance/manual/batch
	RecordManualBatch(c *gin.Context)

	// ListAttendance lists the ledger entries of an event (operator)
	// GET /api/v1/events/:event_id/attendance?limit=<limit>&offset=<offset>
	ListAttendance(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	checkin           CheckinService
	authority         TokenAuthority
	redemptionBaseURL string
}

// NewHandler creates a new REST API handler
func NewHandler(svc CheckinService, authority TokenAuthority, redemptionBaseURL string) Handler {
	return &handler{
		checkin:           svc,
		authority:         authority,
		redemptionBaseURL: redemptionBaseURL,
	}
}

func eventIDParam(c *gin.Context) (string, bool) {
	eventID := strings.TrimSpace(c.Param("event_id"))
	if eventID == "" {
		respondBadRequest(c, "event_id is required")
		return "", false
	}
	return eventID, true
}

// RotateToken issues a fresh token for an event
func (h *handler) RotateToken(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	r, err := h.authority.Rotate(c.Request.Context(), eventID)
	if err != nil {
		respondDomainError(c, err, zap.String("eventID", eventID))
		return
	}

	address, err := h.address(r.EventID, r.Token)
	if err != nil {
		respondDomainError(c, err, zap.String("eventID", eventID))
		return
	}

	c.JSON(http.StatusOK, dto.MapRotation(r, address))
}

// GetCurrentToken returns the event's current token
func (h *handler) GetCurrentToken(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	token, err := h.authority.CurrentToken(c.Request.Context(), eventID)
	if err != nil {
		respondDomainError(c, err, zap.String("eventID", eventID))
		return
	}

	c.JSON(http.StatusOK, dto.CurrentTokenResponse{EventID: eventID, Token: token})
}

// GetQRCode renders the current redemption address as a PNG
func (h *handler) GetQRCode(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	queryParams, err := ParseQRCodeQuery(c)
	if err != nil {
		respondValidationError(c, err)
		return
	}
	if err := queryParams.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	token, err := h.authority.CurrentToken(c.Request.Context(), eventID)
	if err != nil {
		respondDomainError(c, err, zap.String("eventID", eventID))
		return
	}
	if token == nil || *token == "" {
		respondNotFound(c, "Event has no active check-in token")
		return
	}

	address, err := h.address(eventID, *token)
	if err != nil {
		respondDomainError(c, err, zap.String("eventID", eventID))
		return
	}

	png, err := qrcode.PNG(address, queryParams.Size)
	if err != nil {
		respondDomainError(c, err, zap.String("eventID", eventID))
		return
	}

	// The code is only valid until the next rotation
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}

// Redeem records the caller's attendance from a JSON body
func (h *handler) Redeem(c *gin.Context) {
	var req dto.RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	h.redeem(c, redemption.Address{EventID: req.EventID, Token: req.Token})
}

// RedeemAddress records the caller's attendance from a scanned redemption address
func (h *handler) RedeemAddress(c *gin.Context) {
	addr, err := redemption.FromQuery(c.Request.URL.Query())
	if err != nil {
		respondBadRequest(c, "Invalid check-in link", err.Error())
		return
	}

	h.redeem(c, addr)
}

func (h *handler) redeem(c *gin.Context, addr redemption.Address) {
	result, err := h.checkin.Redeem(c.Request.Context(), checkin.RedeemRequest{
		EventID: addr.EventID,
		Token:   addr.Token,
		Caller:  middleware.CallerFromContext(c),
	})
	if err != nil {
		respondDomainError(c, err, zap.String("eventID", addr.EventID))
		return
	}

	c.JSON(outcomeStatus(result.Outcome), dto.MapCheckinResult(addr.EventID, result))
}

// RecordManual records attendance without a token
func (h *handler) RecordManual(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	var req dto.ManualAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	result, err := h.checkin.RecordManual(c.Request.Context(),
		req.ToManualRequest(eventID, middleware.SubjectFromContext(c)))
	if err != nil {
		respondDomainError(c, err, zap.String("eventID", eventID))
		return
	}

	c.JSON(outcomeStatus(result.Outcome), dto.MapCheckinResult(eventID, result))
}

// RecordManualBatch records several manual entries
func (h *handler) RecordManualBatch(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	var req dto.ManualAttendanceBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	operator := middleware.SubjectFromContext(c)
	reqs := make([]checkin.ManualRequest, 0, len(req.Entries))
	for i := range req.Entries {
		reqs = append(reqs, req.Entries[i].ToManualRequest(eventID, operator))
	}

	results, err := h.checkin.RecordManualBatch(c.Request.Context(), reqs)
	if err != nil {
		respondDomainError(c, err, zap.String("eventID", eventID))
		return
	}

	// Per-item failures are reported in the body
	c.JSON(http.StatusOK, dto.MapBatchResults(eventID, results))
}

// ListAttendance lists the ledger entries of an event
func (h *handler) ListAttendance(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	queryParams, err := ParseListAttendanceQuery(c)
	if err != nil {
		respondValidationError(c, err)
		return
	}
	if err := queryParams.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	entries, err := h.checkin.ListAttendance(c.Request.Context(), eventID, queryParams.Limit, queryParams.Offset)
	if err != nil {
		respondDomainError(c, err, zap.String("eventID", eventID))
		return
	}

	c.JSON(http.StatusOK, dto.MapAttendanceList(entries, queryParams.Limit, queryParams.Offset))
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "checkin-api",
	})
}

// address builds the redemption address a scanner opens
func (h *handler) address(eventID, token string) (string, error) {
	return redemption.Build(h.redemptionBaseURL, redemption.Address{EventID: eventID, Token: token})
}

func outcomeStatus(outcome domain.Outcome) int {
	if outcome == domain.OutcomeRecorded {
		return http.StatusCreated
	}
	return http.StatusOK
}
