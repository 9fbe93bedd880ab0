package rest

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/api/shared/constants"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/qrcode"
)

// ListAttendanceQueryParams holds query parameters for GET /events/:event_id/attendance
type ListAttendanceQueryParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// QRCodeQueryParams holds query parameters for GET /events/:event_id/qr.png
type QRCodeQueryParams struct {
	Size int `form:"size,default=512"`
}

// ParseListAttendanceQuery parses query parameters for GET /events/:event_id/attendance
func ParseListAttendanceQuery(c *gin.Context) (*ListAttendanceQueryParams, error) {
	var params ListAttendanceQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	// Cap limits
	if params.Limit > constants.MAX_PAGE_SIZE {
		params.Limit = constants.MAX_PAGE_SIZE
	}

	return &params, nil
}

// Validate validates the query parameters
func (p *ListAttendanceQueryParams) Validate() error {
	if p.Limit < 1 {
		return fmt.Errorf("limit must be at least 1")
	}
	if p.Offset < 0 {
		return fmt.Errorf("offset must be non-negative")
	}
	return nil
}

// ParseQRCodeQuery parses query parameters for GET /events/:event_id/qr.png
func ParseQRCodeQuery(c *gin.Context) (*QRCodeQueryParams, error) {
	var params QRCodeQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	return &params, nil
}

// Validate validates the query parameters
func (p *QRCodeQueryParams) Validate() error {
	if p.Size < qrcode.MinPNGSize || p.Size > qrcode.MaxPNGSize {
		return fmt.Errorf("size must be between %d and %d", qrcode.MinPNGSize, qrcode.MaxPNGSize)
	}
	return nil
}
