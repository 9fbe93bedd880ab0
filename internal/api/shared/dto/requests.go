package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/api/shared/constants"
	apierrors "github.com/Luthfisurya324/project-digcity-website-sub001/internal/api/shared/errors"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/checkin"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/domain"
)

// RedeemRequest represents the request body for redeeming a scanned token
type RedeemRequest struct {
	EventID string `json:"event_id"`
	Token   string `json:"token"`
}

// Validate validates the request body
func (r *RedeemRequest) Validate() error {
	r.EventID = strings.TrimSpace(r.EventID)
	r.Token = strings.TrimSpace(r.Token)

	if r.EventID == "" {
		return apierrors.NewValidationError("event_id is required")
	}
	if r.Token == "" {
		return apierrors.NewValidationError("token is required")
	}
	return nil
}

// ManualAttendanceRequest represents the request body for recording attendance without a token
type ManualAttendanceRequest struct {
	MemberID   string     `json:"member_id,omitempty"`
	Name       string     `json:"name,omitempty"`
	Status     string     `json:"status"`
	RecordedAt *time.Time `json:"recorded_at,omitempty"`
	Notes      string     `json:"notes,omitempty"`
}

// Validate validates the request body
func (r *ManualAttendanceRequest) Validate() error {
	r.MemberID = strings.TrimSpace(r.MemberID)
	r.Name = strings.TrimSpace(r.Name)

	// Either a member reference or a free-text name identifies the participant
	if r.MemberID == "" && r.Name == "" {
		return apierrors.NewValidationError("one of member_id or name is required")
	}
	if len(r.Name) > constants.MAX_NAME_LENGTH {
		return apierrors.NewValidationError(fmt.Sprintf("name must be at most %d characters", constants.MAX_NAME_LENGTH))
	}
	if len(r.Notes) > constants.MAX_NOTES_LENGTH {
		return apierrors.NewValidationError(fmt.Sprintf("notes must be at most %d characters", constants.MAX_NOTES_LENGTH))
	}
	if _, err := domain.ParseAttendanceStatus(r.Status); err != nil {
		return apierrors.NewValidationError(err.Error())
	}
	return nil
}

// ToManualRequest converts the validated body into a service request
func (r *ManualAttendanceRequest) ToManualRequest(eventID, operator string) checkin.ManualRequest {
	status, _ := domain.ParseAttendanceStatus(r.Status)

	req := checkin.ManualRequest{
		EventID:  eventID,
		MemberID: r.MemberID,
		Name:     r.Name,
		Status:   status,
		Notes:    r.Notes,
		Operator: operator,
	}
	if r.RecordedAt != nil {
		req.RecordedAt = *r.RecordedAt
	}
	return req
}

// ManualAttendanceBatchRequest represents the request body for a batch of manual entries
type ManualAttendanceBatchRequest struct {
	Entries []ManualAttendanceRequest `json:"entries"`
}

// Validate validates the request body
func (r *ManualAttendanceBatchRequest) Validate() error {
	if len(r.Entries) == 0 {
		return apierrors.NewValidationError("entries is required")
	}
	if len(r.Entries) > checkin.MaxBatchSize {
		return apierrors.NewValidationError(fmt.Sprintf("maximum %d entries allowed", checkin.MaxBatchSize))
	}

	for i := range r.Entries {
		if err := r.Entries[i].Validate(); err != nil {
			return apierrors.NewValidationError(fmt.Sprintf("entries[%d]: %s", i, detailsOf(err)))
		}
	}
	return nil
}

func detailsOf(err error) string {
	if apiErr, ok := err.(*apierrors.APIError); ok && apiErr.Details != "" {
		return apiErr.Details
	}
	return err.Error()
}
