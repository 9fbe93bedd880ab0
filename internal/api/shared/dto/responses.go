package dto

import (
	"fmt"
	"time"

	apierrors "github.com/Luthfisurya324/project-digcity-website-sub001/internal/api/shared/errors"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/checkin"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/domain"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/identity"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/rotation"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/store/schema"
)

// RotationResponse represents a committed token rotation
type RotationResponse struct {
	EventID         string    `json:"event_id"`
	Token           string    `json:"token"`
	RotatedAt       time.Time `json:"rotated_at"`
	IntervalSeconds int64     `json:"interval_seconds"`
	Address         string    `json:"address,omitempty"`
}

// CurrentTokenResponse represents an event's current token. Token is null before the first rotation.
type CurrentTokenResponse struct {
	EventID string  `json:"event_id"`
	Token   *string `json:"token"`
}

// AttendanceEntryResponse represents a ledger entry
type AttendanceEntryResponse struct {
	ID                string    `json:"id"`
	EventID           string    `json:"event_id"`
	IdentityKey       string    `json:"identity_key"`
	MemberID          *string   `json:"member_id,omitempty"`
	DisplayName       string    `json:"display_name"`
	ExternalReference *string   `json:"external_reference,omitempty"`
	Status            string    `json:"status"`
	Origin            string    `json:"origin"`
	RecordedAt        time.Time `json:"recorded_at"`
	RecordedBy        string    `json:"recorded_by,omitempty"`
	Notes             string    `json:"notes"`
}

// CheckinResponse represents the outcome of a redemption or a manual entry
type CheckinResponse struct {
	Outcome    domain.Outcome           `json:"outcome"`
	EventID    string                   `json:"event_id"`
	EventTitle string                   `json:"event_title"`
	Message    string                   `json:"message"`
	Entry      *AttendanceEntryResponse `json:"entry"`
	Warnings   []string                 `json:"warnings,omitempty"`
}

// BatchItemResponse represents one item of a manual batch
type BatchItemResponse struct {
	Index  int                 `json:"index"`
	Result *CheckinResponse    `json:"result,omitempty"`
	Error  *apierrors.APIError `json:"error,omitempty"`
}

// BatchResponse represents the outcome of a manual batch
type BatchResponse struct {
	Items           []BatchItemResponse `json:"items"`
	Recorded        int                 `json:"recorded"`
	AlreadyRecorded int                 `json:"already_recorded"`
	Failed          int                 `json:"failed"`
}

// AttendanceListResponse represents a page of ledger entries
type AttendanceListResponse struct {
	Items  []AttendanceEntryResponse `json:"items"`
	Limit  int                       `json:"limit"`
	Offset int                       `json:"offset"`
}

// MapRotation converts a rotation into its response
func MapRotation(r *rotation.Rotation, address string) *RotationResponse {
	return &RotationResponse{
		EventID:         r.EventID,
		Token:           r.Token,
		RotatedAt:       r.RotatedAt,
		IntervalSeconds: int64(r.Interval / time.Second),
		Address:         address,
	}
}

// MapAttendanceEntry converts a ledger entry into its response
func MapAttendanceEntry(e *schema.AttendanceEntry) *AttendanceEntryResponse {
	if e == nil {
		return nil
	}
	return &AttendanceEntryResponse{
		ID:                e.ID,
		EventID:           e.EventID,
		IdentityKey:       string(e.IdentityKey),
		MemberID:          e.MemberID,
		DisplayName:       e.DisplayName,
		ExternalReference: e.ExternalReference,
		Status:            string(e.Status),
		Origin:            string(e.Origin),
		RecordedAt:        e.RecordedAt,
		RecordedBy:        e.RecordedBy,
		Notes:             e.Notes,
	}
}

// MapCheckinResult converts a service result into its response
func MapCheckinResult(eventID string, r *checkin.Result) *CheckinResponse {
	resp := &CheckinResponse{
		Outcome:    r.Outcome,
		EventID:    eventID,
		EventTitle: r.EventTitle,
		Entry:      MapAttendanceEntry(r.Entry),
	}

	switch r.Outcome {
	case domain.OutcomeAlreadyRecorded:
		resp.Message = fmt.Sprintf("You are already checked in to %s", r.EventTitle)
	default:
		resp.Message = fmt.Sprintf("Checked in to %s", r.EventTitle)
	}

	resp.Warnings = warningStrings(r.Warnings)
	return resp
}

// MapBatchResults converts batch results into a response, keeping input order
func MapBatchResults(eventID string, results []checkin.BatchResult) *BatchResponse {
	resp := &BatchResponse{Items: make([]BatchItemResponse, 0, len(results))}
	for i, r := range results {
		item := BatchItemResponse{Index: i}
		if r.Err != nil {
			_, item.Error = apierrors.FromDomain(r.Err)
			resp.Failed++
		} else {
			item.Result = MapCheckinResult(eventID, r.Result)
			if r.Result.Outcome == domain.OutcomeRecorded {
				resp.Recorded++
			} else {
				resp.AlreadyRecorded++
			}
		}
		resp.Items = append(resp.Items, item)
	}
	return resp
}

// MapAttendanceList converts ledger entries into a page response
func MapAttendanceList(entries []schema.AttendanceEntry, limit, offset int) *AttendanceListResponse {
	items := make([]AttendanceEntryResponse, 0, len(entries))
	for i := range entries {
		items = append(items, *MapAttendanceEntry(&entries[i]))
	}
	return &AttendanceListResponse{Items: items, Limit: limit, Offset: offset}
}

func warningStrings(ws []identity.Warning) []string {
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, string(w))
	}
	return out
}
