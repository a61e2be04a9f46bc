package ingestion

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/aevon-lab/footprint/internal/api/v1"
	httperr "github.com/aevon-lab/footprint/internal/core/errors"
	"github.com/aevon-lab/footprint/internal/core/storage"
	"github.com/aevon-lab/footprint/internal/host"
	"github.com/aevon-lab/footprint/internal/metrics"
)

const (
	msgReadBodyFailed  = "Failed to read request body"
	msgInvalidJSON     = "Invalid JSON body"
	msgPersistFailed   = "Failed to persist usage report"
	msgDuplicateReport = "Usage report already exists"
)

// ingestionError carries the structured HTTP error shape from a helper back to the orchestrator.
type ingestionError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *ingestionError) Error() string {
	return e.message
}

// IngestHandler handles HTTP POST requests carrying device usage reports.
func (s *Service) IngestHandler(c *gin.Context) {
	report, payloadSize, err := s.parseReport(c)
	if err != nil {
		metrics.ReportsIngested.WithLabelValues("rejected").Inc()
		writeError(c, err)
		return
	}

	if err := s.validateReport(report); err != nil {
		metrics.ReportsIngested.WithLabelValues("rejected").Inc()
		writeError(c, err)
		return
	}

	slog.Info("Received usage report",
		"report_id", report.ID,
		"granularity", report.Granularity,
		"records", len(report.Records),
		"payload_size", payloadSize)

	if err := s.persistReport(c.Request.Context(), report); err != nil {
		writeError(c, err)
		return
	}

	metrics.ReportsIngested.WithLabelValues("accepted").Inc()
	metrics.RecordsIngested.Add(float64(len(report.Records)))

	c.JSON(http.StatusAccepted, gin.H{"status": "accepted", "id": report.ID})
}

// parseReport reads the raw request body and binds it into a UsageReport.
// Returns the parsed report and the raw payload size.
func (s *Service) parseReport(c *gin.Context) (*v1.UsageReport, int, *ingestionError) {
	maxBytes := int64(s.maxBodySizeBytes)
	limitedBody := io.LimitReader(c.Request.Body, maxBytes+1) // +1 to detect oversized requests

	bodyBytes, err := io.ReadAll(limitedBody)
	if err != nil {
		slog.Error("Failed to read request body", "error", err)
		return nil, 0, &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}

	if int64(len(bodyBytes)) > maxBytes {
		slog.Warn("Request body exceeds maximum size", "size", len(bodyBytes), "max", maxBytes)
		return nil, len(bodyBytes), &ingestionError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpInvalidJsonError,
			message:    "Request body exceeds maximum allowed size",
			details: map[string]interface{}{
				"max_size_mb": maxBytes / (1024 * 1024),
			},
		}
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	var report v1.UsageReport
	if err := c.ShouldBindJSON(&report); err != nil {
		slog.Warn("Invalid JSON body received", "error", err, "payload_size", len(bodyBytes))
		return nil, len(bodyBytes), &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
		}
	}

	// ReceivedAt is server time, whatever the client sent
	report.ReceivedAt = s.nowFn()
	if report.ID == "" {
		report.ID = s.newID()
	}
	return &report, len(bodyBytes), nil
}

// validateReport checks the envelope, every record and the granularity.
func (s *Service) validateReport(report *v1.UsageReport) *ingestionError {
	if err := report.Validate(); err != nil {
		slog.Warn("Usage report validation failed", "error", err, "report_id", report.ID)
		return &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    err.Error(),
		}
	}

	if _, err := host.ParseGranularity(report.Granularity); err != nil {
		slog.Warn("Usage report has invalid granularity", "granularity", report.Granularity, "report_id", report.ID)
		return &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    err.Error(),
		}
	}

	return nil
}

// persistReport saves the report to the backing store.
func (s *Service) persistReport(ctx context.Context, report *v1.UsageReport) *ingestionError {
	if err := s.store.SaveReport(ctx, report); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			metrics.ReportsIngested.WithLabelValues("duplicate").Inc()
			slog.Info("Duplicate usage report rejected", "report_id", report.ID)
			return &ingestionError{
				statusCode: http.StatusConflict,
				errorType:  httperr.HttpDuplicateReportError,
				message:    msgDuplicateReport,
			}
		}

		metrics.ReportsIngested.WithLabelValues("failed").Inc()
		slog.Error("Failed to persist usage report", "error", err, "report_id", report.ID)
		return &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgPersistFailed,
		}
	}

	return nil
}

// writeError serializes an ingestionError as the JSON HTTP response.
func writeError(c *gin.Context, err *ingestionError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
