package bridge

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	httperr "github.com/aevon-lab/footprint/internal/core/errors"
)

const maxCallBodyBytes = 64 * 1024

var errBodyTooLarge = errors.New("request body exceeds maximum allowed size")

// RegisterRoutes registers the channel endpoint.
func (d *Dispatcher) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/channel/:method", d.ChannelHandler)
}

// ChannelHandler handles POST /v1/channel/:method. The optional body is the
// JSON object of call arguments.
func (d *Dispatcher) ChannelHandler(c *gin.Context) {
	args, err := decodeArguments(c.Request.Body)
	if errors.Is(err, errBodyTooLarge) {
		slog.Warn("[Bridge] Call body exceeds maximum size", "method", c.Param("method"), "max", maxCallBodyBytes)
		c.JSON(http.StatusRequestEntityTooLarge, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Request body exceeds maximum allowed size",
			Details: map[string]interface{}{
				"max_size_bytes": maxCallBodyBytes,
			},
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid JSON body",
			Details:   err.Error(),
		})
		return
	}

	resp := d.Invoke(c.Request.Context(), Call{Method: c.Param("method"), Arguments: args})
	c.JSON(statusCode(resp), resp)
}

func decodeArguments(body io.Reader) (map[string]any, error) {
	if body == nil {
		return map[string]any{}, nil
	}

	raw, err := io.ReadAll(io.LimitReader(body, maxCallBodyBytes+1))
	if err != nil {
		return nil, err
	}
	if len(raw) > maxCallBodyBytes {
		return nil, errBodyTooLarge
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	args := map[string]any{}
	if err := dec.Decode(&args); err != nil {
		return nil, err
	}
	return args, nil
}

func statusCode(resp Response) int {
	switch resp.Status {
	case StatusOK:
		return http.StatusOK
	case StatusNotImplemented:
		return http.StatusNotImplemented
	}

	if resp.Error == nil {
		return http.StatusInternalServerError
	}
	switch httperr.Kind(resp.Error.ErrorType) {
	case httperr.KindInvalidArgument, httperr.KindInvalidRange:
		return http.StatusBadRequest
	case httperr.KindPermissionDenied:
		return http.StatusForbidden
	case httperr.KindNoDataAvailable:
		return http.StatusNotFound
	case httperr.KindUnsupportedPlatform:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
