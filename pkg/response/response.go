package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Envelope fields present on every response. Payload keys are merged at the
// top level next to them, which is what the web client reads.
const (
	keyError     = "error"
	keyMessage   = "message"
	keyRequestID = "request_id"
	keyTimestamp = "timestamp"
	keyDetails   = "details"
)

func envelope(ctx *gin.Context, failed bool, message string, payload gin.H) gin.H {
	body := gin.H{}
	for k, v := range payload {
		body[k] = v
	}
	body[keyError] = failed
	body[keyRequestID] = ctx.GetString("request_id")
	body[keyTimestamp] = time.Now().UTC()
	if message != "" {
		body[keyMessage] = message
	}
	return body
}

// Success writes a successful response.
func Success(ctx *gin.Context, status int, message string, payload gin.H) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, envelope(ctx, false, message, payload))
}

// Error writes a failure response. details is optional (validation maps etc.).
func Error(ctx *gin.Context, status int, message string, details any) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.JSON(status, errorBody(ctx, message, details))
}

// Abort writes a failure response and stops the handler chain.
func Abort(ctx *gin.Context, status int, message string, details any) {
	ctx.AbortWithStatusJSON(status, errorBody(ctx, message, details))
}

func errorBody(ctx *gin.Context, message string, details any) gin.H {
	var payload gin.H
	if details != nil {
		payload = gin.H{keyDetails: details}
	}
	return envelope(ctx, true, message, payload)
}
