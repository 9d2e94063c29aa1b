package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "crm-admin.backend/internal/domain/errors"
	"crm-admin.backend/pkg/utils"
)

// Envelope status values
const (
	StatusSuccess = "Success"
	StatusError   = "Error"
)

// Envelope wraps every response body
type Envelope struct {
	Status     string      `json:"status"`
	StatusCode int         `json:"status_code"`
	Data       interface{} `json:"data"`
	Error      *ErrorBody  `json:"error"`
}

// ErrorBody describes a failed request
type ErrorBody struct {
	StatusCode int    `json:"status_code"`
	Status     string `json:"status"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

// PageBody is the data of a paginated listing
type PageBody struct {
	Items interface{}          `json:"items"`
	Meta  utils.PaginationMeta `json:"meta"`
}

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Envelope{
		Status:     StatusSuccess,
		StatusCode: status,
		Data:       data,
	})
}

// Message sends a success response whose data is a single message
func Message(c *gin.Context, status int, message string) {
	Success(c, status, gin.H{"message": message})
}

// Paginated sends one page of a listing
func Paginated(c *gin.Context, items interface{}, meta utils.PaginationMeta) {
	Success(c, http.StatusOK, PageBody{Items: items, Meta: meta})
}

// Error sends an error response. Errors outside the domain taxonomy become 500.
func Error(c *gin.Context, err error) {
	appErr := domainerrors.FromError(err)
	if appErr == nil {
		appErr = domainerrors.InternalError(nil)
	}
	ErrorWithError(c, appErr.Status, appErr.Code, appErr.Message)
}

// ErrorWithError sends an error response with a specific status and message
func ErrorWithError(c *gin.Context, status int, code string, message string) {
	c.JSON(status, Envelope{
		Status:     StatusError,
		StatusCode: status,
		Error: &ErrorBody{
			StatusCode: status,
			Status:     StatusError,
			Code:       code,
			Message:    message,
		},
	})
}

// Abort sends an error response and stops the handler chain
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
