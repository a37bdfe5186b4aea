package helpers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	NotFoundPage    = "404.html"
	ServerErrorPage = "500.html"
)

func HTTPStatusText(code int) string {
	return http.StatusText(code)
}

// RespondWithError renders the error page for statusCode and stops the
// handler chain. customMessage is shown to the user, so it must never carry
// raw store errors.
func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	page := ServerErrorPage
	if statusCode == http.StatusNotFound {
		page = NotFoundPage
	}
	if customMessage == "" {
		customMessage = HTTPStatusText(statusCode)
	}
	c.HTML(statusCode, page, gin.H{
		"status":  statusCode,
		"message": customMessage,
	})
	c.Abort()
}
