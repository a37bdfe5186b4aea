package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParseID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	c.Params = gin.Params{{Key: "id", Value: "1b4e28ba-2fa1-11d2-883f-0016d3cca427"}}
	id, ok := ParseID(c, "id")
	assert.True(t, ok)
	assert.Equal(t, "1b4e28ba-2fa1-11d2-883f-0016d3cca427", id.String())

	c.Params = gin.Params{{Key: "id", Value: "42"}}
	_, ok = ParseID(c, "id")
	assert.False(t, ok)
}

func TestHTTPStatusText(t *testing.T) {
	assert.Equal(t, "Not Found", HTTPStatusText(http.StatusNotFound))
}
