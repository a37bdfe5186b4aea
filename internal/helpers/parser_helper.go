package helpers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ParseID reads the uuid path parameter name. Malformed ids are reported as
// missing so callers answer them with the 404 page.
func ParseID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
