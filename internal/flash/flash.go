// Package flash carries one-time notifications across a redirect. A message
// added while handling one request is shown by the next page rendered for the
// same browser and then discarded.
package flash

import (
	"encoding/gob"

	"github.com/gin-gonic/gin"
)

const (
	LevelSuccess = "success"
	LevelError   = "danger"
)

type Message struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

func init() {
	// session values are gob encoded by both backends
	gob.Register(Message{})
}

func Success(text string) Message { return Message{Level: LevelSuccess, Text: text} }

func Error(text string) Message { return Message{Level: LevelError, Text: text} }

// Store persists pending messages between requests.
type Store interface {
	// Add queues msg for the next page view.
	Add(c *gin.Context, msg Message) error
	// Pop returns and forgets every queued message.
	Pop(c *gin.Context) ([]Message, error)
}
