package server

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
)

const maxRequestBody = 64 * 1024

// -----------------------------------------------------------------------------

// readTicker pulls "ticker" out of a JSON body. A missing body, malformed JSON
// or a non-string ticker all come back as an error.
func readTicker(c *gin.Context) (string, error) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxRequestBody))
	if err != nil {
		return "", err
	}

	var data map[string]interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return "", err
	}
	return safeString(data, "ticker")
}

// -----------------------------------------------------------------------------

func safeString(data map[string]interface{}, key string) (string, error) {
	val, ok := data[key]
	if !ok {
		return "", fmt.Errorf("missing %q", key)
	}
	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%q must be a string, got %T", key, val)
	}
	return s, nil
}
