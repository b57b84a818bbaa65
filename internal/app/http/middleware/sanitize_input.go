package middleware

import (
	"bytes"
	"encoding/json"
	"html"
	"io"
	"net/http"

	"locallibrary/internal/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// SanitizeAndCleanInputMiddleware strips markup from every string in a JSON
// request body, including strings nested in objects and arrays.
func SanitizeAndCleanInputMiddleware(log *logger.Logger) gin.HandlerFunc {
	policy := bluemonday.StrictPolicy()

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		buf, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
			return
		}
		if len(bytes.TrimSpace(buf)) == 0 {
			c.Request.Body = io.NopCloser(bytes.NewReader(buf))
			c.Next()
			return
		}

		var body interface{}
		dec := json.NewDecoder(bytes.NewReader(buf))
		dec.UseNumber()
		if err := dec.Decode(&body); err != nil {
			log.Debug("Rejected malformed JSON", "path", c.Request.URL.Path, "error", err)
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON"})
			return
		}

		newBody, err := json.Marshal(sanitizeValue(policy, body))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(newBody))
		c.Request.ContentLength = int64(len(newBody))

		c.Next()
	}
}

// maxSanitizePasses bounds cleanString on pathological nesting of entities.
const maxSanitizePasses = 8

// sanitizeValue cleans strings in v, recursing into objects and arrays.
func sanitizeValue(policy *bluemonday.Policy, v interface{}) interface{} {
	switch t := v.(type) {
	case string:
		return cleanString(policy, t)
	case map[string]interface{}:
		for k, item := range t {
			t[k] = sanitizeValue(policy, item)
		}
		return t
	case []interface{}:
		for i, item := range t {
			t[i] = sanitizeValue(policy, item)
		}
		return t
	}
	return v
}

// cleanString strips markup and returns plain text. The policy escapes
// entities, so its output is unescaped and cleaned again until stable;
// entity-encoded tags such as "&lt;script&gt;" are decoded and then removed.
func cleanString(policy *bluemonday.Policy, s string) string {
	for i := 0; i < maxSanitizePasses; i++ {
		next := html.UnescapeString(policy.Sanitize(s))
		if next == s {
			return s
		}
		s = next
	}
	return policy.Sanitize(s)
}
