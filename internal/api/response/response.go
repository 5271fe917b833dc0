// Package response holds the small set of response shapes the handlers
// share: inline HTML fragments for the form endpoints and the plain
// not-found reply of the item endpoints.
package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

const htmlContentType = "text/html; charset=utf-8"

// Fragment writes a raw HTML fragment with HTTP 200.
func Fragment(c *gin.Context, html string) {
	c.Data(http.StatusOK, htmlContentType, []byte(html))
}

// ErrorFragment writes an inline error fragment. Form failures are reported
// this way with HTTP 200; the surrounding page swaps the fragment in.
func ErrorFragment(c *gin.Context, elementID, message string) {
	Fragment(c, fmt.Sprintf(`<div id=%q class="error-message">❌ %s</div>`, elementID, message))
}

// SuccessFragment writes a success fragment that redirects the browser
// after a short pause.
func SuccessFragment(c *gin.Context, message, redirectURL string) {
	Fragment(c, fmt.Sprintf(
		`<div class="success-message">✅ %s</div><script>setTimeout(() => window.location.href = %q, 1000);</script>`,
		message, redirectURL))
}

// NotFound writes the uniform not-found reply used for missing and foreign
// items alike.
func NotFound(c *gin.Context) {
	c.String(http.StatusNotFound, "Item not found")
}
