package handlers

import (
	"feedesk/internal/middleware"

	"github.com/gin-gonic/gin"
)

// render wraps c.HTML and passes the signed-in user to every template.
func render(c *gin.Context, status int, tmpl string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if u := middleware.CurrentUser(c); u != nil {
		data["CurrentUser"] = u
	}
	c.HTML(status, tmpl, data)
}
