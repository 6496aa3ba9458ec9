package app

import (
	"net/http"

	"github.com/aki-lab/blog-core/internal/modules/blog"
	"github.com/aki-lab/blog-core/internal/modules/upload"
	"github.com/aki-lab/blog-core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(images *upload.Manager) {
	r := a.router

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Not found")
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	// Uploaded images are served read-only from the upload directory.
	r.Static(upload.PublicPrefix, images.Dir())

	api := r.Group("/api")
	api.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": "pong"})
	})

	blog.NewHandler(blog.NewService(a.db), images, a.logger).RegisterRoutes(api)
}
