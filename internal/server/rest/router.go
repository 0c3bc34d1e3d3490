package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
)

// NewRouter assembles the gin engine with logging, panic recovery, and all
// API routes.
func NewRouter(users UserProvider, tasks TaskProvider, logger logging.Logger) *gin.Engine {
	// release mode keeps gin's debug output out of the logs
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(RequestLogger(logger), gin.Recovery())

	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	newUserHandler(users).register(r)
	newTaskHandler(tasks).register(r, users)

	return r
}
