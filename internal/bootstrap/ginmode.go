package bootstrap

import "github.com/gin-gonic/gin"

// SetGinMode keeps gin's debug output for local development only.
func SetGinMode(env string) {
	switch env {
	case "development":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}
}
