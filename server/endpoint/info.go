package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/pronounce/version"
)

var startTime = time.Now()

// Info reports build information, the feature schema models must match,
// and uptime.
func Info(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v := version.GetVersionInfo()
		c.JSON(http.StatusOK, gin.H{
			"service":        serviceName,
			"version":        v.Version,
			"git_commit":     v.GitCommit,
			"build_time":     v.BuildTime,
			"go_version":     v.GoVersion,
			"feature_schema": v.FeatureSchema,
			"is_release":     v.IsRelease,
			"is_dirty":       v.IsDirty,
			"uptime":         time.Since(startTime).Round(time.Second).String(),
			"timestamp":      time.Now().UTC().Format(time.RFC3339),
		})
	}
}
