package middleware

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ridloal/retail-pos-backend/internal/platform/logger"
)

const maxLogLineLength = 80

type bodyCaptureWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// RequestLogger mencatat setiap request /api beserta durasi dan potongan response body.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.Next()
			return
		}

		start := time.Now()
		bw := &bodyCaptureWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = bw

		c.Next()

		duration := time.Since(start)
		logLine := fmt.Sprintf("%s %s %d in %dms", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), duration.Milliseconds())
		if bw.body.Len() > 0 {
			logLine += " :: " + bw.body.String()
		}
		if len(logLine) > maxLogLineLength {
			logLine = logLine[:maxLogLineLength-1] + "…"
		}
		logger.Info("%s", logLine)
	}
}
