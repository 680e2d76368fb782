// Command proxy is the CORS reverse proxy the static configuration UI uses
// to reach the booking API from the browser. It forwards /api/* to the
// configured target, optionally guarded by an X-Proxy-Token header.
package main

import (
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tennis-watch/logger"
)

func main() {
	log := logger.New()

	target := os.Getenv("PROXY_TARGET_URL")
	if target == "" {
		log.Error("PROXY_TARGET_URL not set")
		os.Exit(1)
	}
	target = strings.TrimRight(target, "/")
	token := os.Getenv("PROXY_TOKEN")

	upstream := &http.Client{Timeout: 30 * time.Second}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "Authorization", "X-Proxy-Token"},
		MaxAge:          24 * time.Hour,
	}))

	r.Any("/api/*path", func(c *gin.Context) {
		if token != "" && c.GetHeader("X-Proxy-Token") != token {
			log.Warn("unauthorized request, missing or invalid X-Proxy-Token")
			c.String(http.StatusForbidden, "Forbidden: Invalid or missing X-Proxy-Token")
			return
		}

		targetURL := target + c.Param("path")
		if raw := c.Request.URL.RawQuery; raw != "" {
			targetURL += "?" + raw
		}
		log.Info("proxying request", "method", c.Request.Method, "target", targetURL)

		req, err := http.NewRequest(c.Request.Method, targetURL, c.Request.Body)
		if err != nil {
			c.String(http.StatusBadGateway, "Error proxying request: %v", err)
			return
		}
		for _, h := range []string{"Content-Type", "Authorization"} {
			if v := c.GetHeader(h); v != "" {
				req.Header.Set(h, v)
			}
		}

		resp, err := upstream.Do(req)
		if err != nil {
			log.Error("upstream request failed", "target", targetURL, "error", err.Error())
			c.String(http.StatusBadGateway, "Error proxying request: %v", err)
			return
		}
		defer resp.Body.Close()

		c.Status(resp.StatusCode)
		if ct := resp.Header.Get("Content-Type"); ct != "" {
			c.Header("Content-Type", ct)
		}
		io.Copy(c.Writer, resp.Body)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Error("proxy server failed", "error", err.Error())
		os.Exit(1)
	}
}
