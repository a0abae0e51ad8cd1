package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// CacheControl marks responses as publicly cacheable for maxAgeSeconds.
func CacheControl(maxAgeSeconds int) gin.HandlerFunc {
	return cacheHeader(fmt.Sprintf("public, max-age=%d", maxAgeSeconds))
}

// Immutable is CacheControl for content whose URL never changes meaning,
// like uploaded media stored under random keys.
func Immutable(maxAgeSeconds int) gin.HandlerFunc {
	return cacheHeader(fmt.Sprintf("public, max-age=%d, immutable", maxAgeSeconds))
}

// NoStore keeps branch data (fees, attendance, guardians) out of shared caches.
func NoStore() gin.HandlerFunc {
	return cacheHeader("no-store")
}

func cacheHeader(value string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", value)
		c.Next()
	}
}
