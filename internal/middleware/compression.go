package middleware

import (
	"compress/gzip"
	"fmt"

	gingzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// DefaultGzipLevel lets compress/gzip pick its default trade-off.
const DefaultGzipLevel = gzip.DefaultCompression

// uncompressedPaths are served as is: promhttp negotiates its own encoding
// and probes are tiny.
var uncompressedPaths = []string{"/metrics", "/healthz", "/readyz"}

// ValidateGzipLevel accepts 0 (off), DefaultCompression, HuffmanOnly and 1-9.
func ValidateGzipLevel(level int) error {
	if level < gzip.HuffmanOnly || level > gzip.BestCompression {
		return fmt.Errorf("gzip level %d out of range [%d, %d]", level, gzip.HuffmanOnly, gzip.BestCompression)
	}
	return nil
}

// Compression gzips responses at level for clients that accept it.
// Level 0 turns compression off.
func Compression(level int) gin.HandlerFunc {
	if level == gzip.NoCompression {
		return func(c *gin.Context) { c.Next() }
	}
	return gingzip.Gzip(level, gingzip.WithExcludedPaths(uncompressedPaths))
}
