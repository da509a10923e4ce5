package utils

import (
	"crypto/md5"
	"fmt"
	"path"
	"strings"
)

// TextToMd5Hash returns the hex md5 digest of text.
func TextToMd5Hash(text string) (string, error) {
	h := md5.New()
	if _, err := h.Write([]byte(text)); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// GetUrlExtNameWithDot extracts the file extension (including the leading
// dot) from a url or file name, ignoring any query string.
func GetUrlExtNameWithDot(url string) string {
	if idx := strings.IndexAny(url, "?#"); idx >= 0 {
		url = url[:idx]
	}
	return path.Ext(url)
}
