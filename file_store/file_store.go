package file_store

import (
	"github.com/pkg/errors"

	"github.com/feather-works/feather-backend/utils"
)

// FileStore persists binary attachments outside the relational store. The
// relational row only keeps the returned key.
type FileStore interface {
	// Store writes data under a content-derived key and returns the key.
	// Storing the same bytes twice yields the same key.
	Store(data []byte, fileName string) (key string, err error)
	// GetUrlFromKey turns a stored key into a client-facing URL.
	GetUrlFromKey(key string) string
	CleanUp()
}

// KeyFromContent derives the storage key for a blob: md5 of the content plus
// the original file extension, so re-uploads dedupe naturally.
func KeyFromContent(data []byte, fileName string) (string, error) {
	key, err := utils.TextToMd5Hash(string(data))
	if err != nil {
		return "", err
	}
	if len(key) == 0 {
		return "", errors.New("generate empty storage key, invalid")
	}
	return key + utils.GetUrlExtNameWithDot(fileName), nil
}
