package api

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/feather-works/feather-backend/file_store"
)

// bindJSONFields decodes the request body into raw fields so handlers can
// tell an absent field from an explicit null. PATCH semantics depend on that
// distinction. Returns false after writing a 400 on malformed JSON.
func bindJSONFields(c *gin.Context) (map[string]json.RawMessage, bool) {
	fields := map[string]json.RawMessage{}
	if c.Request.Body == nil {
		abortMalformedBody(c)
		return nil, false
	}
	if err := json.NewDecoder(c.Request.Body).Decode(&fields); err != nil {
		abortMalformedBody(c)
		return nil, false
	}
	return fields, true
}

// stringField unmarshals a raw field into an optional string. The error is
// a type mismatch (number, object, ...), not an absent value.
func stringField(raw json.RawMessage) (*string, error) {
	var value *string
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, err
	}
	return value, nil
}

// imageExtensions maps the media types accepted in data URLs to their file
// extension for storage-key purposes.
var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// storeImage decodes a base64 image payload (raw base64 or a data URL) and
// persists it in the file store, returning the storage key.
func storeImage(images file_store.FileStore, payload string) (string, error) {
	fileName := "upload"
	if strings.HasPrefix(payload, "data:") {
		parts := strings.SplitN(payload, ",", 2)
		if len(parts) != 2 {
			return "", errors.New("malformed data url")
		}
		meta := strings.TrimPrefix(parts[0], "data:")
		payload = parts[1]
		for mediaType, ext := range imageExtensions {
			if strings.HasPrefix(meta, mediaType) {
				fileName += ext
				break
			}
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", errors.Wrap(err, "invalid base64 payload")
	}
	if len(data) == 0 {
		return "", errors.New("empty image payload")
	}
	return images.Store(data, fileName)
}
