package api

import "net/http"

// IsAuthorOrReadOnly is the single write-permission rule of the API: safe
// methods are always allowed, unsafe methods only for the resource's author.
// It is checked per object; listings are never filtered by ownership.
func IsAuthorOrReadOnly(method, authorID, actingUserID string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return authorID != "" && authorID == actingUserID
}
