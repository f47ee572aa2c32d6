package handlers

import (
	"encoding/json"
	"hash/fnv"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// RespondJSONWithETag writes the payload with an ETag and honours
// If-None-Match with a 304. Used for the course catalog, which rarely
// changes between deploys.
func RespondJSONWithETag(ctx *gin.Context, status int, payload interface{}) {
	etag, err := catalogETag(payload)

	if err != nil {
		ctx.JSON(status, payload)
		return
	}

	ctx.Header("ETag", etag)

	if clientHasCurrent(ctx.GetHeader("If-None-Match"), etag) {
		ctx.Status(http.StatusNotModified)
		return
	}

	ctx.JSON(status, payload)
}

// catalogETag hashes the marshalled payload. fnv is plenty here, the tag
// only needs to change when the content does.
func catalogETag(payload interface{}) (string, error) {
	b, err := json.Marshal(payload)

	if err != nil {
		return "", err
	}

	h := fnv.New64a()
	_, _ = h.Write(b)

	return `"` + strconv.FormatUint(h.Sum64(), 16) + `"`, nil
}

func clientHasCurrent(ifNoneMatch, currentETag string) bool {
	ifNoneMatch = strings.TrimSpace(ifNoneMatch)

	if ifNoneMatch == "" {
		return false
	}

	if ifNoneMatch == "*" {
		return true
	}

	want := stripWeakPrefix(currentETag)

	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		if stripWeakPrefix(candidate) == want {
			return true
		}
	}

	return false
}

func stripWeakPrefix(raw string) string {
	v := strings.TrimSpace(raw)

	// RFC 9110 allows weak validators like W/"abc"
	v = strings.TrimPrefix(v, "W/")

	return strings.TrimSpace(v)
}
