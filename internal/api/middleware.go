package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/zeebo/xxh3"
)

const (
	headerETag        = "ETag"
	headerIfNoneMatch = "If-None-Match"
)

// requireData answers 503 until the dataset is published and stores it in
// the context so a request sees one dataset from start to finish.
func (h *Handler) requireData(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ds := h.data.Load()
		if ds == nil {
			c.Response().Header().Set(echo.HeaderRetryAfter, "5")
			return c.JSON(http.StatusServiceUnavailable, errorBody{Error: "dataset is loading", Kind: "loading"})
		}
		c.Set(datasetKey, ds)
		return next(c)
	}
}

// etag tags successful responses with the dataset fingerprint and query.
// The data is immutable so an equal tag means an equal body.
func (h *Handler) etag(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ds := dataset(c)
		req := c.Request()
		tag := `"` + ds.FingerprintHex() + "-" + strconv.FormatUint(xxh3.HashString(req.URL.Path+"?"+req.URL.RawQuery), 16) + `"`

		if etagMatches(req.Header.Get(headerIfNoneMatch), tag) {
			c.Response().Header().Set(headerETag, tag)
			return c.NoContent(http.StatusNotModified)
		}
		res := c.Response()
		res.Before(func() {
			if res.Status >= 200 && res.Status < 300 {
				res.Header().Set(headerETag, tag)
			}
		})
		return next(c)
	}
}

// etagMatches applies If-None-Match weak comparison: a list of tags, each
// optionally W/-prefixed, or "*".
func etagMatches(header, tag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == tag {
			return true
		}
	}
	return false
}
