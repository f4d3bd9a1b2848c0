package loggingmw

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/pkg/logging"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	base := logging.NewWithWriter("info", &buf)

	e := echo.New()
	e.Use(RequestLogger(base, "/quiet"))
	e.GET("/ok", func(c echo.Context) error {
		logging.FromContext(c.Request().Context()).Info("inside")
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/missing", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "nope")
	})
	e.GET("/quiet", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for _, p := range []string{"/ok", "/missing", "/quiet"} {
		req := httptest.NewRequest(http.MethodGet, p, nil)
		req.Header.Set(echo.HeaderXRequestID, "rid-1")
		e.ServeHTTP(httptest.NewRecorder(), req)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	var inside, okLine, missLine map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &inside))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &okLine))
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &missLine))

	assert.Equal(t, "inside", inside["msg"])
	assert.Equal(t, "rid-1", inside["request_id"])
	assert.Equal(t, "/ok", inside["path"])

	assert.Equal(t, "INFO", okLine["level"])
	assert.EqualValues(t, 200, okLine["status"])

	assert.Equal(t, "WARN", missLine["level"])
	assert.EqualValues(t, 404, missLine["status"])
}
