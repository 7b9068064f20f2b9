package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormBool(t *testing.T) {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		if formBool(c, "flag") {
			return c.SendString("yes")
		}
		return c.SendString("no")
	})

	tests := map[string]bool{
		"on":    true,
		"ON":    true,
		"true":  true,
		"1":     true,
		"off":   false,
		"false": false,
		"":      false,
		"maybe": false,
	}
	for value, want := range tests {
		form := url.Values{"flag": {value}}
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)
		expected := "no"
		if want {
			expected = "yes"
		}
		assert.Equal(t, expected, string(body), value)
	}
}
