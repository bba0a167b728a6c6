package i18n

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalizer_T(t *testing.T) {
	t.Run("hebrew is the default", func(t *testing.T) {
		assert.Equal(t, "נכשל בקריאת נתוני כרטיס", T("callback.card_data_unreadable"))
	})

	t.Run("english catalog", func(t *testing.T) {
		l := NewLocalizer(LocaleEnglish)
		assert.Equal(t, "Failed to read card data", l.T("callback.card_data_unreadable"))
	})

	t.Run("unknown locale falls back to default", func(t *testing.T) {
		l := NewLocalizer("de")
		assert.Equal(t, DefaultLocale, l.GetLocale())
	})

	t.Run("params are interpolated", func(t *testing.T) {
		l := NewLocalizer(LocaleEnglish)
		assert.Equal(t, "employee not found", l.T("errors.not_found", map[string]string{"resource": "employee"}))
	})

	t.Run("missing key returns key", func(t *testing.T) {
		assert.Equal(t, "callback.nope", T("callback.nope"))
	})
}

func TestParseAcceptLanguage(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", LocaleHebrew},
		{"he-IL,he;q=0.9", LocaleHebrew},
		{"en-US,en;q=0.9", LocaleEnglish},
		{"EN", LocaleEnglish},
		{"fr-FR,en;q=0.5", LocaleHebrew},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAcceptLanguage(tt.header))
		})
	}
}

func TestMiddleware(t *testing.T) {
	var got string
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetLocaleFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, LocaleEnglish, got)
	assert.Equal(t, DefaultLocale, GetLocaleFromContext(context.Background()))
}
