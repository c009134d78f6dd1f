package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/smartwaste/smartwaste-backend/internal/infrastructure/i18n"
)

func setupTestI18n(t *testing.T) *i18n.Service {
	t.Helper()

	tmpDir := t.TempDir()

	files := map[string]string{
		"en.json": `{"welcome": "Welcome"}`,
		"it.json": `{"welcome": "Benvenuto"}`,
		"es.json": `{"welcome": "Bienvenido"}`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte(content), 0644); err != nil { //nolint:gosec
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}

	service, err := i18n.NewService(tmpDir, "en")
	if err != nil {
		t.Fatalf("failed to initialize i18n service: %v", err)
	}

	return service
}

func detect(t *testing.T, m *I18nMiddleware, target, acceptLang string) string {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest("GET", target, nil)
	if acceptLang != "" {
		req.Header.Set("Accept-Language", acceptLang)
	}
	c.Request = req

	m.DetectLanguage()(c)

	lang, exists := c.Get(LanguageContextKey)
	if !exists {
		t.Fatal("idioma não foi definido no contexto")
	}
	return lang.(string)
}

func TestI18nMiddleware_DetectLanguage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	middleware := NewI18nMiddleware(setupTestI18n(t))

	tests := []struct {
		name       string
		target     string
		acceptLang string
		expected   string
	}{
		{name: "query parameter", target: "/?lang=it", expected: "it"},
		{name: "Accept-Language header", target: "/", acceptLang: "es", expected: "es"},
		{name: "idioma padrão quando nenhum é especificado", target: "/", expected: "en"},
		{name: "query parameter tem prioridade sobre Accept-Language", target: "/?lang=it", acceptLang: "es", expected: "it"},
		{name: "ignora query parameter não suportado", target: "/?lang=fr", acceptLang: "es", expected: "es"},
		{name: "header sem correspondência usa o padrão", target: "/", acceptLang: "fr,de;q=0.9", expected: "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detect(t, middleware, tt.target, tt.acceptLang); got != tt.expected {
				t.Errorf("esperava '%s', obteve '%s'", tt.expected, got)
			}
		})
	}

	t.Run("define serviço i18n no contexto", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/", nil)

		middleware.DetectLanguage()(c)

		if service, exists := c.Get(I18nServiceContextKey); !exists || service == nil {
			t.Fatal("serviço i18n não foi definido no contexto")
		}
	})
}

func TestI18nMiddleware_parseAcceptLanguage(t *testing.T) {
	middleware := NewI18nMiddleware(setupTestI18n(t))

	tests := []struct {
		name       string
		acceptLang string
		expected   string
	}{
		{name: "idioma único suportado", acceptLang: "it", expected: "it"},
		{name: "região cai para o idioma base", acceptLang: "it-IT", expected: "it"},
		{name: "respeita os pesos", acceptLang: "es;q=0.5,it;q=0.9", expected: "it"},
		{name: "segundo idioma é suportado", acceptLang: "fr,it;q=0.9", expected: "it"},
		{name: "nenhum idioma suportado", acceptLang: "fr,de;q=0.9", expected: ""},
		{name: "header vazio", acceptLang: "", expected: ""},
		{name: "header malformado", acceptLang: ";;;", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := middleware.parseAcceptLanguage(tt.acceptLang); result != tt.expected {
				t.Errorf("esperava '%s', obteve '%s'", tt.expected, result)
			}
		})
	}
}

func TestI18nMiddleware_Integration(t *testing.T) {
	gin.SetMode(gin.TestMode)
	middleware := NewI18nMiddleware(setupTestI18n(t))

	router := gin.New()
	router.Use(middleware.DetectLanguage())
	router.GET("/test", func(c *gin.Context) {
		lang := c.GetString(LanguageContextKey)
		service := c.MustGet(I18nServiceContextKey).(*i18n.Service)
		c.String(http.StatusOK, service.T(lang, "welcome"))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Accept-Language", "it-IT,it;q=0.9,en;q=0.8")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("esperava status 200, obteve %d", w.Code)
	}
	if w.Body.String() != "Benvenuto" {
		t.Errorf("esperava 'Benvenuto', obteve '%s'", w.Body.String())
	}
}
