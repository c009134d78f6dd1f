package dto

import (
	"github.com/gin-gonic/gin"

	"github.com/smartwaste/smartwaste-backend/internal/handlers/middleware"
	"github.com/smartwaste/smartwaste-backend/internal/infrastructure/i18n"
)

// T traduz uma chave no idioma da requisição.
// Sem serviço i18n no contexto, ou sem tradução, a chave volta como está.
func T(c *gin.Context, key string, params ...map[string]interface{}) string {
	service, ok := c.Value(middleware.I18nServiceContextKey).(*i18n.Service)
	if !ok {
		return key
	}
	return service.T(Language(c), key, params...)
}

// Language retorna o idioma detectado pelo middleware, ou "en"
func Language(c *gin.Context) string {
	if lang, ok := c.Value(middleware.LanguageContextKey).(string); ok && lang != "" {
		return lang
	}
	return "en"
}
