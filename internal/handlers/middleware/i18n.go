package middleware

import (
	"sort"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/smartwaste/smartwaste-backend/internal/infrastructure/i18n"
)

const (
	// LanguageContextKey é a chave usada para armazenar o idioma no contexto do Gin
	LanguageContextKey = "language"
	// I18nServiceContextKey é a chave usada para armazenar o serviço i18n no contexto
	I18nServiceContextKey = "i18n_service"
)

// I18nMiddleware escolhe o idioma da resposta entre os locales carregados
type I18nMiddleware struct {
	i18nService *i18n.Service
	languages   []string
	matcher     language.Matcher
}

// NewI18nMiddleware cria o middleware; o idioma padrão é sempre o primeiro candidato
func NewI18nMiddleware(i18nService *i18n.Service) *I18nMiddleware {
	def := i18nService.GetDefaultLanguage()

	others := make([]string, 0)
	for _, lang := range i18nService.GetSupportedLanguages() {
		if lang != def {
			others = append(others, lang)
		}
	}
	sort.Strings(others)
	languages := append([]string{def}, others...)

	tags := make([]language.Tag, len(languages))
	for i, lang := range languages {
		tags[i] = language.Make(lang)
	}

	return &I18nMiddleware{
		i18nService: i18nService,
		languages:   languages,
		matcher:     language.NewMatcher(tags),
	}
}

// DetectLanguage detecta e configura o idioma da requisição.
// Prioridade: ?lang= suportado, depois Accept-Language, depois o idioma padrão.
func (m *I18nMiddleware) DetectLanguage() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.Query("lang")
		if !m.i18nService.IsLanguageSupported(lang) {
			lang = m.parseAcceptLanguage(c.GetHeader("Accept-Language"))
		}
		if lang == "" {
			lang = m.i18nService.GetDefaultLanguage()
		}

		c.Set(LanguageContextKey, lang)
		c.Set(I18nServiceContextKey, m.i18nService)

		c.Next()
	}
}

// parseAcceptLanguage devolve o locale suportado mais próximo do header, respeitando os pesos q.
// Exemplo: "it-IT,it;q=0.9,en;q=0.8" -> "it". Sem correspondência devolve "".
func (m *I18nMiddleware) parseAcceptLanguage(acceptLang string) string {
	if acceptLang == "" {
		return ""
	}

	prefs, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(prefs) == 0 {
		return ""
	}

	_, idx, confidence := m.matcher.Match(prefs...)
	if confidence == language.No {
		return ""
	}
	return m.languages[idx]
}
