package dto

import (
	"github.com/gin-gonic/gin"
	"github.com/moogar0880/problems"
)

// ProblemContentType é o media type das respostas de erro (RFC 7807)
const ProblemContentType = "application/problem+json"

// ErrorResponse segue RFC 7807 (Problem Details for HTTP APIs).
// Error repete o detalhe traduzido no formato {error} esperado pelos clientes existentes.
type ErrorResponse struct {
	*problems.Problem
	Error  string            `json:"error"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError representa um erro de validação de campo
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
}

// NewErrorResponse cria uma resposta de erro; titleKey é traduzido, detail já vem traduzido
func NewErrorResponse(c *gin.Context, problemType, titleKey string, status int, detail string) ErrorResponse {
	baseURL := c.GetString("base_url")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	problem := problems.NewDetailedProblem(status, detail)
	problem.Type = baseURL + problemType
	problem.Title = T(c, titleKey)
	problem.Instance = c.Request.URL.Path

	return ErrorResponse{
		Problem: problem,
		Error:   detail,
	}
}

// AbortWithProblem escreve a resposta de erro com o Content-Type de problem details
func AbortWithProblem(c *gin.Context, response ErrorResponse) {
	c.Header("Content-Type", ProblemContentType)
	c.AbortWithStatusJSON(response.Status, response)
}

// SuccessResponse é o corpo {success: true} das remoções
type SuccessResponse struct {
	Success bool `json:"success"`
}

// MessageResponse é o corpo {message} das operações sem recurso de retorno
type MessageResponse struct {
	Message string `json:"message"`
}
