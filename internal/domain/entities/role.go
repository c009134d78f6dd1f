package entities

// Role representa o papel de um usuário no sistema
type Role string

const (
	RoleUser     Role = "USER"
	RoleOperator Role = "OPERATOR"
)

// ParseRole mapeia o papel enviado pelo cliente; qualquer valor diferente de OPERATOR vira USER
func ParseRole(value string) Role {
	if Role(value) == RoleOperator {
		return RoleOperator
	}
	return RoleUser
}

// OAuthProvider identifica a origem da conta
type OAuthProvider string

const (
	ProviderApp    OAuthProvider = "APP"
	ProviderGoogle OAuthProvider = "GOOGLE"
	ProviderGitHub OAuthProvider = "GITHUB"
)
