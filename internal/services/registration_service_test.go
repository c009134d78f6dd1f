package services_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smartwaste/smartwaste-backend/internal/domain/entities"
	"github.com/smartwaste/smartwaste-backend/internal/domain/errors"
	"github.com/smartwaste/smartwaste-backend/internal/services"
)

var _ = Describe("RegistrationService", func() {
	var (
		ctx     context.Context
		env     *testEnv
		service *services.RegistrationService
	)

	BeforeEach(func() {
		ctx = context.Background()
		env = newTestEnv()
		service = services.NewRegistrationService(env.users, env.operators, env.provisioner, env.uow, env.logger)
	})

	Describe("Register", func() {
		It("registra um operador e rejeita o mesmo email uma segunda vez", func() {
			req := services.RegistrationRequest{
				Kind:     services.RegistrationCredentialed,
				Email:    "op@x.it",
				Password: "abcdefgh",
				Role:     "OPERATOR",
				Name:     "Org",
			}

			result, err := service.Submit(ctx, req)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Role).To(Equal(entities.RoleOperator))
			Expect(result.RedirectTo).To(Equal("/"))

			operator, err := env.operators.FindByUserID(ctx, result.UserID)
			Expect(err).NotTo(HaveOccurred())
			Expect(operator).NotTo(BeNil())
			Expect(operator.OrganizationName).To(Equal("Org"))
			Expect(operator.Telephone).To(BeEmpty())

			original, err := env.users.FindByEmail(ctx, "op@x.it")
			Expect(err).NotTo(HaveOccurred())

			req.Password = "another-password"
			req.Name = "Other"
			_, err = service.Submit(ctx, req)
			expectKind(err, errors.KindConflict, "error.email_already_exists")

			after, err := env.users.FindByEmail(ctx, "op@x.it")
			Expect(err).NotTo(HaveOccurred())
			Expect(after.ID).To(Equal(original.ID))
			Expect(*after.PasswordHash).To(Equal(*original.PasswordHash))
			Expect(after.Name).To(Equal("Org"))
		})

		It("registra um usuário com nome e sobrenome", func() {
			result, err := service.Register(ctx, services.RegistrationRequest{
				Email:    "mario@example.com",
				Password: "password123",
				Role:     "USER",
				Name:     "Mario",
				Surname:  "Rossi",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Role).To(Equal(entities.RoleUser))

			user, err := env.users.FindByID(ctx, result.UserID)
			Expect(err).NotTo(HaveOccurred())
			Expect(user.ProfileState(false)).To(Equal(entities.ProfileComplete))

			operator, err := env.operators.FindByUserID(ctx, result.UserID)
			Expect(err).NotTo(HaveOccurred())
			Expect(operator).To(BeNil())
		})

		It("trata papéis desconhecidos como USER", func() {
			result, err := service.Register(ctx, services.RegistrationRequest{
				Email:    "mario@example.com",
				Password: "password123",
				Role:     "ADMIN",
				Name:     "Mario",
				Surname:  "Rossi",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Role).To(Equal(entities.RoleUser))
		})

		DescribeTable("rejeita submissões incompletas ou inválidas sem gravar nada",
			func(req services.RegistrationRequest, message string) {
				_, err := service.Register(ctx, req)
				expectKind(err, errors.KindValidation, message)

				var count int64
				Expect(env.db.Table("users").Count(&count).Error).To(Succeed())
				Expect(count).To(BeZero())
			},
			Entry("sem papel", services.RegistrationRequest{Email: "a@b.it", Password: "password123"}, "error.missing_data"),
			Entry("sem senha", services.RegistrationRequest{Email: "a@b.it", Role: "USER"}, "error.missing_data"),
			Entry("usuário sem sobrenome", services.RegistrationRequest{Email: "a@b.it", Password: "password123", Role: "USER", Name: "Mario"}, "error.missing_user_data"),
			Entry("operador sem nome", services.RegistrationRequest{Email: "a@b.it", Password: "password123", Role: "OPERATOR"}, "error.missing_operator_data"),
			Entry("email inválido", services.RegistrationRequest{Email: "nope", Password: "password123", Role: "OPERATOR", Name: "Org"}, "Invalid email"),
			Entry("senha curta", services.RegistrationRequest{Email: "a@b.it", Password: "short", Role: "OPERATOR", Name: "Org"}, "Password must be more than 8 characters"),
			Entry("sobrenome curto", services.RegistrationRequest{Email: "a@b.it", Password: "password123", Role: "USER", Name: "Mario", Surname: "R"}, "Surname is too short"),
		)

		It("rejeita um discriminante desconhecido", func() {
			_, err := service.Submit(ctx, services.RegistrationRequest{Email: "a@b.it"})
			expectKind(err, errors.KindValidation, "error.missing_data")
		})
	})

	Describe("CompleteRegistration", func() {
		complete := func(email, role, name, surname string) (*services.RegistrationResult, error) {
			return service.Submit(ctx, services.RegistrationRequest{
				Kind:    services.RegistrationOAuthCompletion,
				Email:   email,
				Role:    role,
				Name:    name,
				Surname: surname,
			})
		}

		It("completa um perfil de usuário", func() {
			stub := env.oauthStub("stub@example.com")

			result, err := complete("stub@example.com", "USER", "Mario", "Rossi")
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Role).To(Equal(entities.RoleUser))
			Expect(result.RedirectTo).To(Equal("/"))

			user, err := env.users.FindByID(ctx, stub.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(user.Name).To(Equal("Mario"))
			Expect(*user.Surname).To(Equal("Rossi"))
			Expect(user.ProfileState(false)).To(Equal(entities.ProfileComplete))
		})

		It("promove a operador criando o perfil na mesma transação", func() {
			stub := env.oauthStub("stub@example.com")

			result, err := complete("stub@example.com", "OPERATOR", "Green Org", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Role).To(Equal(entities.RoleOperator))

			user, err := env.users.FindByID(ctx, stub.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(user.Role).To(Equal(entities.RoleOperator))

			operator, err := env.operators.FindByUserID(ctx, stub.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(operator.OrganizationName).To(Equal("Green Org"))
			Expect(operator.Telephone).To(BeEmpty())
		})

		It("exige email", func() {
			_, err := complete("  ", "USER", "Mario", "Rossi")
			expectKind(err, errors.KindValidation, "error.email_required")
		})

		It("rejeita usuário inexistente com VALIDATION", func() {
			_, err := complete("ghost@example.com", "USER", "Mario", "Rossi")
			expectKind(err, errors.KindValidation, "error.user_not_found")
		})

		It("rejeita perfil já completo de operador, qualquer que seja o payload", func() {
			env.registerOperator("op@example.com")

			for _, role := range []string{"USER", "OPERATOR", ""} {
				_, err := complete("op@example.com", role, "Mario", "Rossi")
				expectKind(err, errors.KindValidation, "error.profile_already_completed")
			}
		})

		It("rejeita perfil já completo de usuário", func() {
			env.oauthStub("stub@example.com")
			_, err := complete("stub@example.com", "USER", "Mario", "Rossi")
			Expect(err).NotTo(HaveOccurred())

			_, err = complete("stub@example.com", "OPERATOR", "Org", "")
			expectKind(err, errors.KindValidation, "error.profile_already_completed")

			operator, err := env.operators.FindByUserID(ctx, env.mustFindByEmail("stub@example.com").ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(operator).To(BeNil())
		})

		It("exige os campos do papel", func() {
			env.oauthStub("stub@example.com")

			_, err := complete("stub@example.com", "USER", "Mario", "")
			expectKind(err, errors.KindValidation, "error.missing_user_fields")

			_, err = complete("stub@example.com", "OPERATOR", "", "")
			expectKind(err, errors.KindValidation, "error.missing_operator_fields")
		})

		It("valida o schema antes de qualquer escrita", func() {
			stub := env.oauthStub("stub@example.com")

			_, err := complete("stub@example.com", "USER", "M", "Rossi")
			expectKind(err, errors.KindValidation, "Name is too short")

			user := env.mustFindByEmail("stub@example.com")
			Expect(user.ID).To(Equal(stub.ID))
			Expect(user.Name).To(BeEmpty())
		})

		It("desfaz o perfil de operador quando a gravação do papel falha", func() {
			stub := env.oauthStub("stub@example.com")
			service = services.NewRegistrationService(failingUsers{env.users}, env.operators, env.provisioner, env.uow, env.logger)

			_, err := complete("stub@example.com", "OPERATOR", "Green Org", "")
			expectKind(err, errors.KindInternal, "")

			operator, err := env.operators.FindByUserID(ctx, stub.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(operator).To(BeNil())
			Expect(env.mustFindByEmail("stub@example.com").Role).To(Equal(entities.RoleUser))
		})

		It("não promove o papel quando a criação do operador falha", func() {
			stub := env.oauthStub("stub@example.com")
			service = services.NewRegistrationService(env.users, failingOperators{env.operators}, env.provisioner, env.uow, env.logger)

			_, err := complete("stub@example.com", "OPERATOR", "Green Org", "")
			Expect(err).To(HaveOccurred())

			user, err := env.users.FindByID(ctx, stub.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(user.Role).To(Equal(entities.RoleUser))
		})

		It("desfaz nome e sobrenome quando a gravação do papel falha", func() {
			env.oauthStub("stub@example.com")
			service = services.NewRegistrationService(failingUsers{env.users}, env.operators, env.provisioner, env.uow, env.logger)

			_, err := complete("stub@example.com", "USER", "Mario", "Rossi")
			Expect(err).To(HaveOccurred())

			user := env.mustFindByEmail("stub@example.com")
			Expect(user.Name).To(BeEmpty())
			Expect(user.Surname).To(BeNil())
		})
	})
})

func (e *testEnv) mustFindByEmail(email string) *entities.User {
	GinkgoHelper()
	user, err := e.users.FindByEmail(context.Background(), email)
	Expect(err).NotTo(HaveOccurred())
	Expect(user).NotTo(BeNil())
	return user
}
