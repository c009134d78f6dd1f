package services_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smartwaste/smartwaste-backend/internal/domain/entities"
	"github.com/smartwaste/smartwaste-backend/internal/domain/errors"
	"github.com/smartwaste/smartwaste-backend/internal/domain/ports"
	"github.com/smartwaste/smartwaste-backend/internal/services"
)

var _ = Describe("CredentialVerifier", func() {
	var (
		ctx      context.Context
		env      *testEnv
		verifier *services.CredentialVerifier
	)

	BeforeEach(func() {
		ctx = context.Background()
		env = newTestEnv()
		verifier = services.NewCredentialVerifier(env.users, env.hasher)
	})

	It("devolve a identidade mínima quando a senha confere", func() {
		user := env.registerOperator("op@example.com")

		identity, err := verifier.Verify(ctx, "op@example.com", "password123")
		Expect(err).NotTo(HaveOccurred())
		Expect(identity).To(Equal(&entities.Identity{ID: user.ID, Email: "op@example.com", Role: entities.RoleOperator}))
	})

	It("não distingue email desconhecido, conta sem senha e senha errada", func() {
		env.registerOperator("op@example.com")
		env.oauthStub("stub@example.com")

		for _, tc := range [][2]string{
			{"ghost@example.com", "password123"},
			{"stub@example.com", "password123"},
			{"op@example.com", "wrong-password"},
		} {
			identity, err := verifier.Verify(ctx, tc[0], tc[1])
			Expect(err).NotTo(HaveOccurred())
			Expect(identity).To(BeNil())
		}
	})
})

var _ = Describe("AuthService", func() {
	var (
		ctx     context.Context
		env     *testEnv
		service *services.AuthService
	)

	BeforeEach(func() {
		ctx = context.Background()
		env = newTestEnv()
		service = services.NewAuthService(
			services.NewCredentialVerifier(env.users, env.hasher),
			env.provisioner,
			env.users,
			env.operators,
			env.tokens,
			env.logger,
		)
	})

	Describe("Login", func() {
		It("emite um token para credenciais válidas", func() {
			user := env.registerOperator("op@example.com")

			session, err := service.Login(ctx, "op@example.com", "password123")
			Expect(err).NotTo(HaveOccurred())
			Expect(session.ProfileComplete).To(BeTrue())
			Expect(session.RedirectTo).To(Equal("/"))

			identity, err := env.tokens.Parse(session.Token)
			Expect(err).NotTo(HaveOccurred())
			Expect(identity.ID).To(Equal(user.ID))
			Expect(identity.Role).To(Equal(entities.RoleOperator))
		})

		It("rejeita senha errada e email desconhecido do mesmo jeito", func() {
			env.registerOperator("op@example.com")

			_, err := service.Login(ctx, "op@example.com", "wrong-password")
			expectKind(err, errors.KindUnauthenticated, "error.invalid_credentials")

			_, err = service.Login(ctx, "ghost@example.com", "password123")
			expectKind(err, errors.KindUnauthenticated, "error.invalid_credentials")
		})

		It("valida o schema de login", func() {
			_, err := service.Login(ctx, "not-an-email", "password123")
			expectKind(err, errors.KindValidation, "Invalid email")
		})
	})

	Describe("OAuthSignIn", func() {
		profile := func(email, accountID string) *ports.OAuthProfile {
			return &ports.OAuthProfile{
				Provider:  entities.ProviderGitHub,
				AccountID: accountID,
				Email:     email,
				Name:      "octocat",
			}
		}

		It("cria uma conta OAUTH_STUB no primeiro acesso", func() {
			session, err := service.OAuthSignIn(ctx, profile("new@example.com", "42"))
			Expect(err).NotTo(HaveOccurred())
			Expect(session.ProfileComplete).To(BeFalse())
			Expect(session.RedirectTo).To(Equal(services.CompleteProfilePath))

			user := env.mustFindByEmail("new@example.com")
			Expect(user.Name).To(BeEmpty())
			Expect(user.HasPassword()).To(BeFalse())
			Expect(user.OAuthProvider).To(Equal(entities.ProviderGitHub))
			Expect(user.Role).To(Equal(entities.RoleUser))

			account, err := env.accounts.FindByProvider(ctx, "github", "42")
			Expect(err).NotTo(HaveOccurred())
			Expect(account.UserID).To(Equal(user.ID))
			Expect(account.Type).To(Equal("oauth"))
		})

		It("reutiliza o usuário nos acessos seguintes", func() {
			first, err := service.OAuthSignIn(ctx, profile("new@example.com", "42"))
			Expect(err).NotTo(HaveOccurred())
			second, err := service.OAuthSignIn(ctx, profile("new@example.com", "42"))
			Expect(err).NotTo(HaveOccurred())
			Expect(second.Identity.ID).To(Equal(first.Identity.ID))

			var count int64
			Expect(env.db.Table("accounts").Count(&count).Error).To(Succeed())
			Expect(count).To(Equal(int64(1)))
		})

		It("liga a conta externa a um usuário por credenciais existente", func() {
			user := env.registerOperator("op@example.com")

			session, err := service.OAuthSignIn(ctx, profile("op@example.com", "7"))
			Expect(err).NotTo(HaveOccurred())
			Expect(session.Identity.ID).To(Equal(user.ID))
			Expect(session.ProfileComplete).To(BeTrue())

			account, err := env.accounts.FindByProvider(ctx, "github", "7")
			Expect(err).NotTo(HaveOccurred())
			Expect(account).NotTo(BeNil())
			Expect(account.UserID).To(Equal(user.ID))
		})

		It("recusa a conta externa já ligada a outro usuário existente", func() {
			first, err := service.OAuthSignIn(ctx, profile("first@example.com", "99"))
			Expect(err).NotTo(HaveOccurred())
			env.registerOperator("op@example.com")

			_, err = service.OAuthSignIn(ctx, profile("op@example.com", "99"))
			expectKind(err, errors.KindConflict, "error.account_already_linked")

			account, err := env.accounts.FindByProvider(ctx, "github", "99")
			Expect(err).NotTo(HaveOccurred())
			Expect(account.UserID).To(Equal(first.Identity.ID))
		})

		It("recusa criar usuário novo para conta externa já ligada", func() {
			_, err := service.OAuthSignIn(ctx, profile("first@example.com", "99"))
			Expect(err).NotTo(HaveOccurred())

			_, err = service.OAuthSignIn(ctx, profile("renamed@example.com", "99"))
			expectKind(err, errors.KindConflict, "error.account_already_linked")
			// a transação desfaz o usuário criado antes da conta
			user, err := env.users.FindByEmail(ctx, "renamed@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(user).To(BeNil())
		})
	})
})
