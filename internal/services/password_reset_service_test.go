package services_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smartwaste/smartwaste-backend/internal/domain/errors"
	"github.com/smartwaste/smartwaste-backend/internal/infrastructure/auth"
	"github.com/smartwaste/smartwaste-backend/internal/services"
)

var _ = Describe("PasswordResetService", func() {
	var (
		ctx     context.Context
		env     *testEnv
		mailer  *fakeMailer
		now     time.Time
		service *services.PasswordResetService
	)

	BeforeEach(func() {
		ctx = context.Background()
		env = newTestEnv()
		mailer = &fakeMailer{}
		now = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
		service = services.NewPasswordResetService(
			env.users,
			env.hasher,
			fixedTokens{raw: "abc123"},
			mailer,
			"http://app.test/",
			env.logger,
		).WithClock(func() time.Time { return now })
	})

	Describe("Forgot", func() {
		It("grava o hash do token com validade de uma hora e envia o link", func() {
			user := env.registerOperator("op@example.com")

			Expect(service.Forgot(ctx, "op@example.com")).To(Succeed())

			Expect(mailer.sent).To(HaveLen(1))
			Expect(mailer.sent[0].to).To(Equal("op@example.com"))
			Expect(mailer.sent[0].resetURL).To(Equal("http://app.test/reset-password?token=abc123"))

			stored, err := env.users.FindByID(ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(*stored.ResetTokenHash).To(Equal(auth.HashToken("abc123")))
			Expect(stored.ResetTokenExpiry.Equal(now.Add(time.Hour))).To(BeTrue())
		})

		It("responde igual para email desconhecido e conta sem senha", func() {
			env.oauthStub("stub@example.com")

			Expect(service.Forgot(ctx, "ghost@example.com")).To(Succeed())
			Expect(service.Forgot(ctx, "stub@example.com")).To(Succeed())
			Expect(service.Forgot(ctx, "")).To(Succeed())
			Expect(mailer.count()).To(BeZero())
		})

		It("não expõe falhas de envio", func() {
			env.registerOperator("op@example.com")
			mailer.err = errBoom

			Expect(service.Forgot(ctx, "op@example.com")).To(Succeed())
			Expect(mailer.count()).To(Equal(1))
		})
	})

	Describe("Reset", func() {
		BeforeEach(func() {
			env.registerOperator("op@example.com")
			Expect(service.Forgot(ctx, "op@example.com")).To(Succeed())
		})

		It("troca a senha e invalida o token", func() {
			Expect(service.Reset(ctx, "abc123", "new-password")).To(Succeed())

			verifier := services.NewCredentialVerifier(env.users, env.hasher)
			identity, err := verifier.Verify(ctx, "op@example.com", "new-password")
			Expect(err).NotTo(HaveOccurred())
			Expect(identity).NotTo(BeNil())

			user := env.mustFindByEmail("op@example.com")
			Expect(user.ResetTokenHash).To(BeNil())

			err = service.Reset(ctx, "abc123", "another-password")
			expectKind(err, errors.KindValidation, "error.invalid_reset_token")
		})

		It("rejeita token expirado", func() {
			now = now.Add(2 * time.Hour)
			err := service.Reset(ctx, "abc123", "new-password")
			expectKind(err, errors.KindValidation, "error.invalid_reset_token")
		})

		It("rejeita token desconhecido ou vazio", func() {
			expectKind(service.Reset(ctx, "zzz", "new-password"), errors.KindValidation, "error.invalid_reset_token")
			expectKind(service.Reset(ctx, " ", "new-password"), errors.KindValidation, "error.invalid_reset_token")
		})

		It("aplica a regra de senha", func() {
			err := service.Reset(ctx, "abc123", "short")
			expectKind(err, errors.KindValidation, "Password must be more than 8 characters")

			// token continua válido
			Expect(service.Reset(ctx, "abc123", "new-password")).To(Succeed())
		})
	})
})
