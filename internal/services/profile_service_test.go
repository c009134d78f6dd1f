package services_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smartwaste/smartwaste-backend/internal/domain/errors"
	"github.com/smartwaste/smartwaste-backend/internal/services"
)

var _ = Describe("ProfileService", func() {
	var (
		ctx     context.Context
		env     *testEnv
		service *services.ProfileService
	)

	BeforeEach(func() {
		ctx = context.Background()
		env = newTestEnv()
		service = services.NewProfileService(env.users, env.operators, env.uow, env.logger)
	})

	It("inclui o perfil de operador", func() {
		user := env.registerOperator("op@example.com")

		profile, err := service.Get(ctx, user.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(profile.User.Email.String()).To(Equal("op@example.com"))
		Expect(profile.Operator).NotTo(BeNil())
		Expect(profile.Operator.OrganizationName).To(Equal("Acme"))
	})

	It("atualiza apenas os campos informados", func() {
		stub := env.oauthStub("stub@example.com")

		profile, err := service.Update(ctx, stub.ID, services.ProfileUpdate{
			Name:      strPtr(" Mario "),
			Surname:   strPtr("Rossi"),
			Cellphone: strPtr("+39 333 1234567"),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(profile.User.Name).To(Equal("Mario"))
		Expect(*profile.User.Surname).To(Equal("Rossi"))
		Expect(*profile.User.Cellphone).To(Equal("+39 333 1234567"))
		Expect(profile.Operator).To(BeNil())

		profile, err = service.Update(ctx, stub.ID, services.ProfileUpdate{Cellphone: strPtr("")})
		Expect(err).NotTo(HaveOccurred())
		Expect(profile.User.Name).To(Equal("Mario"))
		Expect(*profile.User.Cellphone).To(BeEmpty())
	})

	It("atualiza o telefone do operador", func() {
		user := env.registerOperator("op@example.com")

		profile, err := service.Update(ctx, user.ID, services.ProfileUpdate{Telephone: strPtr("02 1234567")})
		Expect(err).NotTo(HaveOccurred())
		Expect(profile.Operator.Telephone).To(Equal("02 1234567"))
	})

	It("valida nome e sobrenome", func() {
		stub := env.oauthStub("stub@example.com")

		_, err := service.Update(ctx, stub.ID, services.ProfileUpdate{Name: strPtr("M"), Surname: strPtr("R")})
		expectKind(err, errors.KindValidation, "Name is too short")

		de, _ := errors.As(err)
		Expect(de.Violations).To(HaveLen(2))
		Expect(de.Violations[1].Message).To(Equal("Surname is too short"))
	})

	It("remove a conta e o perfil de operador", func() {
		user := env.registerOperator("op@example.com")

		Expect(service.Delete(ctx, user.ID)).To(Succeed())

		_, err := service.Get(ctx, user.ID)
		expectKind(err, errors.KindNotFound, "error.user_not_found")

		operator, err := env.operators.FindByUserID(ctx, user.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(operator).To(BeNil())
	})

	It("devolve NOT_FOUND para usuário inexistente", func() {
		expectKind(service.Delete(ctx, "00000000-0000-0000-0000-000000000000"), errors.KindNotFound, "")
		_, err := service.Update(ctx, "00000000-0000-0000-0000-000000000000", services.ProfileUpdate{})
		expectKind(err, errors.KindNotFound, "")
	})
})
