package services_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smartwaste/smartwaste-backend/internal/domain/entities"
	"github.com/smartwaste/smartwaste-backend/internal/domain/errors"
	"github.com/smartwaste/smartwaste-backend/internal/domain/repositories"
	"github.com/smartwaste/smartwaste-backend/internal/services"
)

var _ = Describe("CollectionPointService", func() {
	var (
		ctx     context.Context
		env     *testEnv
		service *services.CollectionPointService
		owner   *entities.User
	)

	input := func() services.CollectionPointInput {
		return services.CollectionPointInput{
			Name:        "Ecocentro Nord",
			Description: "Centro di raccolta comunale",
			Images:      []string{" a.jpg ", "", "b.jpg"},
			Address: &entities.Address{
				Street:    "Via Roma",
				City:      "Milano",
				Zip:       "20121",
				Latitude:  45.46,
				Longitude: 9.19,
			},
			WasteTypeIDs: []uint{1, 2, 2},
		}
	}

	wasteTypeIDs := func(point *entities.CollectionPoint) []uint {
		ids := make([]uint, 0, len(point.WasteTypes))
		for _, wt := range point.WasteTypes {
			ids = append(ids, wt.ID)
		}
		return ids
	}

	BeforeEach(func() {
		ctx = context.Background()
		env = newTestEnv()
		service = services.NewCollectionPointService(env.points, env.wasteTypes, env.operators, env.logger)
		owner = env.registerOperator("owner@example.com")
	})

	Describe("Create", func() {
		It("aplica os valores padrão e conecta os tipos de resíduo", func() {
			in := input()
			in.Schedule = &repositories.SchedulePatch{Monday: boolPtr(true), OpeningTime: strPtr("08:00")}

			point, err := service.Create(ctx, owner.Identity(), in)
			Expect(err).NotTo(HaveOccurred())
			Expect(point.IsActive).To(BeTrue())
			Expect(point.OperatorID).To(Equal(owner.ID))
			Expect(point.Address.Country).To(Equal(services.DefaultCountry))
			Expect(point.Images).To(Equal([]string{"a.jpg", "b.jpg"}))
			Expect(wasteTypeIDs(point)).To(ConsistOf(uint(1), uint(2)))

			Expect(point.Schedule).NotTo(BeNil())
			Expect(point.Schedule.Monday).To(BeTrue())
			Expect(point.Schedule.Tuesday).To(BeFalse())
			Expect(point.Schedule.IsAlwaysOpen).To(BeFalse())
			Expect(*point.Schedule.OpeningTime).To(Equal("08:00"))
			Expect(point.Schedule.ClosingTime).To(BeNil())
		})

		It("remove marcação HTML do nome", func() {
			in := input()
			in.Name = "<b>Ecocentro</b> Sud"

			point, err := service.Create(ctx, owner.Identity(), in)
			Expect(err).NotTo(HaveOccurred())
			Expect(point.Name).To(Equal("Ecocentro Sud"))
		})

		It("usa o perfil de operador e não o papel do token", func() {
			stale := owner.Identity()
			stale.Role = entities.RoleUser

			_, err := service.Create(ctx, stale, input())
			Expect(err).NotTo(HaveOccurred())
		})

		It("recusa quem não é operador", func() {
			stub := env.oauthStub("stub@example.com")

			_, err := service.Create(ctx, stub.Identity(), input())
			expectKind(err, errors.KindForbidden, "error.forbidden")

			_, err = service.Create(ctx, nil, input())
			expectKind(err, errors.KindUnauthenticated, "")
		})

		DescribeTable("valida antes de gravar",
			func(mutate func(in *services.CollectionPointInput), message string) {
				in := input()
				mutate(&in)

				_, err := service.Create(ctx, owner.Identity(), in)
				expectKind(err, errors.KindValidation, message)

				coords, err := service.Coordinates(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(coords).To(BeEmpty())
			},
			Entry("sem nome", func(in *services.CollectionPointInput) { in.Name = "  " }, "Name is required"),
			Entry("sem descrição", func(in *services.CollectionPointInput) { in.Description = "" }, "Description is required"),
			Entry("endereço sem cidade", func(in *services.CollectionPointInput) { in.Address.City = "" }, "City is required"),
			Entry("horário inválido", func(in *services.CollectionPointInput) {
				in.Schedule = &repositories.SchedulePatch{ClosingTime: strPtr("25:99")}
			}, "Invalid closing time"),
			Entry("tipo de resíduo desconhecido", func(in *services.CollectionPointInput) { in.WasteTypeIDs = []uint{1, 999} }, "error.unknown_waste_type"),
		)
	})

	Describe("Authorize", func() {
		var point *entities.CollectionPoint

		BeforeEach(func() {
			var err error
			point, err = service.Create(ctx, owner.Identity(), input())
			Expect(err).NotTo(HaveOccurred())
		})

		It("permite o dono", func() {
			Expect(service.Authorize(ctx, point.ID, owner.ID, services.ActionUpdate)).To(Succeed())
			Expect(service.Authorize(ctx, point.ID, owner.ID, services.ActionDelete)).To(Succeed())
		})

		It("distingue ponto inexistente de dono diferente", func() {
			other := env.registerOperator("other@example.com")

			expectKind(service.Authorize(ctx, point.ID+100, owner.ID, services.ActionUpdate), errors.KindNotFound, "error.collection_point_not_found")
			expectKind(service.Authorize(ctx, point.ID, other.ID, services.ActionUpdate), errors.KindForbidden, "error.not_authorized_update")
			expectKind(service.Authorize(ctx, point.ID, other.ID, services.ActionDelete), errors.KindForbidden, "error.not_authorized_delete")
		})

		It("não altera nem remove o ponto de outro operador", func() {
			other := env.registerOperator("other@example.com")

			_, err := service.Update(ctx, point.ID, other.ID, repositories.CollectionPointPatch{Name: strPtr("Preso")})
			expectKind(err, errors.KindForbidden, "")
			expectKind(service.Delete(ctx, point.ID, other.ID), errors.KindForbidden, "")

			reloaded, err := service.Get(ctx, point.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(reloaded.Name).To(Equal("Ecocentro Nord"))
		})
	})

	Describe("Update", func() {
		var point *entities.CollectionPoint

		BeforeEach(func() {
			var err error
			point, err = service.Create(ctx, owner.Identity(), input())
			Expect(err).NotTo(HaveOccurred())
		})

		It("troca o conjunto de tipos de resíduo por inteiro", func() {
			ids := []uint{2, 3}
			updated, err := service.Update(ctx, point.ID, owner.ID, repositories.CollectionPointPatch{WasteTypeIDs: &ids})
			Expect(err).NotTo(HaveOccurred())
			Expect(wasteTypeIDs(updated)).To(ConsistOf(uint(2), uint(3)))
		})

		It("cria o horário com padrões e depois preserva as flags omitidas", func() {
			updated, err := service.Update(ctx, point.ID, owner.ID, repositories.CollectionPointPatch{
				Schedule: &repositories.SchedulePatch{Saturday: boolPtr(true)},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Schedule.Saturday).To(BeTrue())
			Expect(updated.Schedule.Monday).To(BeFalse())

			updated, err = service.Update(ctx, point.ID, owner.ID, repositories.CollectionPointPatch{
				Schedule: &repositories.SchedulePatch{Monday: boolPtr(true), OpeningTime: strPtr("")},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Schedule.Saturday).To(BeTrue())
			Expect(updated.Schedule.Monday).To(BeTrue())
			Expect(updated.Schedule.OpeningTime).To(BeNil())
		})

		It("limpa um horário gravado quando recebe string vazia", func() {
			schedule := &repositories.SchedulePatch{OpeningTime: strPtr("09:00"), ClosingTime: strPtr("18:00")}
			updated, err := service.Update(ctx, point.ID, owner.ID, repositories.CollectionPointPatch{Schedule: schedule})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Schedule.OpeningTime).To(HaveValue(Equal("09:00")))

			updated, err = service.Update(ctx, point.ID, owner.ID, repositories.CollectionPointPatch{
				Schedule: &repositories.SchedulePatch{OpeningTime: strPtr("  ")},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Schedule.OpeningTime).To(BeNil())
			Expect(updated.Schedule.ClosingTime).To(HaveValue(Equal("18:00")))
		})

		It("mantém os campos omitidos e pode desativar o ponto", func() {
			updated, err := service.Update(ctx, point.ID, owner.ID, repositories.CollectionPointPatch{IsActive: boolPtr(false)})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.IsActive).To(BeFalse())
			Expect(updated.Name).To(Equal("Ecocentro Nord"))
			Expect(updated.Address.City).To(Equal("Milano"))

			listed, err := service.List(ctx, repositories.CollectionPointFilters{})
			Expect(err).NotTo(HaveOccurred())
			Expect(listed).To(BeEmpty())
		})

		It("rejeita nome vazio", func() {
			_, err := service.Update(ctx, point.ID, owner.ID, repositories.CollectionPointPatch{Name: strPtr("")})
			expectKind(err, errors.KindValidation, "Name is too short")
		})

		It("devolve NOT_FOUND para ponto inexistente", func() {
			_, err := service.Update(ctx, point.ID+100, owner.ID, repositories.CollectionPointPatch{})
			expectKind(err, errors.KindNotFound, "error.collection_point_not_found")
		})
	})

	Describe("Delete", func() {
		It("remove o ponto do dono", func() {
			point, err := service.Create(ctx, owner.Identity(), input())
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Delete(ctx, point.ID, owner.ID)).To(Succeed())

			_, err = service.Get(ctx, point.ID)
			expectKind(err, errors.KindNotFound, "error.collection_point_not_found")
		})
	})

	Describe("consultas de apoio", func() {
		It("lista coordenadas de todos os pontos e o catálogo", func() {
			in := input()
			in.IsActive = boolPtr(false)
			_, err := service.Create(ctx, owner.Identity(), in)
			Expect(err).NotTo(HaveOccurred())

			coords, err := service.Coordinates(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(coords).To(HaveLen(1))
			Expect(coords[0].Address.City).To(Equal("Milano"))

			types, err := service.WasteTypes(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(types).To(HaveLen(7))
		})
	})
})
