//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/smartwaste/smartwaste-backend/internal/domain/repositories"
	"github.com/smartwaste/smartwaste-backend/internal/infrastructure/config"
	"github.com/smartwaste/smartwaste-backend/internal/infrastructure/logging"
)

// go test -tags integration ./internal/infrastructure/persistence/postgres/ (requer Docker)
func TestPostgresIntegration(t *testing.T) {
	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("smartwaste"),
		tcpostgres.WithUsername("smartwaste"),
		tcpostgres.WithPassword("smartwaste"),
		tcpostgres.BasicWaitStrategies(),
	)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(ctr); err != nil {
			t.Logf("falha ao encerrar container: %v", err)
		}
	})
	if err != nil {
		t.Fatalf("falha ao subir postgres: %v", err)
	}

	host, err := ctr.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := ctr.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("porta: %v", err)
	}

	db, err := NewDatabaseConnection(&config.DatabaseConfig{
		Host:        host,
		Port:        port.Int(),
		User:        "smartwaste",
		Password:    "smartwaste",
		DBName:      "smartwaste",
		SSLMode:     "disable",
		MaxConns:    5,
		MinConns:    1,
		MaxIdleTime: 60,
	}, "error", logging.Discard())
	if err != nil {
		t.Fatalf("falha ao conectar: %v", err)
	}

	if err := Migrate(db); err != nil {
		t.Fatalf("falha na migração: %v", err)
	}
	// seed é idempotente
	for i := 0; i < 2; i++ {
		if err := SeedWasteTypes(ctx, db); err != nil {
			t.Fatalf("falha no seed: %v", err)
		}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := Ping(pingCtx, db); err != nil {
		t.Fatalf("ping: %v", err)
	}

	types, err := NewWasteTypeRepository(db).List(ctx)
	if err != nil {
		t.Fatalf("list waste types: %v", err)
	}
	if len(types) != len(DefaultWasteTypes()) {
		t.Errorf("len(types) = %d, want %d", len(types), len(DefaultWasteTypes()))
	}

	owner := createOperator(t, db, "owner@example.com")
	points := NewCollectionPointRepository(db)
	id, err := points.Create(ctx, samplePoint(owner.ID))
	if err != nil {
		t.Fatalf("create point: %v", err)
	}

	found, err := points.List(ctx, repositories.CollectionPointFilters{Search: "Mil"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(found) != 1 || found[0].ID != id {
		t.Errorf("search by city returned %d points", len(found))
	}

	// deleção em cascata via FK do postgres
	if err := NewUserRepository(db).Delete(ctx, owner.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	point, err := points.FindByID(ctx, id)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if point != nil {
		t.Error("ponto deveria ter sido removido junto com o operador")
	}
}
