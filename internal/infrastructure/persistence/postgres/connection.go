package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/smartwaste/smartwaste-backend/internal/domain/ports"
	"github.com/smartwaste/smartwaste-backend/internal/infrastructure/config"
	"github.com/smartwaste/smartwaste-backend/internal/infrastructure/logging"
)

// GormConfig retorna a configuração GORM compartilhada entre produção e testes
func GormConfig(logLevel logger.LogLevel) *gorm.Config {
	return &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		// Converte violações de unique em gorm.ErrDuplicatedKey
		TranslateError: true,
		PrepareStmt:    false,
	}
}

// NewDatabaseConnection cria uma nova conexão com o PostgreSQL
func NewDatabaseConnection(cfg *config.DatabaseConfig, logLevel string, log ports.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), GormConfig(logging.GormLogLevel(logLevel)))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Configurar connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxConns)
	sqlDB.SetMaxIdleConns(cfg.MinConns)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.MaxIdleTime) * time.Second)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("database connected successfully",
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.DBName,
	)

	return db, nil
}

// Migrate cria/atualiza o schema
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// DefaultWasteTypes é o catálogo inicial
func DefaultWasteTypes() []WasteTypeModel {
	str := func(s string) *string { return &s }
	return []WasteTypeModel{
		{Name: "Plastica", Color: str("#facc15"), Icon: str("bottle-water"), Description: str("Imballaggi in plastica e metallo")},
		{Name: "Carta", Color: str("#3b82f6"), Icon: str("newspaper"), Description: str("Carta e cartone")},
		{Name: "Vetro", Color: str("#22c55e"), Icon: str("wine-bottle"), Description: str("Bottiglie e vasetti in vetro")},
		{Name: "Organico", Color: str("#a16207"), Icon: str("apple-whole"), Description: str("Rifiuti umidi e scarti alimentari")},
		{Name: "RAEE", Color: str("#6b7280"), Icon: str("plug"), Description: str("Apparecchiature elettriche ed elettroniche")},
		{Name: "Pile", Color: str("#ef4444"), Icon: str("battery-half"), Description: str("Pile e batterie esauste")},
		{Name: "Indifferenziato", Color: str("#1f2937"), Icon: str("trash"), Description: str("Rifiuti non riciclabili")},
	}
}

// SeedWasteTypes insere o catálogo padrão ignorando nomes já existentes
func SeedWasteTypes(ctx context.Context, db *gorm.DB) error {
	types := DefaultWasteTypes()
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&types).Error
}

// Ping verifica se o banco responde
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
