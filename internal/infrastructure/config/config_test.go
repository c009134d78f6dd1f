package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFrom_Defaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("PORT", "")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("esperava sucesso, obteve erro: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("esperava porta padrão 8080, obteve %q", cfg.Server.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("esperava ambiente development, obteve %q", cfg.Env)
	}
	if cfg.JWT.AccessExpiry != 24*time.Hour {
		t.Errorf("esperava expiração 24h, obteve %s", cfg.JWT.AccessExpiry)
	}
	if !cfg.Database.AutoMigrate {
		t.Error("esperava DB_AUTO_MIGRATE=true por padrão")
	}
	if cfg.I18n.LocalesDir != "" || cfg.I18n.DefaultLanguage != "en" {
		t.Errorf("i18n padrão inesperado: %+v", cfg.I18n)
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("JWT_ACCESS_EXPIRY", "15m")
	t.Setenv("APP_BASE_URL", "https://smartwaste.it/")
	t.Setenv("SMTP_USER", "support@smartwaste.it")
	t.Setenv("EMAIL_FROM", "")
	t.Setenv("I18N_LOCALES_DIR", "/etc/smartwaste/locales")
	t.Setenv("I18N_DEFAULT_LANGUAGE", "it")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("esperava sucesso, obteve erro: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("esperava 9090, obteve %q", cfg.Server.Port)
	}
	if cfg.Database.Port != 6543 {
		t.Errorf("esperava 6543, obteve %d", cfg.Database.Port)
	}
	if cfg.JWT.AccessExpiry != 15*time.Minute {
		t.Errorf("esperava 15m, obteve %s", cfg.JWT.AccessExpiry)
	}
	if cfg.Server.AppBaseURL != "https://smartwaste.it" {
		t.Errorf("barra final deveria ser removida, obteve %q", cfg.Server.AppBaseURL)
	}
	if cfg.SMTP.From != "\"SmartWaste Support\" <support@smartwaste.it>" {
		t.Errorf("remetente padrão inesperado: %q", cfg.SMTP.From)
	}
	if cfg.I18n.LocalesDir != "/etc/smartwaste/locales" || cfg.I18n.DefaultLanguage != "it" {
		t.Errorf("i18n inesperado: %+v", cfg.I18n)
	}
}

func TestLoadFrom_EnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envFile, []byte("DB_NAME=from_file\n"), 0o600); err != nil {
		t.Fatalf("falha ao criar .env: %v", err)
	}
	// godotenv.Load define variáveis no processo; limpar ao final
	t.Cleanup(func() { os.Unsetenv("DB_NAME") })

	cfg, err := LoadFrom(envFile)
	if err != nil {
		t.Fatalf("esperava sucesso, obteve erro: %v", err)
	}
	if cfg.Database.DBName != "from_file" {
		t.Errorf("esperava DB_NAME do arquivo, obteve %q", cfg.Database.DBName)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	t.Run("expiração inválida", func(t *testing.T) {
		t.Setenv("JWT_ACCESS_EXPIRY", "forever")
		if _, err := LoadFrom(filepath.Join(t.TempDir(), "missing.env")); err == nil {
			t.Error("esperava erro para JWT_ACCESS_EXPIRY inválido")
		}
	})

	t.Run("produção sem segredo JWT", func(t *testing.T) {
		t.Setenv("ENV", "production")
		t.Setenv("JWT_SECRET", "")
		if _, err := LoadFrom(filepath.Join(t.TempDir(), "missing.env")); err == nil {
			t.Error("esperava erro sem JWT_SECRET em produção")
		}
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "smartwaste", SSLMode: "disable"}
	want := "host=db port=5432 user=u password=p dbname=smartwaste sslmode=disable TimeZone=UTC"
	if got := d.DSN(); got != want {
		t.Errorf("esperava %q, obteve %q", want, got)
	}
}

func TestLoadFrom_Secrets(t *testing.T) {
	t.Run("segredo de desenvolvimento", func(t *testing.T) {
		t.Setenv("ENV", "development")
		t.Setenv("JWT_SECRET", "")
		t.Setenv("OAUTH_STATE_SECRET", "")

		cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.env"))
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}
		if cfg.JWT.Secret != developmentJWTSecret {
			t.Errorf("esperava segredo de desenvolvimento, obteve %q", cfg.JWT.Secret)
		}
		if cfg.OAuth.StateSecret != cfg.JWT.Secret {
			t.Errorf("state secret deveria herdar o segredo JWT, obteve %q", cfg.OAuth.StateSecret)
		}
	})

	t.Run("state secret explícito", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "jwt")
		t.Setenv("OAUTH_STATE_SECRET", "state")

		cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.env"))
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}
		if cfg.OAuth.StateSecret != "state" {
			t.Errorf("esperava state, obteve %q", cfg.OAuth.StateSecret)
		}
	})
}
