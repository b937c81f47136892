package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config concentra tudo que vem do ambiente. Sem singletons: o main carrega
// uma vez e injeta nos construtores.
type Config struct {
	// Salesforce
	SFLoginURL      string
	SFUsername      string
	SFPassword      string
	SFSecurityToken string // opcional; concatenado na senha no login

	// Fila durável (Postgres)
	DatabaseURL string

	// Comportamento do job
	CreateOpportunity bool // DCI-7: configurável até o fluxo de Opportunity ser definido
	DryRun            bool // só lista o snapshot, sem converter nem mutar

	// Opcionais: eventos e relatório de falhas
	RabbitMQURL  string
	MailHost     string
	MailPort     int
	MailUser     string
	MailPass     string
	MailReportTo string

	// cmd/api
	Port string
}

func Load() (Config, error) {
	cfg := Config{
		SFLoginURL:      os.Getenv("SF_LOGIN_URL"),
		SFUsername:      os.Getenv("SF_USERNAME"),
		SFPassword:      os.Getenv("SF_PASSWORD"),
		SFSecurityToken: os.Getenv("SF_SECURITY_TOKEN"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RabbitMQURL:     os.Getenv("RABBITMQ_URL"),
		MailHost:        os.Getenv("MAIL_HOST"),
		MailUser:        os.Getenv("MAIL_USER"),
		MailPass:        os.Getenv("MAIL_PASS"),
		MailReportTo:    os.Getenv("MAIL_REPORT_TO"),
		Port:            os.Getenv("PORT"),
	}

	// Sem credencial não processamos nada: falha antes do primeiro item.
	required := []struct{ name, value string }{
		{"SF_LOGIN_URL", cfg.SFLoginURL},
		{"SF_USERNAME", cfg.SFUsername},
		{"SF_PASSWORD", cfg.SFPassword},
		{"DATABASE_URL", cfg.DatabaseURL},
	}
	for _, v := range required {
		if v.value == "" {
			return Config{}, fmt.Errorf("variável obrigatória %s não definida", v.name)
		}
	}

	cfg.CreateOpportunity = boolFromEnv("CREATE_OPPORTUNITY", true)
	cfg.DryRun = boolFromEnv("DRY_RUN", false)
	cfg.MailPort = intFromEnv("MAIL_PORT", 587)

	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	return cfg, nil
}

func boolFromEnv(name string, fallback bool) bool {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

func intFromEnv(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
