package app

import (
	"context"
	"flag"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"vesselos/internal/app/server"
	"vesselos/internal/config"
	"vesselos/internal/database"
	"vesselos/internal/firewall"
	"vesselos/internal/geoip"
	"vesselos/internal/support"
)

const defaultBackendPort = 8082

func Run() error {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found. Falling back to system environment variables.")
	}

	log.SetLevel(log.DebugLevel)

	backendPortFlag := flag.Int("backend-port", defaultBackendPort, "Port for API server")
	productionFlag := flag.Bool("production", false, "Run in production mode")
	flag.Parse()

	config.SetProductionMode(*productionFlag)
	config.ReadSettings()

	backendPort := resolvePort("BACKEND_PORT", "backend-port", *backendPortFlag)

	ctx := context.Background()

	// Redis keeps settings, firewall rules and heartbeats in sync across
	// instances. A single instance still works without it.
	redisClient, err := support.GetRedisClient()
	if err != nil {
		log.Warn("Redis unavailable, running without cross-instance sync", "error", err)
		redisClient = nil
	}

	if redisClient != nil {
		heartbeatCancel := support.LaunchInstanceHeartbeat(ctx, redisClient)
		defer heartbeatCancel()

		config.EnableRedisSynchronization(ctx, redisClient)
	}

	if _, err := database.SetupDB(); err != nil {
		return err
	}

	cfg := config.GetConfig()
	registry := firewall.NewRegistry(firewall.RegistryConfig{
		SuspicionTTL:        cfg.Firewall.SuspicionTTL.Duration(),
		EscalationThreshold: cfg.Firewall.EscalationThreshold,
	})

	if redisClient != nil {
		firewall.EnableRegistrySync(ctx, redisClient, registry)
	}

	resolver, err := geoip.Open("")
	if err != nil {
		log.Warn("GeoIP database unavailable, firewall logs will omit countries", "error", err)
		resolver = nil
	}
	defer resolver.Close()

	validator := firewall.NewRequestValidator(firewall.ValidatorConfig{
		Registry:      registry,
		Classifier:    firewall.NewRegexClassifier(),
		MaxBodyBytes:  config.MaxBodyBytes(),
		CountryLookup: resolver.Country,
	})

	return server.OpenRoutes(backendPort, validator)
}

func resolvePort(primaryEnv, legacyEnv string, fallback int) int {
	if port := readPort(primaryEnv); port != 0 {
		return port
	}
	if port := readPort(legacyEnv); port != 0 {
		return port
	}
	return fallback
}

func readPort(envKey string) int {
	raw := os.Getenv(envKey)
	if raw == "" {
		return 0
	}
	port, err := strconv.Atoi(raw)
	if err != nil || port == 0 {
		log.Warn("invalid port override", "env", envKey, "value", raw)
		return 0
	}
	return port
}
