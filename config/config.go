package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config configuracion de la aplicacion.
type Config struct {
	Port     int
	MongoURI string
	MongoDB  string
	JWTKey   string
	Debug    bool

	// Hora local de la ejecucion diaria de la revision de cartera.
	SweepHour int
}

// LoadConfig carga la configuracion desde variables de entorno, con un
// .env opcional en el directorio de trabajo.
func LoadConfig() *Config {
	// Ignorado si no existe .env
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	sweepHour, _ := strconv.Atoi(getEnv("CARTERA_SWEEP_HOUR", "6"))

	return &Config{
		Port:      port,
		MongoURI:  getEnv("MONGO_URI", "mongodb://127.0.0.1:27017/santabrisa"),
		MongoDB:   getEnv("MONGO_DB", "santabrisa"),
		JWTKey:    getEnv("JWT_KEY", "change-me"),
		Debug:     getEnv("GIN_MODE", "debug") == "debug",
		SweepHour: sweepHour,
	}
}

// getEnv devuelve la variable de entorno o el valor por defecto.
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
