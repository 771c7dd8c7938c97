package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config define a configuração do serviço.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	DB      DBConfig      `yaml:"db"`
	Log     LogConfig     `yaml:"log"`
	CORS    CORSConfig    `yaml:"cors"`
	Extract ExtractConfig `yaml:"extract"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// StaticDir, quando definido, é servido em /public.
	StaticDir string `yaml:"static_dir"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type CORSConfig struct {
	Origins []string `yaml:"origins"`
}

// ExtractConfig seleciona as estratégias do pipeline de extração que
// variaram entre versões históricas das planilhas.
type ExtractConfig struct {
	// SheetPolicy: "heuristic" (padrão), "exact" ou "closest".
	SheetPolicy string `yaml:"sheet_policy"`
	// SheetName é o nome exato ou alvo aproximado, conforme a política.
	SheetName string `yaml:"sheet_name"`
	// DateEpoch: "1900" (padrão) ou "1904".
	DateEpoch string `yaml:"date_epoch"`
}

// Load lê a configuração de um arquivo YAML opcional e de variáveis de
// ambiente, com as variáveis tendo precedência.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 5000,
		},
		DB: DBConfig{
			Path: "medicoes.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		CORS: CORSConfig{
			Origins: []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		},
		Extract: ExtractConfig{
			SheetPolicy: "heuristic",
			DateEpoch:   "1900",
		},
	}

	if path := os.Getenv("FMC_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("FMC_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("FMC_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("FMC_SERVER_PORT inválida: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("FMC_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("FMC_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("falha ao ler arquivo de configuração: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("falha ao interpretar arquivo de configuração: %w", err)
	}
	return nil
}
