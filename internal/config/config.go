package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string        `yaml:"env" env:"ENV" env-default:"local"`
	SimLatency time.Duration `yaml:"sim_latency" env:"SIM_LATENCY" env-default:"500ms"`
	HTTP       HTTPConfig    `yaml:"http"`
	Storage    StorageConfig `yaml:"storage"`
	Redis      RedisConfig   `yaml:"redis"`
}

type HTTPConfig struct {
	Host string `yaml:"host" env-default:""`
	Port string `yaml:"port" env-default:"8080"`
}

// StorageConfig selects the key-value backend the simulation persists to.
type StorageConfig struct {
	// Backend is one of memory, file, redis.
	Backend string `yaml:"backend" env:"STORAGE_BACKEND" env-default:"memory"`
	// Dir is the base directory for the file backend.
	Dir string `yaml:"dir" env-default:"./data"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env-default:"localhost:6379"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db" env-default:"0"`
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	return &cfg
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
