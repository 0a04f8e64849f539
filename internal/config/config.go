package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "RECIPEBOOK_"

type Application struct {
	Host        string      `koanf:"host"`
	Port        int         `koanf:"port"`
	Database    Database    `koanf:"db"`
	Spoonacular Spoonacular `koanf:"spoonacular"`
	Cache       Cache       `koanf:"cache"`
}

type Database struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Pass     string `koanf:"pass"`
	Name     string `koanf:"name"`
	Schema   string `koanf:"schema"`
	MaxConns int32  `koanf:"maxconns"`
	MinConns int32  `koanf:"minconns"`
}

type Spoonacular struct {
	BaseUrl  string        `koanf:"baseurl"`
	ApiKey   string        `koanf:"apikey"`
	Timeout  time.Duration `koanf:"timeout"`
	PageSize int           `koanf:"pagesize"`
}

// Cache configures the in-memory cache of recipe API responses.
type Cache struct {
	Size int           `koanf:"size"`
	TTL  time.Duration `koanf:"ttl"`
}

func defaults() Application {
	return Application{
		Host: "http://localhost:8181",
		Port: 8181,
		Database: Database{
			Host:     "localhost",
			Port:     5432,
			User:     "recipebook",
			Pass:     "",
			Name:     "recipebook",
			Schema:   "recipebook",
			MaxConns: 25,
			MinConns: 5,
		},
		Spoonacular: Spoonacular{
			BaseUrl:  "https://api.spoonacular.com/",
			Timeout:  10 * time.Second,
			PageSize: 12,
		},
		Cache: Cache{
			Size: 512,
			TTL:  30 * time.Minute,
		},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}
	if app.Spoonacular.ApiKey == "" {
		log.Warn("spoonacular.apikey is not set, recipe API calls will be rejected")
	}

	return app, nil
}
