package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Host     string   `koanf:"host"`
	Auth     Auth     `koanf:"auth"`
	Database Database `koanf:"db"`
	Ocr      Ocr      `koanf:"ocr"`
}

type Auth struct {
	// Secret signs session tokens. The default is only acceptable for local development.
	Secret string `koanf:"secret"`
	// TokenTTLHours is the lifetime of an issued session token in hours.
	TokenTTLHours int `koanf:"tokenttlhours"`
}

type Database struct {
	Path string `koanf:"path"`
}

type Ocr struct {
	// Command is the interpreter used to run the receipt extraction script.
	Command string `koanf:"command"`
	// Script is the path to the receipt extraction script.
	Script string `koanf:"script"`
	// TimeoutSeconds bounds a single scan invocation.
	TimeoutSeconds int `koanf:"timeoutseconds"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Host: "http://localhost:3000",
		Auth: Auth{
			Secret:        "smartspend-dev-secret",
			TokenTTLHours: 72,
		},
		Database: Database{
			Path: "smartspend.db",
		},
		Ocr: Ocr{
			Command:        "python3",
			Script:         "./ocr/extract_receipt.py",
			TimeoutSeconds: 60,
		},
	}, "koanf"), nil)
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
		Prefix: "SMARTSPEND_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "SMARTSPEND_")), "_", ".")
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

	return app, nil
}
