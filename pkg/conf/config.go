// Copyright 2026 EduAI Labs. All rights reserved.
// Use of this source code is governed by a BSD-style license
// specified in the Github project LICENSE file.

package conf

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// EduAI Principal Server configuration
type Config struct {
	LogLevel      string `yaml:"log_level"` // "debug", "info", "warn", "error"
	PublicBaseUrl string `yaml:"public_base_url"`
	Port          int    `yaml:"port"`
	Dsn           string `yaml:"dsn"`
	Access        `yaml:"access"`
	JWT           `yaml:"jwt"`
	Signup        `yaml:"signup"`
	RateLimit     `yaml:"rate_limit"`
	Resources     string   `yaml:"resources"`
	Origins       []string `yaml:"origins"`
}

type Access struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type JWT struct {
	SecretKey string            `yaml:"secret_key"`
	Admin     map[string]string `yaml:"admin"` // username -> password
}

type Signup struct {
	// URI templates expanded with the generated entry id, e.g.
	// "https://eduai.example.org/waitlist/{id}"
	Links map[string]string `yaml:"links"`
}

type RateLimit struct {
	PerSecond int `yaml:"per_second"`
	Burst     int `yaml:"burst"`
}

func Init(configFile string) (*Config, error) {

	var c Config

	if configFile != "" {
		f, _ := filepath.Abs(configFile)
		yamlData, err := os.ReadFile(f)
		if err != nil {
			return nil, err
		}
		err = yaml.Unmarshal(yamlData, &c)
		if err != nil {
			return nil, err
		}

	} else {
		return nil, errors.New("failed to find the configuration file")
	}

	// the container exposes port 8080
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.RateLimit.PerSecond == 0 {
		c.RateLimit.PerSecond = 5
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 10
	}

	return &c, nil
}
