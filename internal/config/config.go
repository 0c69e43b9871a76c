// Package config loads log-find-date settings from an ini file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-ini/ini"
)

// DefaultFile is the config file name looked up in the home directory.
const DefaultFile = ".log-find-date.ini"

// Config holds every setting the commands read.
type Config struct {
	LogPath   string
	OutputDir string
	Sample    Sample
	MySQL     MySQL
}

// Sample controls synthetic log generation.
type Sample struct {
	// Generate writes a sample log when LogPath does not exist.
	Generate bool
	Days     int
	Entries  int
	Seed     int64
}

// MySQL holds the connection used by the binlog command.
type MySQL struct {
	Host     string
	Port     int
	User     string
	Password string
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		LogPath:   "logs/app.log",
		OutputDir: "output",
		Sample: Sample{
			Generate: true,
			Days:     365,
			Entries:  100000,
			Seed:     1,
		},
		MySQL: MySQL{
			Host: "localhost",
			Port: 3306,
			User: "root",
		},
	}
}

// Load applies the ini file at path over the defaults. A missing file is not
// an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err != nil {
		return cfg, nil
	}

	iniFile, err := ini.Load(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load config file: %w", err)
	}

	logSection := iniFile.Section("log")
	cfg.LogPath = logSection.Key("path").MustString(cfg.LogPath)

	outputSection := iniFile.Section("output")
	cfg.OutputDir = outputSection.Key("dir").MustString(cfg.OutputDir)

	sampleSection := iniFile.Section("sample")
	cfg.Sample.Generate = sampleSection.Key("generate").MustBool(cfg.Sample.Generate)
	cfg.Sample.Days = sampleSection.Key("days").MustInt(cfg.Sample.Days)
	cfg.Sample.Entries = sampleSection.Key("entries").MustInt(cfg.Sample.Entries)
	cfg.Sample.Seed = sampleSection.Key("seed").MustInt64(cfg.Sample.Seed)

	mysqlSection := iniFile.Section("mysql")
	cfg.MySQL.Host = mysqlSection.Key("host").MustString(cfg.MySQL.Host)
	cfg.MySQL.Port = mysqlSection.Key("port").MustInt(cfg.MySQL.Port)
	cfg.MySQL.User = mysqlSection.Key("user").MustString(cfg.MySQL.User)
	cfg.MySQL.Password = mysqlSection.Key("password").MustString(cfg.MySQL.Password)

	return cfg, nil
}

// DefaultPath returns the path to the default config file in the user's home directory
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return DefaultFile
	}
	return filepath.Join(homeDir, DefaultFile)
}
