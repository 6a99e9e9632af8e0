package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/dukerupert/chorechart/internal/database"
)

// EnvPrefix is prepended to every environment key, e.g. CHORECHART_DB_PATH.
const EnvPrefix = "CHORECHART"

type Config struct {
	Port        string
	DB          database.Config
	LogLevel    string
	LogFormat   string
	Location    *time.Location
	CORSOrigins []string
}

// Addr returns the listen address for Port.
func (c Config) Addr() string {
	return ":" + c.Port
}

func defaults(v *viper.Viper) {
	v.SetDefault("port", "3001")
	v.SetDefault("db.driver", database.DriverSQLite)
	v.SetDefault("db.path", "chorechart.db")
	v.SetDefault("db.host", "127.0.0.1")
	v.SetDefault("db.port", 3306)
	v.SetDefault("db.user", "root")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "chorechart")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("timezone", "Local")
	v.SetDefault("cors.origins", "*")
}

// Load reads configuration from the environment. If dotEnvPath names an
// existing file it is loaded first; variables already set are kept.
func Load(dotEnvPath string) (Config, error) {
	if dotEnvPath != "" {
		if _, err := os.Stat(dotEnvPath); err == nil {
			if err := godotenv.Load(dotEnvPath); err != nil {
				return Config{}, fmt.Errorf("load %s: %w", dotEnvPath, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("stat %s: %w", dotEnvPath, err)
		}
	}

	v := viper.New()
	v.SetTypeByDefaultValue(true)
	defaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	loc, err := time.LoadLocation(v.GetString("timezone"))
	if err != nil {
		return Config{}, fmt.Errorf("load timezone: %w", err)
	}

	driver := strings.ToLower(v.GetString("db.driver"))
	if driver != database.DriverSQLite && driver != database.DriverMySQL {
		return Config{}, fmt.Errorf("unsupported db.driver %q", driver)
	}

	return Config{
		Port: v.GetString("port"),
		DB: database.Config{
			Driver:   driver,
			Path:     v.GetString("db.path"),
			Host:     v.GetString("db.host"),
			Port:     v.GetInt("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			Name:     v.GetString("db.name"),
		},
		LogLevel:    v.GetString("log.level"),
		LogFormat:   v.GetString("log.format"),
		Location:    loc,
		CORSOrigins: splitList(v.GetString("cors.origins")),
	}, nil
}

// splitList splits a comma separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
