package config

import (
	"fmt"
	"reflect"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	EnvVars EnvVars  `json:"env"`
	Sources *Sources `json:"-"`
}

// EnvVars holds environment variables required by the application.
// Fields tagged `optional:"true"` are skipped by CheckConfigEnvFields.
type EnvVars struct {
	Port                string `env:"PORT" envDefault:"8080"`
	TheMealDBKey        string `env:"THEMEALDB_API_KEY" envDefault:"1" optional:"true"`
	SpoonacularKey      string `env:"SPOONACULAR_API_KEY" optional:"true"`
	EnablePaidProviders bool   `env:"ENABLE_PAID_PROVIDERS" envDefault:"false" optional:"true"`
	ProviderTimeoutSecs int    `env:"PROVIDER_TIMEOUT_SECONDS" envDefault:"8"`
	DetailFetchCap      int    `env:"DETAIL_FETCH_CAP" envDefault:"10"`
	ResultCacheSize     int    `env:"RESULT_CACHE_SIZE" envDefault:"256"`
	ImageWorkers        int    `env:"IMAGE_WORKERS" envDefault:"4"`
	SearchRateLimitRPS  int    `env:"SEARCH_RATE_LIMIT_RPS" envDefault:"10"`
	PaidProviderRPS     int    `env:"PAID_PROVIDER_RPS" envDefault:"1"`
}

// LoadConfig parses environment variables into the Config struct.
func LoadConfig() (*Config, error) {
	var config Config
	if err := env.Parse(&config.EnvVars); err != nil {
		return nil, err
	}
	return &config, nil
}

// CheckConfigEnvFields validates that all required EnvVars fields are set.
func (c *Config) CheckConfigEnvFields() error {
	return checkFieldsRecursive(reflect.ValueOf(c.EnvVars))
}

func checkFieldsRecursive(v reflect.Value) error {
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := v.Type().Field(i)
		if fieldType.Tag.Get("optional") == "true" {
			continue
		}
		if isZeroValue(field) {
			return fmt.Errorf("$%s must be set", fieldType.Name)
		}
		if field.Kind() == reflect.Struct {
			if err := checkFieldsRecursive(field); err != nil {
				return err
			}
		}
	}
	return nil
}

func isZeroValue(v reflect.Value) bool {
	return v.Interface() == reflect.Zero(v.Type()).Interface()
}
