// Package config reads the service configuration from the environment.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Store driver names accepted by CLOUDHIRE_STORE_DRIVER.
const (
	DriverDynamo   = "dynamo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Port        string
	StoreDriver string

	// DynamoDB
	TableName    string
	PartitionKey string
	AWSRegion    string

	// Postgres
	PostgresDSN string

	// CV uploads; presigning is disabled when the bucket is empty.
	CVBucket string
}

// Load builds the config from CLOUDHIRE_*-prefixed environment variables
// with sensible local-dev defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("cloudhire")
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("store_driver", DriverMemory)
	v.SetDefault("table_name", "CloudHireJobs")
	v.SetDefault("partition_key", "id")
	v.SetDefault("aws_region", "ap-southeast-1")
	v.SetDefault("postgres_dsn", "")
	v.SetDefault("cv_bucket", "")

	cfg := &Config{
		Port:         v.GetString("port"),
		StoreDriver:  v.GetString("store_driver"),
		TableName:    v.GetString("table_name"),
		PartitionKey: v.GetString("partition_key"),
		AWSRegion:    v.GetString("aws_region"),
		PostgresDSN:  v.GetString("postgres_dsn"),
		CVBucket:     v.GetString("cv_bucket"),
	}

	switch cfg.StoreDriver {
	case DriverDynamo, DriverPostgres, DriverMemory:
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	if cfg.StoreDriver == DriverPostgres && cfg.PostgresDSN == "" {
		return nil, fmt.Errorf("store driver %q requires CLOUDHIRE_POSTGRES_DSN", DriverPostgres)
	}
	return cfg, nil
}
