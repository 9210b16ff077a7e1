package main

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/cloudhire/cloudhire-backend/internal/config"
	"github.com/cloudhire/cloudhire-backend/internal/handlers"
	"github.com/cloudhire/cloudhire-backend/internal/store"
	"github.com/cloudhire/cloudhire-backend/internal/uploads"
)

func main() {
	// 1. Load environment variables (.env is optional outside local dev)
	_ = godotenv.Load()

	log.SetFormatter(&log.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	ctx := context.Background()

	// 2. AWS config, shared by the dynamo store and the CV presigner
	var awsCfg aws.Config
	if cfg.StoreDriver == config.DriverDynamo || cfg.CVBucket != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			log.WithError(err).Fatal("failed to load AWS config")
		}
	}

	// 3. Pick the record store
	var st store.RecordStore
	switch cfg.StoreDriver {
	case config.DriverDynamo:
		st = store.NewDynamo(dynamodb.NewFromConfig(awsCfg), cfg.TableName, cfg.PartitionKey)
		log.WithFields(log.Fields{"table": cfg.TableName, "region": cfg.AWSRegion}).Info("using DynamoDB store")
	case config.DriverPostgres:
		db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
		if err != nil {
			log.WithError(err).Fatal("failed to connect to postgres")
		}
		st, err = store.NewGorm(db)
		if err != nil {
			log.WithError(err).Fatal("failed to migrate records table")
		}
		log.Info("using Postgres store")
	default:
		st = store.NewMemory()
		log.Warn("using in-memory store, data will not survive a restart")
	}

	// 4. CV upload presigning, only when a bucket is configured
	var presigner *uploads.Presigner
	if cfg.CVBucket != "" {
		presigner = uploads.NewPresigner(s3.NewFromConfig(awsCfg), cfg.CVBucket)
		log.WithField("bucket", cfg.CVBucket).Info("cv upload presigning enabled")
	}

	// 5. Router and serve
	r := handlers.NewRouter(st, presigner)

	addr := ":" + cfg.Port
	log.WithField("addr", addr).Info("server starting")
	if err := r.Run(addr); err != nil {
		log.WithError(err).Fatal("server failed")
	}
}
