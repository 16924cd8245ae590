package database

import (
	"fmt"

	"Coaching-Management-Backend/src/logger"

	"github.com/hibiken/asynq"
)

var AsynqClient *asynq.Client

// AsynqRedisOpt builds the asynq connection from the same settings as RedisClient.
func AsynqRedisOpt(addr, password string, db int) (asynq.RedisConnOpt, error) {
	if hasScheme(addr) {
		opt, err := asynq.ParseRedisURI(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URI for asynq: %w", err)
		}
		return opt, nil
	}
	return asynq.RedisClientOpt{Addr: addr, Password: password, DB: db}, nil
}

// InitAsynq initializes the Asynq client only if Redis is available.
func InitAsynq(addr, password string, db int) error {
	if RedisClient == nil || addr == "" {
		logger.Warn().Msg("Redis not available, Asynq client will not be initialized")
		return nil
	}

	opt, err := AsynqRedisOpt(addr, password, db)
	if err != nil {
		return err
	}
	AsynqClient = asynq.NewClient(opt)
	logger.Info().Msg("Asynq client initialized successfully")
	return nil
}

func CloseAsynq() error {
	if AsynqClient == nil {
		return nil
	}
	return AsynqClient.Close()
}
