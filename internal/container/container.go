package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/acara-auth/config"
	"github.com/oksasatya/acara-auth/pkg/helpers"
	"github.com/oksasatya/acara-auth/pkg/mailer"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client

	tokens *helpers.TokenManager
	codec  *helpers.CredentialCodec

	mailSender mailer.Sender
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger {
	if logger != nil {
		return logger
	}
	return helpers.NewNopLogger()
}
func SetPGPool(p *pgxpool.Pool) { pgPool = p }
func GetPGPool() *pgxpool.Pool  { return pgPool }
func SetRedis(r *redis.Client)  { redisClient = r }
func GetRedis() *redis.Client   { return redisClient }

func SetTokens(m *helpers.TokenManager) { tokens = m }
func GetTokens() *helpers.TokenManager {
	if tokens != nil {
		return tokens
	}
	return helpers.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
}
func SetCodec(c *helpers.CredentialCodec) { codec = c }
func GetCodec() *helpers.CredentialCodec {
	if codec != nil {
		return codec
	}
	return helpers.NewCredentialCodec(cfg.CredentialSecret)
}

func SetMailSender(s mailer.Sender) { mailSender = s }
func GetMailSender() mailer.Sender  { return mailSender }
