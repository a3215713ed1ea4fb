package config

import "github.com/aws/aws-sdk-go-v2/service/s3"

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type S3Config struct {
	Bucket   string `yaml:"bucket"`
	Client   *s3.Client
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
	Local    bool   `yaml:"local"`
}

// JWTConfig : параметры выпуска токенов.
// AccessTokenTTL — строка duration ("15m"), RefreshTokenDays — срок жизни refresh-токена в днях.
type JWTConfig struct {
	SecretKey        string `yaml:"secret_key"`
	AccessTokenTTL   string `yaml:"access_token_ttl"`
	RefreshTokenDays int    `yaml:"refresh_token_days"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type TTL struct {
	S3AndRedis int `yaml:"s3_and_redis"`
}
