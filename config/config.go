package config

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	CORS      CORSConfig      `yaml:"cors"`
}

type ServerConfig struct {
	Address     string `yaml:"address"`
	BasePath    string `yaml:"base_path"`
	Environment string `yaml:"environment"`
}

type DatabaseConfig struct {
	Driver           string `yaml:"driver"`
	ConnectionString string `yaml:"connection_string"`
}

type JWTConfig struct {
	// секреты access и refresh токенов различаются: утечка одного
	// не позволяет подделывать токены второго класса
	AccessSecret    string `yaml:"access_secret"`
	RefreshSecret   string `yaml:"refresh_secret"`
	AccessTokenTTL  string `yaml:"access_token_ttl"`
	RefreshTokenTTL string `yaml:"refresh_token_ttl"`
}

type RateLimitConfig struct {
	RequestLimit int    `yaml:"request_limit"`
	Window       string `yaml:"window"`
}

type CORSConfig struct {
	AllowedOrigin string `yaml:"allowed_origin"`
}
