package config

import "os"

type AppConfig struct {
	DebugMode      bool
	ServerConfig   *ServerConfig
	WorkbenchCfg   *WorkbenchCfg
	JudgeConfig    *JudgeConfig
	ProblemAPICfg  *ProblemAPICfg
	RedisConfig    *RedisConfig
	PostgresConfig *PostgresConfig
}

func NewSystemConfig() *AppConfig {
	return &AppConfig{
		DebugMode:      os.Getenv("DEBUG_MODE") == "true",
		ServerConfig:   NewServerConfig(),
		WorkbenchCfg:   NewWorkbenchCfg(),
		JudgeConfig:    NewJudgeConfig(),
		ProblemAPICfg:  NewProblemAPICfg(),
		RedisConfig:    NewRedisConfig(),
		PostgresConfig: NewPostgresConfig(),
	}
}
