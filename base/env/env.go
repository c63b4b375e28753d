package env

import (
	"os"

	"github.com/spf13/viper"
)

// EnvName is the deployment environment, e.g. "dev" or "prod". The env_name
// config key wins over the ENV_NAME variable.
func EnvName() string {
	return lookup("env_name", "ENV_NAME")
}

// AppName is the process name reported with metrics
func AppName() string {
	return lookup("app_name", "APP_NAME")
}

func lookup(key, envKey string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return os.Getenv(envKey)
}
