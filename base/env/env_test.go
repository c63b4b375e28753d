package env

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	req := require.New(t)
	os.Setenv("APP_NAME", "from-env")
	defer os.Unsetenv("APP_NAME")

	req.Equal("from-env", AppName())

	viper.Set("app_name", "from-config")
	defer viper.Set("app_name", "")
	req.Equal("from-config", AppName())
}
