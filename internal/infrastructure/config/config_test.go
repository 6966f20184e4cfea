package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
server:
  port: 8081
  mode: test
database:
  host: db
  port: 3306
  user: root
  password: secret
  dbname: shop
  loc: Asia/Kolkata
jwt:
  secret: unit-test-secret
  access_token_expire: 1h
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
	return dir
}

func TestLoadFrom_DefaultsAndDSN(t *testing.T) {
	cfg, err := LoadFrom(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, 9090, cfg.Server.GRPCPort)
	assert.Equal(t, 5*time.Second, cfg.Order.TxTimeout)
	assert.Equal(t, 3*time.Second, cfg.Order.NotifyTimeout)
	assert.Equal(t, "shopcore.events", cfg.RabbitMQ.Exchange)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "root:secret@tcp(db:3306)/shop?charset=utf8mb4&parseTime=true&loc=Asia%2FKolkata", cfg.Database.DSN())
}

func TestLoadFrom_EnvOverride(t *testing.T) {
	t.Setenv("SHOPCORE_DATABASE_PASSWORD", "from-env")
	t.Setenv("SHOPCORE_ORDER_TX_TIMEOUT", "2s")

	cfg, err := LoadFrom(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, 2*time.Second, cfg.Order.TxTimeout)
}

func TestLoadFrom_Validation(t *testing.T) {
	t.Run("缺少JWT密钥", func(t *testing.T) {
		_, err := LoadFrom(writeConfig(t, "server:\n  port: 8080\n"))
		assert.Error(t, err)
	})

	t.Run("生产环境使用默认密钥", func(t *testing.T) {
		yaml := "server:\n  mode: release\njwt:\n  secret: your-secret-key-change-in-production\n"
		_, err := LoadFrom(writeConfig(t, yaml))
		assert.Error(t, err)
	})

	t.Run("HTTP端口与默认gRPC端口冲突", func(t *testing.T) {
		yaml := "server:\n  port: 9090\njwt:\n  secret: x\n"
		_, err := LoadFrom(writeConfig(t, yaml))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "gRPC")
	})

	t.Run("HTTP端口与显式gRPC端口冲突", func(t *testing.T) {
		yaml := "server:\n  port: 7000\n  grpc_port: 7000\njwt:\n  secret: x\n"
		_, err := LoadFrom(writeConfig(t, yaml))
		assert.Error(t, err)
	})

	t.Run("启用RabbitMQ但未配置url", func(t *testing.T) {
		yaml := "jwt:\n  secret: x\nrabbitmq:\n  enabled: true\n"
		_, err := LoadFrom(writeConfig(t, yaml))
		assert.Error(t, err)
	})
}

func TestLoadFrom_GRPCDisabled(t *testing.T) {
	yaml := "server:\n  port: 9090\n  grpc_port: 0\njwt:\n  secret: x\n"
	cfg, err := LoadFrom(writeConfig(t, yaml))
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Server.GRPCPort)
}

func TestLoadFrom_MissingFile(t *testing.T) {
	_, err := LoadFrom(t.TempDir())
	assert.Error(t, err)
}

func TestRedisAddr(t *testing.T) {
	assert.Equal(t, "cache:6380", RedisConfig{Host: "cache", Port: 6380}.Addr())
}
