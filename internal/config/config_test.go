package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("FULFILLMENT_WEBHOOK_TOKEN", "secret")
		t.Setenv("FULFILLMENT_CARRIER_BASE_URL", "http://carrier.local")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "fulfillment", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "console", cfg.Log.Format)
		assert.Equal(t, "/resolve", cfg.Carrier.ResolvePath)
		assert.Equal(t, "/quote", cfg.Carrier.QuotePath)
		assert.Equal(t, "/shipments", cfg.Carrier.ShipmentsPath)
		assert.Equal(t, 15*time.Second, cfg.Carrier.Timeout)
		assert.Equal(t, int64(5000), cfg.Quote.PlaceholderPrice)
		assert.True(t, cfg.Quote.EstimatedFallback)
		assert.Equal(t, 1000.0, cfg.Quote.ProbeDeclaredValue)
		assert.Equal(t, "audit_logs", cfg.Kafka.AuditTopic)
		assert.False(t, cfg.Database.Enabled())
		assert.False(t, cfg.Redis.Enabled())
		assert.False(t, cfg.Kafka.Enabled())
	})

	t.Run("reads overrides from environment", func(t *testing.T) {
		t.Setenv("FULFILLMENT_WEBHOOK_TOKEN", "secret")
		t.Setenv("FULFILLMENT_CARRIER_BASE_URL", "http://carrier.local")
		t.Setenv("FULFILLMENT_CARRIER_RESOLVE_PATH", "/v2/locations/resolve")
		t.Setenv("FULFILLMENT_KAFKA_BROKERS", "k1:9092, k2:9092")
		t.Setenv("FULFILLMENT_QUOTE_ESTIMATED_FALLBACK", "false")
		t.Setenv("FULFILLMENT_APP_ENV", "production")
		t.Setenv("FULFILLMENT_DATABASE_HOST", "db")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "/v2/locations/resolve", cfg.Carrier.ResolvePath)
		assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
		assert.False(t, cfg.Quote.EstimatedFallback)
		assert.Equal(t, "json", cfg.Log.Format)
		assert.True(t, cfg.IsProduction())
		assert.True(t, cfg.Database.Enabled())
		assert.Contains(t, cfg.Database.DSN(), "host=db port=5432")
	})

	t.Run("requires webhook token", func(t *testing.T) {
		t.Setenv("FULFILLMENT_WEBHOOK_TOKEN", "")
		t.Setenv("FULFILLMENT_CARRIER_BASE_URL", "http://carrier.local")

		_, err := Load()
		assert.ErrorIs(t, err, ErrMissingWebhookToken)
	})

	t.Run("requires carrier url", func(t *testing.T) {
		t.Setenv("FULFILLMENT_WEBHOOK_TOKEN", "secret")
		t.Setenv("FULFILLMENT_CARRIER_BASE_URL", "")

		_, err := Load()
		assert.ErrorIs(t, err, ErrMissingCarrierURL)
	})

	t.Run("Read skips validation", func(t *testing.T) {
		t.Setenv("FULFILLMENT_WEBHOOK_TOKEN", "")
		t.Setenv("FULFILLMENT_CARRIER_BASE_URL", "")
		t.Setenv("FULFILLMENT_KAFKA_GROUP_ID", "audit-readers")

		cfg, err := Read()
		require.NoError(t, err)
		assert.Equal(t, "audit-readers", cfg.Kafka.GroupID)
	})
}
