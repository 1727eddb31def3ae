package pubsub

import (
	"context"
	"log/slog"
	"testing"

	"fleetroute/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublisher(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("not configured", func(t *testing.T) {
		for _, cfg := range []*config.PubSubConfig{nil, {}} {
			publisher, err := newPublisher(ctx, cfg, logger)
			require.NoError(t, err)
			assert.IsType(t, &noopPublisher{}, publisher)
			assert.NoError(t, publisher.PublishRoutesPlanned(ctx, testEvent()))
			assert.NoError(t, publisher.Close())
		}
	})

	t.Run("local", func(t *testing.T) {
		publisher, err := newPublisher(ctx, &config.PubSubConfig{
			Provider:      "local",
			LocalEndpoint: "http://localhost:8090/events",
		}, logger)
		require.NoError(t, err)
		assert.IsType(t, &localHTTPPublisher{}, publisher)
	})

	invalid := []struct {
		name    string
		cfg     *config.PubSubConfig
		wantErr string
	}{
		{
			name:    "local without endpoint",
			cfg:     &config.PubSubConfig{Provider: "local"},
			wantErr: "local endpoint is required",
		},
		{
			name:    "google without project",
			cfg:     &config.PubSubConfig{Provider: "google", TopicID: "routes"},
			wantErr: "project ID is required",
		},
		{
			name:    "google without topic",
			cfg:     &config.PubSubConfig{Provider: "google", ProjectID: "fleet"},
			wantErr: "topic ID is required",
		},
		{
			name:    "unknown provider",
			cfg:     &config.PubSubConfig{Provider: "kafka"},
			wantErr: "unknown pubsub provider",
		},
	}

	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newPublisher(ctx, tt.cfg, logger)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
