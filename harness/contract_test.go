package harness_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"ollamacheck/config"
	"ollamacheck/harness"
	"ollamacheck/harness/testutil"
)

// TestOllamaContract runs the checks against the configured live endpoint
// (http://localhost:11434 unless overridden). Without a running server the
// network checks skip rather than fail.
func TestOllamaContract(t *testing.T) {
	config.InitDebugLog(os.Stderr)
	cfg, err := config.Load()
	require.NoError(t, err)

	h, err := harness.FromConfig(cfg, os.Stdout)
	require.NoError(t, err)
	h.Banner()

	ctx := context.Background()

	t.Run("APIConnection", func(t *testing.T) {
		testutil.Require(t, h.Connectivity(ctx))
	})
	t.Run("GenerateEndpoint", func(t *testing.T) {
		testutil.Require(t, h.Generation(ctx))
	})
	t.Run("ChatHistoryPersistence", func(t *testing.T) {
		testutil.Require(t, h.Persistence(ctx))
	})
}
