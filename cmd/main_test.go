package main

import (
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const childEnv = "FULFILLMENT_TEST_RUN_MAIN"

// Config errors happen before zap is set up and must still reach stderr.
func TestMain_ConfigErrorIsPrinted(t *testing.T) {
	if os.Getenv(childEnv) == "1" {
		main()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestMain_ConfigErrorIsPrinted$")
	cmd.Dir = t.TempDir()
	cmd.Env = append(os.Environ(),
		childEnv+"=1",
		"FULFILLMENT_WEBHOOK_TOKEN=",
		"FULFILLMENT_CARRIER_BASE_URL=http://carrier.local",
	)

	out, err := cmd.CombinedOutput()

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Contains(t, string(out), "Failed to load config")
	assert.Contains(t, string(out), "webhook token is required")
}
