package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupGlobalLogger(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.GlobalLevel())

	require.NoError(t, SetupGlobalLogger(false, "not a level"))
	assert.Equal(t, zerolog.Disabled, zerolog.GlobalLevel())

	require.NoError(t, SetupGlobalLogger(true, "debug"))
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	require.Error(t, SetupGlobalLogger(true, "loud"))
}

func TestNewLogger(t *testing.T) {
	prevLevel, prevOutput := zerolog.GlobalLevel(), Output
	defer func() {
		zerolog.SetGlobalLevel(prevLevel)
		Output = prevOutput
	}()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	buf := new(bytes.Buffer)
	Output = buf
	assert.True(t, NoColor())

	logger := NewLogger("gateway")
	logger.Info().Str(FieldTxHash, "abcd").Msg("Transaction sent")
	logger.Debug().Msg("hidden")

	out := buf.String()
	assert.Contains(t, out, "[gateway]")
	assert.Contains(t, out, "Transaction sent")
	assert.Contains(t, out, FieldTxHash+"=")
	assert.NotContains(t, out, "hidden")
}
