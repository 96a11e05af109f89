package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tagihan-api/pkg/logger"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, logger.ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, logger.ParseLevel(" warn "))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel("verbose"))
}

func TestNew_JSONConComponente(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})

	comp := l.Component("billing")
	comp.Info().Int64("customer_id", 7).Msg("cliente actualizado")
	l.Debug().Msg("no debe salir")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "billing", entry["component"])
	assert.Equal(t, float64(7), entry["customer_id"])
	assert.Equal(t, "cliente actualizado", entry["message"])
}
