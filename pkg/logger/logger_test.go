package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/webapp-acceptance/pkg/logger"
)

func TestNewWithWriter_RespetaNivel(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter(&buf, "warn")

	l.Info().Msg("no debe aparecer")
	l.Warn().Str("dataset", "customer-sale").Msg("visible")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1, "solo el warn debe escribirse")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "customer-sale", entry["dataset"])
	assert.Equal(t, "visible", entry["message"])
}

func TestNamed_AgregaComponente(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter(&buf, "debug").Named("dbsetup")

	l.Debug().Msg("lanzado")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "dbsetup", entry["component"])
}

func TestNivelDesconocido_UsaInfo(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter(&buf, "verbose")

	l.Debug().Msg("descartado")
	assert.Zero(t, buf.Len())
	l.Info().Msg("escrito")
	assert.NotZero(t, buf.Len())
}
