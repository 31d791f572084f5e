package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerWritesModuleAndDetails(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &ZapLogger{logger: zap.New(core)}

	l.Info("PAYMENT", "Payment recorded", map[string]interface{}{"amount": "29"})
	l.Error("STORE", "Persist failed", map[string]interface{}{"error": "disk full"})
	l.Warn("AUTH", "No details", nil)

	entries := logs.All()
	require.Len(t, entries, 3)

	assert.Equal(t, "Payment recorded", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "PAYMENT", fields["module"])
	assert.Equal(t, map[string]interface{}{"amount": "29"}, fields["details"])

	assert.Contains(t, entries[1].ContextMap(), "error_ref")
	assert.Equal(t, map[string]interface{}{}, entries[2].ContextMap()["details"])
}

func TestNewZapLoggerCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l := NewZapLogger(path, true)
	l.Info("BILLING", "hello", nil)
	_ = l.Sync()
	assert.FileExists(t, path)
}
