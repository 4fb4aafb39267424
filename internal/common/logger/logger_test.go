package logger

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel(" WARN "))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

func TestWrapperWritesSortedFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).WithFields(map[string]interface{}{"taskType": "score-mission"})

	log.Info("scored", map[string]interface{}{"overall": 82, "analysisId": "a-1"})
	log.WithError(errors.New("boom")).Error("failed", nil)

	entries := logs.All()
	assert.Len(t, entries, 2)

	ctx := entries[0].ContextMap()
	assert.Equal(t, "score-mission", ctx["taskType"])
	assert.EqualValues(t, 82, ctx["overall"])
	assert.Equal(t, "analysisId", entries[0].Context[1].Key)
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
}

func TestMapToZapFields_NamedErrors(t *testing.T) {
	fields := mapToZapFields(map[string]interface{}{"cause": errors.New("x")})
	assert.Len(t, fields, 1)
	assert.Equal(t, zapcore.ErrorType, fields[0].Type)
	assert.Nil(t, mapToZapFields(nil))
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", Preview("  short "))
	long := strings.Repeat("é", 100)
	got := Preview(long)
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.Equal(t, maxPreview+1, len([]rune(got)))
}

func TestConstructors(t *testing.T) {
	assert.NotNil(t, NewNoOpLogger())
	assert.NotNil(t, NewStructured("info", "json"))
	assert.NotNil(t, NewFromOptions(Options{Level: "debug", Format: "console", Output: "stderr"}))
	NewTestLogger(t).With(map[string]interface{}{"k": "v"}).Debug("ok", nil)
}
