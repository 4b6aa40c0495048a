package logger

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInit_ParsesLevelAndFormat(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	Init("info", "text")

	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())
	_, isJSON := Log.Formatter.(*logrus.JSONFormatter)
	assert.True(t, isJSON, "LOG_FORMAT=json should select the JSON formatter")
}

func TestInit_BadLevelFallsBackToInfo(t *testing.T) {
	t.Setenv("LOG_LEVEL", "shouting")
	t.Setenv("LOG_FORMAT", "text")
	Init("info", "json")

	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
	_, isText := Log.Formatter.(*logrus.TextFormatter)
	assert.True(t, isText)
}

func TestDiscard_IsIndependentOfLog(t *testing.T) {
	e := Discard()
	assert.NotSame(t, Log, e.Logger)
	assert.Equal(t, io.Discard, e.Logger.Out)
}
