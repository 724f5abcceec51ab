package logger

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestForCarriesRequestID(t *testing.T) {
	ctx := ContextWithID(context.Background(), "req-1")
	entry := For(ctx)
	assert.Equal(t, "req-1", entry.Data["request_id"])
}

func TestForWithoutRequestID(t *testing.T) {
	entry := For(context.Background())
	_, ok := entry.Data["request_id"]
	assert.False(t, ok)
}

func TestSetup(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)

	Setup("debug", "text")
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	Setup("nonsense", "json")
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
	_, isJSON := logrus.StandardLogger().Formatter.(*logrus.JSONFormatter)
	assert.True(t, isJSON)
}
