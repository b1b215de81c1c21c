package log

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogNotInitialized(t *testing.T) {
	Info("Test log.Info", " value is ", 10)
	Infof("Test log.Infof %d", 10)
	Debugf("Test log.Debugf %d", 10)
	Warnf("Test log.Warnf %d", 10)
}

func TestLog(t *testing.T) {
	cfg := Config{
		Environment: EnvironmentDevelopment,
		Level:       "debug",
		Outputs:     []string{"stderr"},
	}

	Init(cfg)

	Info("Test log.Info", " value is ", 10)
	Infof("Test log.Infof %d", 10)
	Infow("Test log.Infow", "value", 10)
	Debugf("Test log.Debugf %d", 10)
	Error("Test log.Error", " value is ", 10)
	Errorf("Test log.Errorf %d", 10)
	Warn("Test log.Warn", " value is ", 10)
	Warnf("Test log.Warnf %d", 10)
}

func TestNewLoggerInvalidLevel(t *testing.T) {
	_, _, err := NewLogger(Config{
		Environment: EnvironmentProduction,
		Level:       "not-a-level",
		Outputs:     []string{"stderr"},
	})
	require.Error(t, err)
}

func TestWithFields(t *testing.T) {
	logger := WithFields("module", "test")
	require.NotNil(t, logger.GetSugaredLogger())
	logger.Infof("message with fields %d", 1)
	logger.WithFields("sub", "child").Debugf("child logger")
}
