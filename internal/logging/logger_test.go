package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, GetLevel("debug"))
	assert.Equal(t, logrus.DebugLevel, GetLevel("DEBUG"))
	assert.Equal(t, logrus.WarnLevel, GetLevel("warn"))
	assert.Equal(t, logrus.WarnLevel, GetLevel("warning"))
	assert.Equal(t, logrus.ErrorLevel, GetLevel("error"))
	assert.Equal(t, logrus.TraceLevel, GetLevel("trace"))
	assert.Equal(t, logrus.InfoLevel, GetLevel("info"))
	assert.Equal(t, logrus.InfoLevel, GetLevel(""))
	assert.Equal(t, logrus.InfoLevel, GetLevel("chatty"))
}

func TestSetupWritesToFile(t *testing.T) {
	std := logrus.StandardLogger()
	prevOut, prevLevel, prevFormatter := std.Out, std.GetLevel(), std.Formatter
	t.Cleanup(func() {
		logrus.SetOutput(prevOut)
		logrus.SetLevel(prevLevel)
		logrus.SetFormatter(prevFormatter)
	})

	name := filepath.Join(t.TempDir(), "logs", "coachlix")
	closer := Setup(SetupParams{LogFileName: name, LogLevel: "warn", LogFormatJSON: true})

	logrus.Info("not written")
	logrus.WithField("exercise", "Squat").Warn("saving exercise progress failed")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(name + ".log")
	require.NoError(t, err)
	assert.NotContains(t, string(data), "not written")
	assert.Contains(t, string(data), `"exercise":"Squat"`)
	assert.Contains(t, string(data), `"level":"warning"`)
}

func TestSetupStdout(t *testing.T) {
	std := logrus.StandardLogger()
	prevOut, prevLevel, prevFormatter := std.Out, std.GetLevel(), std.Formatter
	t.Cleanup(func() {
		logrus.SetOutput(prevOut)
		logrus.SetLevel(prevLevel)
		logrus.SetFormatter(prevFormatter)
	})

	closer := Setup(SetupParams{LogLevel: "debug"})
	assert.NoError(t, closer.Close())
	assert.Equal(t, os.Stdout, std.Out)
	assert.Equal(t, logrus.DebugLevel, std.GetLevel())
}
