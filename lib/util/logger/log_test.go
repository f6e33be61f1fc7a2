package logger

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogger_ReturnsSingleton(t *testing.T) {
	assert.Same(t, GetLogger(), GetLogger())
}

func TestSetLevel(t *testing.T) {
	l := GetLogger()
	defer SetLevel("off")

	tests := []struct {
		name string
		want logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"INFO", logrus.InfoLevel},
		{"warning", logrus.WarnLevel},
		{" error ", logrus.ErrorLevel},
		{"bogus", logrus.DebugLevel},
		{"off", logrus.PanicLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetLevel(tt.name)
			assert.Equal(t, tt.want, l.GetLevel())
		})
	}
	assert.Equal(t, io.Discard, l.Out)
}

func TestEntry_KeepsFields(t *testing.T) {
	l := GetLogger()
	hook := test.NewLocal(l.Logger)
	defer hook.Reset()
	SetLevel("debug")
	l.SetOutput(io.Discard)
	defer SetLevel("off")

	l.WithFields(Fields{"at": "TestEntry_KeepsFields"}).WithField("file", "a.xml").Info("hello")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "hello", entry.Message)
	assert.Equal(t, "TestEntry_KeepsFields", entry.Data["at"])
	assert.Equal(t, "a.xml", entry.Data["file"])
}
