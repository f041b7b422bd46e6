package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewParsesLevel(t *testing.T) {
	chk := require.New(t)

	logger, err := New("debug", false)
	chk.NoError(err)
	chk.True(logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = New("", true)
	chk.NoError(err)
	chk.False(logger.Core().Enabled(zapcore.DebugLevel))
	chk.True(logger.Core().Enabled(zapcore.InfoLevel))

	_, err = New("chatty", false)
	chk.Error(err)
}
