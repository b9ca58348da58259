package logx

import (
	"strings"
	"testing"

	"github.com/matryer/is"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newMaskedObserver() (*zap.SugaredLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	masked := &maskingCore{
		Core:         core,
		sensitive:    defaultSensitiveKeys(),
		maskPattern:  defaultMaskPattern(),
		replaceValue: "[REDACTED]",
	}
	return zap.New(masked).Sugar(), logs
}

func TestMaskingCore_RedactsSensitiveFields(t *testing.T) {
	is := is.New(t)
	log, logs := newMaskedObserver()

	log.Infow("derived",
		"mnemonic", "abandon abandon about",
		"private_hex", "6cd78b0d69eab1a47bfa53a52b9d8c4331e858b5d7a599270a95d9735fdb0b94",
		"count", 3,
	)

	entries := logs.All()
	is.Equal(len(entries), 1)
	fields := entries[0].ContextMap()
	is.Equal(fields["mnemonic"], "[REDACTED]")
	is.Equal(fields["private_hex"], "[REDACTED]")
	is.Equal(fields["count"], int64(3)) // non-sensitive fields pass through
}

func TestMaskingCore_MasksMessageText(t *testing.T) {
	is := is.New(t)
	log, logs := newMaskedObserver()

	log.Infof("found key %s on chain",
		"6cd78b0d69eab1a47bfa53a52b9d8c4331e858b5d7a599270a95d9735fdb0b94")

	msg := logs.All()[0].Message
	is.True(strings.Contains(msg, "[REDACTED]"))
	is.True(!strings.Contains(msg, "6cd78b"))
}

func TestMaskingCore_WithCarriesRedaction(t *testing.T) {
	is := is.New(t)
	log, logs := newMaskedObserver()

	log.With("seed", "deadbeef").Infow("run started")

	fields := logs.All()[0].ContextMap()
	is.Equal(fields["seed"], "[REDACTED]")
}

func TestMaskingCore_BelowLevelDropsEntry(t *testing.T) {
	is := is.New(t)

	core, logs := observer.New(zapcore.WarnLevel)
	masked := &maskingCore{
		Core:         core,
		sensitive:    defaultSensitiveKeys(),
		maskPattern:  defaultMaskPattern(),
		replaceValue: "[REDACTED]",
	}
	zap.New(masked).Sugar().Infow("too quiet", "mnemonic", "abandon")

	is.Equal(logs.Len(), 0)
}
