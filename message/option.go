package message

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	mrand "math/rand"
)

// DefaultFilenamePrefix is the start of every generated attachment filename.
const DefaultFilenamePrefix = "attachment-"

type builderConfig struct {
	logger   *slog.Logger
	filename func() string
}

// Option refers to options that may be passed to NewBuilder or Assemble to
// modify how the message is built.
type Option func(c *builderConfig)

// WithLogger is an Option that reports every field that had to be skipped or
// degraded, at debug level. The default is to report nothing.
func WithLogger(l *slog.Logger) Option {
	return func(c *builderConfig) { c.logger = l }
}

// WithFilenameGenerator is an Option that replaces the function used to name
// attachments that arrive without a filename. The default is
// RandomFilename(DefaultFilenamePrefix).
func WithFilenameGenerator(gen func() string) Option {
	return func(c *builderConfig) { c.filename = gen }
}

// RandomFilename returns a filename generator producing the prefix followed by
// 16 random hex digits.
func RandomFilename(prefix string) func() string {
	return func() string {
		return prefix + randomToken(rand.Reader)
	}
}

// randomToken returns 16 hex digits read from r. If r fails, the digits come
// from math/rand instead, which is fine for naming things but nothing more.
func randomToken(r io.Reader) string {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return fmt.Sprintf("%016x", mrand.Uint64())
	}
	return hex.EncodeToString(b[:])
}

func newBuilderConfig(opts []Option) *builderConfig {
	c := &builderConfig{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		filename: RandomFilename(DefaultFilenamePrefix),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return c
}
