package usecase

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Option configures the ambient dependencies shared by use cases.
type Option func(*options)

type options struct {
	log   *zap.Logger
	now   func() time.Time
	newID func() (string, error)
}

// WithLogger sets the logger; nil keeps the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithIDGenerator overrides the random UUID generator.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(o *options) {
		if gen != nil {
			o.newID = gen
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{
		log:   zap.NewNop(),
		now:   time.Now,
		newID: newUUID,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func newUUID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
