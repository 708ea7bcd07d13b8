package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// VarResolver resolves {{var}} placeholders in script entry points and
// arguments. Built-ins: {{$timestamp}} and {{$uuid}}.
type VarResolver struct {
	now  func() time.Time
	uuid func() (string, error)
}

type VarResolverOption func(*VarResolver)

// WithNow overrides the clock.
func WithNow(now func() time.Time) VarResolverOption {
	return func(r *VarResolver) { r.now = now }
}

// WithUUID sets the generator behind {{$uuid}}.
func WithUUID(gen func() (string, error)) VarResolverOption {
	return func(r *VarResolver) { r.uuid = gen }
}

var errNoUUID = errors.New("no uuid generator configured")

func NewVarResolver(opts ...VarResolverOption) *VarResolver {
	r := &VarResolver{
		now:  time.Now,
		uuid: func() (string, error) { return "", errNoUUID },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Session resolves strings against one variable set. Built-ins are computed
// on first use and then reused, so every {{$uuid}} in a session is the same.
type Session struct {
	vars     Vars
	builtins Vars
	inner    *VarResolver
}

func (r *VarResolver) NewSession(vars Vars) *Session {
	return &Session{
		vars:     Merge(nil, vars),
		builtins: Vars{},
		inner:    r,
	}
}

// ResolveString replaces every {{name}} in s.
func (s *Session) ResolveString(in string) (string, error) {
	if !strings.Contains(in, "{{") {
		return in, nil
	}

	var b strings.Builder
	b.Grow(len(in) + 16)

	rest := in
	for {
		start := strings.Index(rest, "{{")
		if start < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		b.WriteString(rest[:start])
		rest = rest[start+2:]

		end := strings.Index(rest, "}}")
		if end < 0 {
			return "", &OpError{
				Op:   "vars.resolve",
				Kind: KindInvalidConfig,
				Err:  errors.New("unclosed placeholder"),
			}
		}

		name := strings.TrimSpace(rest[:end])
		if name == "" {
			return "", &OpError{
				Op:   "vars.resolve",
				Kind: KindInvalidConfig,
				Err:  errors.New("empty placeholder"),
			}
		}

		val, err := s.lookup(name)
		if err != nil {
			return "", err
		}
		b.WriteString(val)
		rest = rest[end+2:]
	}
}

// ResolveAll resolves each string, reporting the index of the first failure.
func (s *Session) ResolveAll(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	for i, v := range in {
		rv, err := s.ResolveString(v)
		if err != nil {
			return nil, &OpError{
				Op:   "vars.resolve",
				Kind: KindOf(err),
				Err:  fmt.Errorf("arg[%d]: %w", i, err),
			}
		}
		out = append(out, rv)
	}
	return out, nil
}

func (s *Session) lookup(name string) (string, error) {
	if !strings.HasPrefix(name, "$") {
		if v, ok := s.vars[name]; ok {
			return v, nil
		}
		return "", &OpError{
			Op:   "vars.resolve",
			Kind: KindMissingVar,
			Err:  fmt.Errorf("%w: %s", ErrMissingVar, name),
		}
	}

	if v, ok := s.builtins[name]; ok {
		return v, nil
	}

	var v string
	switch name {
	case "$timestamp":
		v = strconv.FormatInt(s.inner.now().Unix(), 10)
	case "$uuid":
		u, err := s.inner.uuid()
		if err != nil {
			return "", &OpError{
				Op:   "vars.builtins.uuid",
				Kind: KindExecution,
				Err:  err,
			}
		}
		v = u
	default:
		return "", &OpError{
			Op:   "vars.resolve",
			Kind: KindMissingVar,
			Err:  fmt.Errorf("%w: unknown builtin %s", ErrMissingVar, name),
		}
	}
	s.builtins[name] = v
	return v, nil
}
