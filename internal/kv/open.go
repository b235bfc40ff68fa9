package kv

import "fmt"

// Backend names accepted by Open.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendBolt   = "bolt"
	BackendBadger = "badger"
	BackendRedis  = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Backend string
	Path    string // bolt file or badger directory
	Redis   RedisConfig
}

// Open creates the backend named by opts.Backend. BackendNone yields a nil
// Backend, which the store treats as "no persistence available".
func Open(opts Options) (Backend, error) {
	switch opts.Backend {
	case BackendNone:
		return nil, nil
	case BackendMemory:
		return NewMemory(), nil
	case "", BackendBolt:
		if opts.Path == "" {
			return nil, fmt.Errorf("bolt backend requires a path")
		}
		b, err := OpenBolt(opts.Path)
		if err != nil {
			return nil, err
		}
		return b, nil
	case BackendBadger:
		b, err := OpenBadger(opts.Path)
		if err != nil {
			return nil, err
		}
		return b, nil
	case BackendRedis:
		if opts.Redis.Addr == "" {
			return nil, fmt.Errorf("redis backend requires an address")
		}
		r, err := NewRedis(opts.Redis)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", opts.Backend)
	}
}
