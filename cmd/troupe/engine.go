package main

import (
	"io"
	"os"

	"github.com/aretw0/troupe"
	"github.com/aretw0/troupe/internal/config"
	"github.com/aretw0/troupe/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/troupe/pkg/adapters/redis"
	"github.com/aretw0/troupe/pkg/domain"
	"github.com/aretw0/troupe/pkg/ports"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// newEngine wires the engine from the loaded configuration.
// The returned closer releases the array store.
func newEngine(hooks ...domain.LifecycleHooks) (*troupe.Engine, func() error, error) {
	store, closer := newStore(cfg)

	eng, err := troupe.New(
		troupe.WithLogger(logger),
		troupe.WithArrayStore(store),
		troupe.WithLifecycleHooks(domain.MergeHooks(hooks...)),
	)
	if err != nil {
		_ = closer()
		return nil, nil, err
	}
	return eng, closer, nil
}

func newStore(c *config.Config) (ports.ArrayStore, func() error) {
	if c.Store.Backend == "redis" {
		store := redisAdapter.New(c.Store.Redis.Addr, c.Store.Redis.Password, c.Store.Redis.DB,
			redisAdapter.WithPrefix(c.Store.Redis.Prefix))
		logger.Debug("Using redis array store", "addr", c.Store.Redis.Addr, "db", c.Store.Redis.DB)
		return store, store.Close
	}
	return memory.NewStore(c.SeedArrays()...), func() error { return nil }
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// colorProfile resolves report.color against the output stream.
func colorProfile(w io.Writer) termenv.Profile {
	switch cfg.Report.Color {
	case "always":
		return termenv.ANSI256
	case "never":
		return termenv.Ascii
	}
	if isTerminal(w) {
		return termenv.NewOutput(w).Profile
	}
	return termenv.Ascii
}
