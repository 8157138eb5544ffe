// Package registry tracks live queue names within the process.
//
// One physical store must be owned by at most one live queue instance;
// two instances draining the same journal would corrupt ordering. The
// registry is a guarded process-wide name table, lazily constructed; there
// is no singleton queue object, only this table.
package registry

import (
	"errors"
	"sync"

	"github.com/earljwagner/IPOfflineQueue/pkg/id"
)

// ErrDuplicateName reports a second live queue instance over an already
// registered name.
var ErrDuplicateName = errors.New("registry: queue name already in use")

var (
	mu    sync.Mutex
	names map[string]id.ID
)

// Register claims name for the instance identified by instanceID. Returns
// ErrDuplicateName if another live instance holds it.
func Register(name string, instanceID id.ID) error {
	mu.Lock()
	defer mu.Unlock()
	if names == nil {
		names = make(map[string]id.ID)
	}
	if _, ok := names[name]; ok {
		return ErrDuplicateName
	}
	names[name] = instanceID
	return nil
}

// Unregister releases name if it is held by instanceID. Releasing with a
// stale instance ID is a no-op, so a late Close cannot evict a successor.
func Unregister(name string, instanceID id.ID) {
	mu.Lock()
	defer mu.Unlock()
	if cur, ok := names[name]; ok && cur == instanceID {
		delete(names, name)
	}
}

// Names returns a snapshot of the registered queue names.
func Names() []string {
	mu.Lock()
	defer mu.Unlock()
	out := make([]string, 0, len(names))
	for n := range names {
		out = append(out, n)
	}
	return out
}
