package services

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/mrnavastar/launchman/util"
)

// Registry tracks live process handles by generated id. Many readers,
// rare writers: insert on launch, remove on kill.
type Registry struct {
	mu     sync.RWMutex
	serial int
	procs  map[string]*GameProcess
}

func NewRegistry() *Registry {
	return &Registry{procs: make(map[string]*GameProcess)}
}

func (r *Registry) Add(process *GameProcess) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.serial++
	id := fmt.Sprintf("game-%d", r.serial)
	r.procs[id] = process
	return id
}

func (r *Registry) Get(id string) (*GameProcess, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	process, ok := r.procs[id]
	return process, ok
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.procs, id)
}

func (r *Registry) Ids() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.procs))
	for id := range r.procs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Kill terminates a tracked process and removes it from the registry.
// A handle whose process already reached a terminal state is pruned the
// same way, so dead handles never accumulate.
func (r *Registry) Kill(id string) error {
	process, ok := r.Get(id)
	if !ok {
		return util.ErrNoProcess
	}
	err := process.Kill()
	if err != nil && !errors.Is(err, util.ErrNoProcess) {
		return err
	}
	r.Remove(id)
	return err
}

// KillAll terminates every tracked process, returning how many died.
func (r *Registry) KillAll() int {
	killed := 0
	for _, id := range r.Ids() {
		if r.Kill(id) == nil {
			killed++
		}
	}
	return killed
}
