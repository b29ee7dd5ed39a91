package pool

import (
	"reflect"
	"runtime"
	"sync"
)

// inUseRegistry tracks checked-out objects by pointer address. Entries
// hold no reference to the object itself, so registry membership never
// keeps a leaked object alive; the finalizer installed by trackNew
// clears the entry when the runtime reclaims the object.
type inUseRegistry struct {
	mu      sync.Mutex
	entries map[uintptr]struct{}
}

func newInUseRegistry() *inUseRegistry {
	return &inUseRegistry{
		entries: make(map[uintptr]struct{}),
	}
}

func (r *inUseRegistry) add(key uintptr) {
	r.mu.Lock()
	r.entries[key] = struct{}{}
	r.mu.Unlock()
}

func (r *inUseRegistry) remove(key uintptr) {
	r.mu.Lock()
	delete(r.entries, key)
	r.mu.Unlock()
}

func (r *inUseRegistry) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// objKey derives the registry key from the object's address. The key
// stays valid for the object's whole lifetime: the runtime does not
// recycle finalizable memory before the finalizer has run, and the
// finalizer removes the entry first.
func objKey[T any](obj T) uintptr {
	return reflect.ValueOf(obj).Pointer()
}

// trackNew installs the reclamation finalizer on a freshly created
// object. Installed once per object, never per checkout. The closure
// must capture the registry only; holding poolState here would keep the
// whole pool reachable for as long as any object lives.
func (s *poolState[T]) trackNew(obj T) {
	reg := s.inUse
	runtime.SetFinalizer(obj, func(v T) {
		reg.remove(objKey(v))
	})
}
