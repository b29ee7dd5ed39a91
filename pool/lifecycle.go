package pool

import (
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

var (
	errNilCreate  = errors.New("lifecycle Create must be provided")
	errNilDestroy = errors.New("lifecycle Destroy must be provided")
)

// CreationError reports a Create failure during Get. The pool performs
// no state mutation when creation fails; the failed attempt is never
// registered or queued.
type CreationError struct {
	Err error
}

func (e *CreationError) Error() string {
	return "create pooled object: " + e.Err.Error()
}

func (e *CreationError) Unwrap() error {
	return e.Err
}

// Lifecycle supplies the capability set for pooled objects. Create and
// Destroy are required; the hooks are optional and default to no-ops
// when nil. All four are invoked outside any pool-held lock, so they
// may block without stalling unrelated Get/Put calls or the controller.
//
// Create must return a pointer to a distinct allocation: the pool keys
// its in-use tracking on the object's address and installs a finalizer
// on it.
type Lifecycle[T any] struct {
	Create    func() (T, error)
	Destroy   func(T) error
	OnDequeue func(T)
	OnEnqueue func(T)
}

func validateLifecycle[T any](lifecycle Lifecycle[T]) error {
	if lifecycle.Create == nil {
		return errNilCreate
	}
	if lifecycle.Destroy == nil {
		return errNilDestroy
	}
	if kind := reflect.TypeOf((*T)(nil)).Elem().Kind(); kind != reflect.Ptr {
		return fmt.Errorf("pooled type must be a pointer, got %s", kind)
	}
	return nil
}

// invokeDequeueHook runs OnDequeue for a reused object. A panic in the
// hook is recovered and logged; the object is still handed out.
func (s *poolState[T]) invokeDequeueHook(obj T) {
	hook := s.lifecycle.OnDequeue
	if hook == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("onDequeue hook panicked", zap.Any("panic", r))
		}
	}()
	hook(obj)
}

// dispatchEnqueueHook runs OnEnqueue fire-and-forget. Its completion is
// not ordered relative to Put returning or to a later Get of the same
// object.
func (s *poolState[T]) dispatchEnqueueHook(obj T) {
	hook := s.lifecycle.OnEnqueue
	if hook == nil {
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("onEnqueue hook panicked", zap.Any("panic", r))
			}
		}()
		hook(obj)
	}()
}

// destroyObject invokes Destroy with failures isolated per call: errors
// and panics are logged and reported to the caller, never propagated to
// the goroutine that triggered the destruction.
func (s *poolState[T]) destroyObject(obj T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("destroy hook panicked: %v", r)
			s.logger.Error("destroy hook panicked", zap.Any("panic", r))
		}
	}()

	s.stats.objectsDestroyed.Add(1)
	if err = s.lifecycle.Destroy(obj); err != nil {
		s.logger.Error("destroy hook failed", zap.Error(err))
	}
	return err
}
