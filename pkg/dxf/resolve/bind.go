package resolve

import (
	"fmt"
	"reflect"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/model"
)

// Bind queues ref for resolution. The target must be stored as T.
func Bind[T any](r *Registry, holder Holder, ref *model.Ref[T]) *PendingRef {
	return r.RegisterPlaceholder(holder, ref.ID, func(h model.Handle, target any) error {
		if _, ok := target.(T); !ok {
			return mismatch[T](target)
		}
		ref.Handle = h
		return nil
	})
}

// BindAll queues every reference of refs.
func BindAll[T any](r *Registry, holder Holder, refs []model.Ref[T]) {
	for i := range refs {
		Bind(r, holder, &refs[i])
	}
}

// Then queues ref like Bind and calls fn with the live target once it has
// been bound. fn may queue further placeholders.
func Then[T any](r *Registry, holder Holder, ref *model.Ref[T], fn func(T)) *PendingRef {
	return r.RegisterPlaceholder(holder, ref.ID, func(h model.Handle, target any) error {
		t, ok := target.(T)
		if !ok {
			return mismatch[T](target)
		}
		ref.Handle = h
		fn(t)
		return nil
	})
}

// Deref returns the live target of a resolved reference.
func Deref[T any](r *Registry, ref model.Ref[T]) (T, bool) {
	t, ok := r.Get(ref.Handle).(T)
	return t, ok
}

func mismatch[T any](target any) error {
	return fmt.Errorf("expected %s, found %T", reflect.TypeOf((*T)(nil)).Elem(), target)
}
