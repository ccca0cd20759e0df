package advice

import (
	"cmp"
	"log/slog"
	"reflect"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/requestdto/core/logger"
)

// Option configures discovery.
type Option func(*options)

type options struct {
	log *slog.Logger
}

// WithLogger sets the logger used to report detected roles.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// Discover scans src for components implementing RequestBodyAdvice and/or
// ResponseBodyAdvice. Handles are ordered by Priority; ties keep the order of
// the source. A component name yields at most one handle, the first one seen.
// A nil source yields no handles.
func Discover(src Source, opts ...Option) Handles {
	o := options{log: logger.NewNope()}
	for _, opt := range opts {
		opt(&o)
	}

	if isNil(src) {
		return nil
	}

	components := slices.Clone(src.Components())
	slices.SortStableFunc(components, func(a, b Component) int {
		return cmp.Compare(a.Priority, b.Priority)
	})

	o.log.Info("looking for body advice", logger.Count("components", len(components)))

	seen := make(map[string]struct{}, len(components))
	var handles Handles
	for _, c := range components {
		if _, dup := seen[c.Name]; dup {
			continue
		}

		h := Handle{Name: c.Name, Priority: c.Priority}
		if req, ok := c.Instance.(RequestBodyAdvice); ok {
			h.request = req
			o.log.Info("detected request body advice", logger.Component(c.Name), logger.Priority(c.Priority))
		}
		if resp, ok := c.Instance.(ResponseBodyAdvice); ok {
			h.response = resp
			o.log.Info("detected response body advice", logger.Component(c.Name), logger.Priority(c.Priority))
		}
		if h.request == nil && h.response == nil {
			continue
		}

		seen[c.Name] = struct{}{}
		handles = append(handles, h)
	}
	return handles
}

var (
	cache  sync.Map // Source -> Handles
	keys   sync.Map // Source -> singleflight key
	nextID atomic.Uint64
	group  singleflight.Group
)

// Lookup returns the handles for src, discovering them on first use and
// caching them for the life of the process. Concurrent first calls for the
// same source share one discovery. Sources that cannot be used as map keys,
// including structs holding slices or maps behind interface fields, are
// discovered on every call.
func Lookup(src Source, opts ...Option) Handles {
	if isNil(src) {
		return nil
	}
	if !reflect.ValueOf(src).Comparable() {
		return Discover(src, opts...)
	}

	if h, ok := cache.Load(src); ok {
		return h.(Handles)
	}

	key, _ := keys.LoadOrStore(src, strconv.FormatUint(nextID.Add(1), 10))
	v, _, _ := group.Do(key.(string), func() (any, error) {
		if h, ok := cache.Load(src); ok {
			return h, nil
		}
		h := Discover(src, opts...)
		cache.Store(src, h)
		return h, nil
	})
	return v.(Handles)
}

// ResetCache drops every cached discovery result.
func ResetCache() {
	cache.Clear()
	keys.Clear()
}

func isNil(src Source) bool {
	if src == nil {
		return true
	}
	v := reflect.ValueOf(src)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}
