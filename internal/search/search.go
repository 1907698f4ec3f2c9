package search

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/hanpama/deepsearch/internal/eventbus"
	"github.com/hanpama/deepsearch/internal/events"
	"github.com/hanpama/deepsearch/internal/reqid"
)

// Searcher holds an immutable search configuration. It is safe for
// concurrent use; every call to Search has its own state.
type Searcher struct {
	opts options
}

// New builds a Searcher from opts.
func New(opts ...Option) (*Searcher, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.verbosity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidVerbosity, o.verbosity)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return &Searcher{opts: o}, nil
}

// Search builds a Searcher from opts and runs a single search.
func Search(ctx context.Context, root, item any, opts ...Option) (*Result, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return s.Search(ctx, root, item), nil
}

// Verbosity returns the configured verbose level.
func (s *Searcher) Verbosity() int { return s.opts.verbosity }

// Search walks root looking for item. ctx is used for event publication only;
// the walk always runs to completion.
func (s *Searcher) Search(ctx context.Context, root, item any) *Result {
	ctx, _ = reqid.Ensure(ctx)
	item = indirect(item)
	st := &state{
		ctx:      ctx,
		opts:     &s.opts,
		item:     item,
		itemText: fmt.Sprint(item),
		result:   newResult(s.opts.verbosity),
	}

	start := time.Now()
	eventbus.Publish(ctx, events.SearchStart{
		Item:         st.itemText,
		Verbosity:    s.opts.verbosity,
		ExcludePaths: len(s.opts.excludePaths),
		ExcludeTypes: len(s.opts.excludeTypes) + len(s.opts.excludeNames),
	})

	st.search(root, Root, ancestry(nil).with(root))
	st.result.compact()

	eventbus.Publish(ctx, events.SearchFinish{
		Item:          st.itemText,
		MatchedPaths:  countOf(st.result.MatchedPaths),
		MatchedValues: countOf(st.result.MatchedValues),
		Unprocessed:   len(st.result.Unprocessed),
		Advisories:    st.advisories,
		Duration:      time.Since(start),
	})
	return st.result
}

func countOf(m Matches) int {
	if m == nil {
		return 0
	}
	return m.Len()
}

// state is the per-search working set.
type state struct {
	ctx        context.Context
	opts       *options
	item       any
	itemText   string
	result     *Result
	advisories int
}

// entry is one child of a mapping or object.
type entry struct {
	key   any
	value any
}

func (st *state) skip(node any, path string) bool {
	if _, ok := st.opts.excludePaths[path]; ok {
		return true
	}
	return st.typeExcluded(node)
}

func (st *state) typeExcluded(node any) bool {
	t := reflect.TypeOf(node)
	if t == nil {
		return false
	}
	if _, ok := st.opts.excludeTypes[t]; ok {
		return true
	}
	_, ok := st.opts.excludeNames[t.String()]
	return ok
}

// search is the dispatcher.
func (st *state) search(node any, path string, anc ancestry) {
	if st.skip(node, path) {
		return
	}
	if unwrapped := indirect(node); reflect.TypeOf(unwrapped) != reflect.TypeOf(node) {
		if st.typeExcluded(unwrapped) {
			return
		}
		node = unwrapped
	}

	switch {
	case isString(node) && isString(st.item):
		st.visitString(node, path)
		return
	case isString(node):
		return
	case node == nil || isNumber(node):
		st.visitNumber(node, path)
		return
	}

	rv := reflect.ValueOf(node)
	switch rv.Kind() {
	case reflect.Map:
		if isSet(rv.Type()) {
			st.advise(path)
			st.visitSequence(setMembers(rv), path, anc)
			return
		}
		st.visitMapping(mapEntries(rv), path, anc, false)
	case reflect.Array:
		st.visitTuple(node, rv, path, anc)
	case reflect.Slice:
		st.visitSequence(sliceElems(rv), path, anc)
	default:
		st.visitObject(node, path, anc)
	}
}

// advise warns that positional paths into a set are not stable indexes.
func (st *state) advise(path string) {
	if st.advisories >= st.opts.advisoryLimit {
		return
	}
	st.advisories++
	st.opts.logger.WarnContext(st.ctx,
		"set detected in the path: sets do not support indexing, positional paths are reported anyway",
		"path", path,
	)
	eventbus.Publish(st.ctx, events.UnorderedCollection{Path: path})
}

// indirect unwraps interfaces and pointers. Pointers to structs are kept so
// that methods with pointer receivers remain visible; nil unwraps to nil.
func indirect(v any) any {
	if v == nil {
		return nil
	}
	if t, ok := v.(*time.Time); ok {
		if t == nil {
			return nil
		}
		return *t
	}
	rv := reflect.ValueOf(v)
	for {
		switch rv.Kind() {
		case reflect.Pointer:
			if rv.IsNil() {
				return nil
			}
			if rv.Elem().Kind() == reflect.Struct {
				return rv.Interface()
			}
			rv = rv.Elem()
		case reflect.Interface:
			if rv.IsNil() {
				return nil
			}
			rv = rv.Elem()
		default:
			return rv.Interface()
		}
	}
}
