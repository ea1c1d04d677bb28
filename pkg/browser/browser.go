// Package browser drives folder navigation for a front-end: it owns the
// root registry, the navigation stack, the active sort and the listing
// currently on screen, and keeps folder sizes flowing into that listing.
//
// All methods must be called from one goroutine. Size results are handed
// back through the dirsize.Executor the calculator was built with. Without
// one, they wait in Updates until the owner drains it.
package browser

import (
	"context"
	"errors"

	"github.com/filetug/foldertug/pkg/dirsize"
	"github.com/filetug/foldertug/pkg/files"
	"github.com/filetug/foldertug/pkg/listing"
	"github.com/filetug/foldertug/pkg/logging"
	"github.com/filetug/foldertug/pkg/metrics"
	"github.com/filetug/foldertug/pkg/navigator"
	"github.com/filetug/foldertug/pkg/roots"
	"github.com/filetug/foldertug/pkg/sorting"
	"go.uber.org/zap"
)

var (
	ErrSortLocked = errors.New("sorting is disabled inside a virtual group")
	ErrShutdown   = errors.New("browser is shut down")
)

// Controls mirrors which user controls are usable in the current state.
type Controls struct {
	BackEnabled      bool
	RegistryEditable bool
	SortEnabled      bool
}

type Browser struct {
	store     files.Store
	registry  *roots.Registry
	nav       *navigator.Navigator
	sizes     *dirsize.Calculator
	ownsSizes bool
	updates   *dirsize.Queue
	logger    *zap.Logger

	sort    sorting.State
	entries []*files.Entry
	current listing.Listing

	ctx           context.Context
	cancel        context.CancelFunc
	listingCancel context.CancelFunc
	closed        bool

	subscribers map[int]func(*files.Entry)
	nextSubID   int
}

func New(store files.Store, o ...Option) *Browser {
	opts := options{sort: sorting.DefaultState()}
	for _, opt := range o {
		opt(&opts)
	}
	if opts.logger == nil {
		opts.logger = logging.L()
	}
	b := &Browser{
		store:       store,
		registry:    roots.NewRegistry(store, opts.logger),
		nav:         navigator.New(),
		sizes:       opts.calculator,
		logger:      opts.logger,
		sort:        opts.sort,
		updates:     dirsize.NewQueue(),
		subscribers: make(map[int]func(*files.Entry)),
	}
	if b.sizes == nil {
		// Options passed by the caller come later and may replace the executor.
		sizeOptions := append([]dirsize.Option{
			dirsize.WithLogger(opts.logger),
			dirsize.WithExecutor(b.updates.Post),
		}, opts.sizeOptions...)
		b.sizes = dirsize.NewCalculator(store, sizeOptions...)
		b.ownsSizes = true
	}
	b.ctx, b.cancel = context.WithCancel(context.Background())
	for _, p := range opts.roots {
		if err := b.addRoot(p); err != nil {
			b.logger.Warn("initial root skipped", logging.Path(p), logging.Err(err))
		}
	}
	b.RootView()
	return b
}

// Updates holds size results when the browser built its own calculator
// and no executor was given. Drain it from the goroutine that calls the
// browser, e.g. after waiting on Updates().Ready().
func (b *Browser) Updates() *dirsize.Queue {
	return b.updates
}

// Render returns the listing on screen.
func (b *Browser) Render() listing.Listing {
	return b.current
}

func (b *Browser) Breadcrumbs() []navigator.Crumb {
	return b.nav.Breadcrumbs(b.registry.Paths())
}

func (b *Browser) Controls() Controls {
	return Controls{
		BackEnabled:      b.nav.CanGoBack(),
		RegistryEditable: b.nav.IsRootView(),
		SortEnabled:      !b.nav.InVirtual(),
	}
}

func (b *Browser) Sort() sorting.State {
	return b.sort
}

func (b *Browser) Roots() []string {
	return b.registry.Paths()
}

// Current returns the folder on top of the stack, if any.
func (b *Browser) Current() (string, bool) {
	return b.nav.Current()
}

// AddRoot registers an existing directory. Adding a known root is not an error.
func (b *Browser) AddRoot(path string) error {
	if b.closed {
		return ErrShutdown
	}
	if err := b.addRoot(path); err != nil {
		b.logger.Warn("add root refused", logging.Path(path), logging.Err(err))
		return err
	}
	if b.nav.IsRootView() {
		b.RootView()
	}
	return nil
}

func (b *Browser) addRoot(path string) error {
	canonical, err := b.store.Abs(path)
	if err != nil {
		return err
	}
	if err = files.CheckDir(b.ctx, b.store, canonical); err != nil {
		return err
	}
	_, err = b.registry.Add(canonical)
	return err
}

// RemoveRoot forgets a root by its exact stored path. Nothing on disk changes.
func (b *Browser) RemoveRoot(path string) bool {
	if b.closed || !b.registry.Remove(path) {
		return false
	}
	if b.nav.IsRootView() {
		b.RootView()
	}
	return true
}

// RootView clears navigation and lists the registered roots.
func (b *Browser) RootView() {
	if b.closed {
		return
	}
	b.nav.Reset()
	paths := b.registry.Paths()
	b.entries = make([]*files.Entry, len(paths))
	for i, p := range paths {
		b.entries[i] = files.NewEntry(p, true, files.Length(b.ctx, b.store, p))
	}
	b.publish(listing.RootView(b.entries, b.sort))
}

// Enter opens a folder under one of the registered roots.
func (b *Browser) Enter(path string) error {
	if b.closed {
		return ErrShutdown
	}
	canonical, err := b.store.Abs(path)
	if err != nil {
		return err
	}
	if err = files.CheckDir(b.ctx, b.store, canonical); err != nil {
		b.logger.Warn("enter refused", logging.Path(canonical), logging.Err(err))
		return err
	}
	if _, ok := navigator.FindRoot(canonical, b.registry.Paths()); !ok {
		b.logger.Warn("enter refused", logging.Path(canonical), logging.Err(navigator.ErrNotUnderRoot))
		return &files.PathError{Op: "enter", Path: canonical, Err: navigator.ErrNotUnderRoot}
	}
	b.nav.Push(canonical)
	b.relist(canonical)
	return nil
}

// Back leaves the current folder, returning to the root view from the
// bottom of the stack. An open virtual group is discarded.
func (b *Browser) Back() {
	if b.closed {
		return
	}
	top, ok := b.nav.Pop()
	if !ok {
		b.RootView()
		return
	}
	b.relist(top)
}

// Refresh re-reads the current location.
func (b *Browser) Refresh() {
	if b.closed {
		return
	}
	if top, ok := b.nav.Current(); ok {
		_, _ = b.nav.ExitVirtual()
		b.relist(top)
		return
	}
	b.RootView()
}

func (b *Browser) relist(dir string) {
	entries, err := files.List(b.ctx, b.store, dir)
	if err != nil {
		b.logger.Warn("unreadable directory", logging.Path(dir), logging.Err(err))
		b.entries = nil
		l := listing.Build(dir, nil, b.sort)
		l.EmptyMessage = listing.UnreadableMessage
		b.publish(l)
		return
	}
	b.entries = entries
	b.publish(listing.Build(dir, entries, b.sort))
}

// EnterVirtual opens the group called name from the current grouped listing.
func (b *Browser) EnterVirtual(name string) error {
	if b.closed {
		return ErrShutdown
	}
	if b.nav.InVirtual() {
		return navigator.ErrAlreadyInVirtualGroup
	}
	g := b.current.FindGroup(name)
	if g == nil {
		return navigator.ErrNoSuchGroup
	}
	if err := b.nav.EnterVirtual(name, b.current); err != nil {
		return err
	}
	b.publish(listing.VirtualView(b.current.Dir, g, b.sort.Direction))
	return nil
}

// ExitVirtual restores the listing shown before EnterVirtual.
func (b *Browser) ExitVirtual() error {
	if b.closed {
		return ErrShutdown
	}
	stashed, err := b.nav.ExitVirtual()
	if err != nil {
		return err
	}
	b.publish(stashed)
	return nil
}

// SetSort changes the sort and rebuilds the current listing.
func (b *Browser) SetSort(key sorting.Key, dir sorting.Direction) error {
	if b.closed {
		return ErrShutdown
	}
	if b.nav.InVirtual() {
		return ErrSortLocked
	}
	b.sort = sorting.State{Key: key, Direction: dir}
	if top, ok := b.nav.Current(); ok {
		l := listing.Build(top, b.entries, b.sort)
		if b.current.EmptyMessage == listing.UnreadableMessage {
			l.EmptyMessage = listing.UnreadableMessage
		}
		b.publish(l)
		return nil
	}
	b.publish(listing.RootView(b.entries, b.sort))
	return nil
}

// SubscribeSizeUpdates registers fn to run after a folder size resolved in
// the current listing. Render already reflects the change when fn runs.
func (b *Browser) SubscribeSizeUpdates(fn func(*files.Entry)) (unsubscribe func()) {
	id := b.nextSubID
	b.nextSubID++
	b.subscribers[id] = fn
	return func() {
		delete(b.subscribers, id)
	}
}

// Shutdown cancels pending size jobs. Their callbacks never fire.
func (b *Browser) Shutdown() {
	if b.closed {
		return
	}
	b.closed = true
	if b.listingCancel != nil {
		b.listingCancel()
	}
	b.cancel()
	if b.ownsSizes {
		b.sizes.Close()
	}
	b.logger.Info("browser shut down")
}

// publish replaces the listing on screen. Size jobs of the previous
// listing that have not started yet are dropped.
func (b *Browser) publish(l listing.Listing) {
	if b.listingCancel != nil {
		b.listingCancel()
	}
	var ctx context.Context
	ctx, b.listingCancel = context.WithCancel(b.ctx)
	b.current = l
	metrics.RecordListing(l.Mode.String())
	for _, e := range l.Entries() {
		if e.IsDir() && !e.Size().IsResolved() {
			b.sizes.Resolve(ctx, e, b.onSizeResolved)
		}
	}
}

func (b *Browser) onSizeResolved(e *files.Entry) {
	if b.closed {
		return
	}
	if b.current.Mode == listing.Normal && b.sort.Key == sorting.BySize {
		b.current = listing.Resort(b.current, b.sort)
	}
	for _, fn := range b.subscribers {
		fn(e)
	}
}
