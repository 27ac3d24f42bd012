package widget

import "sync"

// Dispatcher delivers handler calls and completions on the host's UI
// context. Script evaluations and page messages complete on arbitrary
// goroutines; everything the host observes goes through a Dispatcher first.
type Dispatcher interface {
	Dispatch(fn func())
}

// DispatcherFunc adapts a function to the Dispatcher interface.
type DispatcherFunc func(fn func())

func (d DispatcherFunc) Dispatch(fn func()) { d(fn) }

// serialDispatcher is the bridge-owned default: one goroutine delivering
// callbacks in submission order, the way a UI run loop would.
type serialDispatcher struct {
	fns  chan func()
	done chan struct{}
	once sync.Once
}

func newSerialDispatcher() *serialDispatcher {
	d := &serialDispatcher{
		fns:  make(chan func(), 128),
		done: make(chan struct{}),
	}
	go d.loop()
	return d
}

func (d *serialDispatcher) loop() {
	for {
		// Check done on its own first: a select with both channels ready
		// picks at random and could deliver a callback after Close.
		select {
		case <-d.done:
			return
		default:
		}
		select {
		case <-d.done:
			return
		case fn := <-d.fns:
			fn()
		}
	}
}

func (d *serialDispatcher) Dispatch(fn func()) {
	select {
	case <-d.done:
		// Closed: stray callbacks are dropped, never delivered late.
		return
	default:
	}
	select {
	case <-d.done:
	case d.fns <- fn:
	}
}

func (d *serialDispatcher) Close() {
	d.once.Do(func() { close(d.done) })
}
