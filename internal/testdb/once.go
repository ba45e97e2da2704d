package testdb

import "sync"

// onceErr runs a function once and reports its error to every caller,
// including the ones that arrive after the first.
type onceErr struct {
	once sync.Once
	err  error
}

// Do runs fn on the first call and returns its error on every call.
func (o *onceErr) Do(fn func() error) error {
	o.once.Do(func() {
		o.err = fn()
	})
	return o.err
}
