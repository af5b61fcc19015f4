package request

import "sync"

const loadingTitle = "Loading..."

// Indicator is the global loading affordance owned by the UI.
type Indicator interface {
	ShowLoading(title string)
	HideLoading()
}

// LoadingCounter shares one indicator between every in-flight request that
// opted in. Show fires on 0->1 and hide when the count settles back at 0.
type LoadingCounter struct {
	mu        sync.Mutex
	count     int
	indicator Indicator
}

// NewLoadingCounter binds the counter to an indicator.
func NewLoadingCounter(indicator Indicator) *LoadingCounter {
	return &LoadingCounter{indicator: indicator}
}

// Increment registers a request.
func (l *LoadingCounter) Increment() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.count++
	if l.count == 1 && l.indicator != nil {
		l.indicator.ShowLoading(loadingTitle)
	}
}

// Decrement settles a request. The count never drops below zero.
func (l *LoadingCounter) Decrement() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.count--
	if l.count <= 0 {
		l.count = 0
		if l.indicator != nil {
			l.indicator.HideLoading()
		}
	}
}

// InFlight returns the current count.
func (l *LoadingCounter) InFlight() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}
