package remcache

import (
	"github.com/unkn0wn-root/remcache/store"
)

// LifecycleLogger adapts a Logger into store.LifecycleEvents so connection
// state transitions land in the application log. Purely diagnostic: handlers
// emit one line and return.
type LifecycleLogger struct{ Log Logger }

var _ store.LifecycleEvents = LifecycleLogger{}

func (l LifecycleLogger) Connecting(addr string) {
	l.Log.Info("store connecting", Fields{"addr": addr})
}

func (l LifecycleLogger) Ready(addr string) {
	l.Log.Info("store ready", Fields{"addr": addr})
}

func (l LifecycleLogger) Reconnecting(addr string) {
	l.Log.Warn("store reconnecting", Fields{"addr": addr})
}

func (l LifecycleLogger) Error(err error) {
	l.Log.Error("store connection error", Fields{"err": err})
}
