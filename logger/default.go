package logger

import (
	"os"
	"sync"
)

var (
	defMu     sync.RWMutex
	defLogger Logger = NewSlog(os.Stderr, InfoLevel, false)
)

// GetLogger returns the logger used by loads that were not given one.
func GetLogger() Logger {
	defMu.RLock()
	defer defMu.RUnlock()
	return defLogger
}

// SetLogger replaces the default logger. A nil l is ignored.
func SetLogger(l Logger) {
	if l == nil {
		return
	}
	defMu.Lock()
	defLogger = l
	defMu.Unlock()
}
