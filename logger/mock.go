package logger

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockLogger is a Logger for tests. Log calls are checked against testify
// expectations; the level is plain state so loaders can query it freely.
type MockLogger struct {
	mock.Mock

	level Level
}

var _ Logger = (*MockLogger)(nil)

func NewMockLogger() *MockLogger {
	return &MockLogger{level: DebugLevel}
}

// ExpectDebug expects a Debug call with message msg whose key/value pairs
// include every entry of fields.
func (m *MockLogger) ExpectDebug(msg string, fields map[string]any) *mock.Call {
	return m.On("Debug", msg, mock.MatchedBy(func(kv []any) bool {
		got := Fields(kv)
		for k, v := range fields {
			if gv, ok := got[k]; !ok || !assert.ObjectsAreEqual(v, gv) {
				return false
			}
		}
		return true
	})).Return()
}

// Fields turns a key/value list into a map. A trailing key without a value
// and non-string keys are dropped.
func Fields(keysAndValues []any) map[string]any {
	out := make(map[string]any, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if k, ok := keysAndValues[i].(string); ok {
			out[k] = keysAndValues[i+1]
		}
	}
	return out
}

func (m *MockLogger) Debug(msg string, keysAndValues ...any) {
	m.Called(msg, keysAndValues)
}

func (m *MockLogger) Info(msg string, keysAndValues ...any) {
	m.Called(msg, keysAndValues)
}

func (m *MockLogger) Warn(msg string, keysAndValues ...any) {
	m.Called(msg, keysAndValues)
}

func (m *MockLogger) Error(msg string, keysAndValues ...any) {
	m.Called(msg, keysAndValues)
}

func (m *MockLogger) Fatal(msg string, keysAndValues ...any) {
	m.Called(msg, keysAndValues)
}

func (m *MockLogger) SetLevel(level Level) { m.level = level }

func (m *MockLogger) Level() Level { return m.level }

// With returns m; context pairs are not recorded.
func (m *MockLogger) With(...any) Logger { return m }
