package testutil

import (
	"sync"
	"time"

	"mindd/internal/mailer"
	"mindd/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// CountByLevel returns how many entries were logged at the given level.
func (m *MockLogger) CountByLevel(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockNotifier implements mailer.Notifier and records every dispatch.
// FailFor makes Send fail for specific recipients; FailAll fails every
// call.
type MockNotifier struct {
	mu      sync.Mutex
	Sent    []SentMessage
	FailFor map[string]error
	FailAll error
}

type SentMessage struct {
	Recipient string
	Kind      mailer.TemplateKind
	Values    map[string]string
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{FailFor: make(map[string]error)}
}

func (m *MockNotifier) Send(recipient string, kind mailer.TemplateKind, values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAll != nil {
		return m.FailAll
	}
	if err, ok := m.FailFor[recipient]; ok {
		return err
	}
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	m.Sent = append(m.Sent, SentMessage{Recipient: recipient, Kind: kind, Values: copied})
	return nil
}

// SentOfKind returns the recorded dispatches of one template kind.
func (m *MockNotifier) SentOfKind(kind mailer.TemplateKind) []SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []SentMessage
	for _, s := range m.Sent {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

// MockClock implements providers.Clock with a settable time.
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewMockClock(now time.Time) *MockClock {
	return &MockClock{now: now}
}

func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *MockClock) Set(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements persistence.CompressorInterface with
// injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

// MockMetrics implements providers.MetricsProviderInterface and counts
// calls.
type MockMetrics struct {
	mu            sync.Mutex
	Requests      int
	CacheHits     int
	CacheMisses   int
	Logins        int
	PlansCreated  map[string]int
	PlansReaped   int
	Notifications map[string]int // key: "kind:outcome"
	JobRuns       map[string]int // key: "job:outcome"
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		PlansCreated:  make(map[string]int),
		Notifications: make(map[string]int),
		JobRuns:       make(map[string]int),
	}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) IncLogins() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logins++
}

func (m *MockMetrics) IncPlansCreated(level string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PlansCreated[level]++
}

func (m *MockMetrics) IncPlansReaped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PlansReaped++
}

func (m *MockMetrics) IncNotifications(kind string, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Notifications[kind+":"+outcomeLabel(success)]++
}

func (m *MockMetrics) IncJobRuns(job string, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.JobRuns[job+":"+outcomeLabel(success)]++
}

func (m *MockMetrics) ObserveJobDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration)   {}

func outcomeLabel(success bool) string {
	if success {
		return "ok"
	}
	return "error"
}
