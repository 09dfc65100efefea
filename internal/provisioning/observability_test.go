package provisioning

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockObserver is a test implementation of Observer that records events
// and formatted log lines.
type MockObserver struct {
	events   []Event
	infos    []string
	warnings []string
	errors   []string
}

func NewMockObserver() *MockObserver {
	return &MockObserver{}
}

func (m *MockObserver) Infof(format string, v ...any) {
	m.infos = append(m.infos, fmt.Sprintf(format, v...))
}

func (m *MockObserver) Warnf(format string, v ...any) {
	m.warnings = append(m.warnings, fmt.Sprintf(format, v...))
}

func (m *MockObserver) Errorf(format string, v ...any) {
	m.errors = append(m.errors, fmt.Sprintf(format, v...))
}

func (m *MockObserver) Event(event Event) {
	m.events = append(m.events, event)
}

func (m *MockObserver) Progress(_ string, _, _ int) {}

func TestLogPhaseStart(t *testing.T) {
	t.Parallel()
	observer := NewMockObserver()

	LogPhaseStart(observer, "base images")

	require.Len(t, observer.events, 1)
	assert.Equal(t, EventPhaseStarted, observer.events[0].Type)
	assert.Equal(t, "base images", observer.events[0].Phase)
}

func TestLogPhaseComplete(t *testing.T) {
	t.Parallel()
	observer := NewMockObserver()

	LogPhaseComplete(observer, "base images", 1500*time.Millisecond)

	require.Len(t, observer.events, 1)
	assert.Equal(t, EventPhaseCompleted, observer.events[0].Type)
	assert.Contains(t, observer.events[0].Message, "1.5s")
}

func TestLogPhaseFailed(t *testing.T) {
	t.Parallel()
	observer := NewMockObserver()

	LogPhaseFailed(observer, "orb 2/5", errors.New("mount: device busy"))

	require.Len(t, observer.events, 1)
	assert.Equal(t, EventPhaseFailed, observer.events[0].Type)
	assert.Equal(t, "orb 2/5", observer.events[0].Phase)
	assert.Contains(t, observer.events[0].Message, "device busy")
}

func TestLogOrbRegistered(t *testing.T) {
	t.Parallel()
	observer := NewMockObserver()

	LogOrbRegistered(observer, "orb 1/1", "abcdef12", "hopeful-mongoose")

	require.Len(t, observer.events, 1)
	assert.Equal(t, EventOrbRegistered, observer.events[0].Type)
	assert.Equal(t, "abcdef12", string(observer.events[0].Orb))
	assert.Contains(t, observer.events[0].Message, "hopeful-mongoose")
}

func TestLogOrbExists(t *testing.T) {
	t.Parallel()
	observer := NewMockObserver()

	LogOrbExists(observer, "batch", "abcdef12", "hopeful-mongoose")

	require.Len(t, observer.events, 1)
	assert.Equal(t, EventOrbExists, observer.events[0].Type)
	assert.Equal(t, "abcdef12", string(observer.events[0].Orb))
}
