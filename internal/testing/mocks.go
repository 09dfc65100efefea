package testing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/worldcoin/orb-registration/internal/artifacts"
	"github.com/worldcoin/orb-registration/internal/identity"
	"github.com/worldcoin/orb-registration/internal/image"
	"github.com/worldcoin/orb-registration/internal/provisioning"
)

// CallLog records calls across a set of mocks in invocation order, so
// tests can assert the ordering of steps that span multiple backends.
type CallLog struct {
	calls []string
}

func (l *CallLog) record(format string, v ...any) {
	l.calls = append(l.calls, fmt.Sprintf(format, v...))
}

// Calls returns the recorded calls in order.
func (l *CallLog) Calls() []string {
	return l.calls
}

// MockObserver is a test implementation of provisioning.Observer that
// records log lines and events.
type MockObserver struct {
	Infos    []string
	Warnings []string
	Errors   []string
	Events   []provisioning.Event
}

func NewMockObserver() *MockObserver {
	return &MockObserver{}
}

func (m *MockObserver) Infof(format string, v ...any) {
	m.Infos = append(m.Infos, fmt.Sprintf(format, v...))
}

func (m *MockObserver) Warnf(format string, v ...any) {
	m.Warnings = append(m.Warnings, fmt.Sprintf(format, v...))
}

func (m *MockObserver) Errorf(format string, v ...any) {
	m.Errors = append(m.Errors, fmt.Sprintf(format, v...))
}

func (m *MockObserver) Event(event provisioning.Event) {
	m.Events = append(m.Events, event)
}

func (m *MockObserver) Progress(_ string, _, _ int) {}

// HasEvent reports whether an event of the given type was observed.
func (m *MockObserver) HasEvent(t provisioning.EventType) bool {
	for _, e := range m.Events {
		if e.Type == t {
			return true
		}
	}
	return false
}

// MockManagement is a test implementation of provisioning.ManagementClient.
type MockManagement struct {
	Log *CallLog

	Name    string
	Existed bool
	Token   string

	CreateErr  error
	ChannelErr error
	TokenErr   error
}

func (m *MockManagement) CreateOrFetch(_ context.Context, id identity.OrbID, buildVersion, manufacturer, platform string) (string, bool, error) {
	m.Log.record("create %s %s %s %s", id, buildVersion, manufacturer, platform)
	if m.CreateErr != nil {
		return "", false, m.CreateErr
	}
	return m.Name, m.Existed, nil
}

func (m *MockManagement) SetChannel(_ context.Context, id identity.OrbID, channel string) error {
	m.Log.record("channel %s %s", id, channel)
	return m.ChannelErr
}

func (m *MockManagement) IssueToken(_ context.Context, id identity.OrbID) (string, error) {
	m.Log.record("token %s", id)
	if m.TokenErr != nil {
		return "", m.TokenErr
	}
	return m.Token, nil
}

// MockInventory is a test implementation of provisioning.InventoryClient.
type MockInventory struct {
	Log *CallLog
	Err error
}

func (m *MockInventory) RegisterDevice(_ context.Context, id identity.OrbID, name, deviceType string, isDevelopment bool) error {
	m.Log.record("inventory %s %s %s %t", id, name, deviceType, isDevelopment)
	return m.Err
}

// MockImageBuilder is a test implementation of provisioning.ImageBuilder.
// BuildBase writes real placeholder files so the artifact store can copy
// them, keeping provisioner tests on the real assembly path.
type MockImageBuilder struct {
	Log *CallLog

	BuildErr       error
	PersonalizeErr error
}

func (m *MockImageBuilder) BuildBase(_ context.Context, workDir, _ string) (*image.BaseImages, error) {
	m.Log.record("build-base")
	if m.BuildErr != nil {
		return nil, m.BuildErr
	}
	return WriteBaseImages(workDir)
}

func (m *MockImageBuilder) Personalize(_ context.Context, imagePath, _, _, _ string) error {
	m.Log.record("personalize %s", filepath.Base(imagePath))
	return m.PersonalizeErr
}

// MockIdentities is a test implementation of provisioning.IdentityGenerator.
// Generate hands out IDs in order and writes real key files into WorkDir
// so the artifact store can move them, mirroring what ssh-keygen leaves
// behind.
type MockIdentities struct {
	Log     *CallLog
	WorkDir string
	IDs     []identity.OrbID
	Err     error

	calls int
}

func (m *MockIdentities) Generate(_ context.Context) (identity.OrbID, identity.KeyMaterial, error) {
	m.Log.record("generate")
	if m.Err != nil {
		return "", identity.KeyMaterial{}, m.Err
	}
	if m.calls >= len(m.IDs) {
		return "", identity.KeyMaterial{}, fmt.Errorf("generate called %d times with only %d ids prepared", m.calls+1, len(m.IDs))
	}
	id := m.IDs[m.calls]
	m.calls++

	keys := identity.KeyMaterial{
		PrivateKeyPath: filepath.Join(m.WorkDir, "uid"),
		PublicKeyPath:  filepath.Join(m.WorkDir, "uid.pub"),
	}
	if err := os.WriteFile(keys.PrivateKeyPath, []byte("private key of "+string(id)), 0o600); err != nil {
		return "", identity.KeyMaterial{}, err
	}
	if err := os.WriteFile(keys.PublicKeyPath, []byte("public key of "+string(id)), 0o644); err != nil {
		return "", identity.KeyMaterial{}, err
	}
	return id, keys, nil
}

// MockUploader is a test implementation of provisioning.BundleUploader.
type MockUploader struct {
	Log *CallLog
	Err error
}

func (m *MockUploader) UploadBundle(_ context.Context, b *artifacts.Bundle) error {
	m.Log.record("upload %s", b.ID)
	return m.Err
}

// WriteBaseImages writes small placeholder base images into dir.
func WriteBaseImages(dir string) (*image.BaseImages, error) {
	base := &image.BaseImages{
		Persistent:          filepath.Join(dir, image.PersistentName),
		PersistentJournaled: filepath.Join(dir, image.PersistentJournaledName),
	}
	if err := os.WriteFile(base.Persistent, []byte("persistent template"), 0o644); err != nil {
		return nil, err
	}
	if err := os.WriteFile(base.PersistentJournaled, []byte("journaled template"), 0o644); err != nil {
		return nil, err
	}
	return base, nil
}
