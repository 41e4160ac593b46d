package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	// AppDir is the directory name used under the XDG state directory.
	AppDir = "reviewwatch"

	recordFile     = "notified.json"
	credentialFile = "auth.json"
)

// Manager keeps reviewwatch's state as JSON files in one directory: the
// notification record and the locally saved GitHub token.
type Manager struct {
	baseDir string
	mu      sync.Mutex
}

type recordFileData struct {
	NotifiedPullRequests NotificationRecord `json:"notified_pull_requests"`
}

type authConfig struct {
	Token string `json:"github_token"`
}

// DefaultDir returns $XDG_STATE_HOME/reviewwatch, falling back to
// ~/.local/state/reviewwatch.
func DefaultDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, AppDir)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "."+AppDir)
	}
	return filepath.Join(homeDir, ".local", "state", AppDir)
}

func NewManager(baseDir string) *Manager {
	if baseDir == "" {
		baseDir = DefaultDir()
	}
	return &Manager{
		baseDir: baseDir,
	}
}

// Dir returns the directory the manager writes to.
func (m *Manager) Dir() string {
	return m.baseDir
}

func (m *Manager) ensureDir() error {
	return os.MkdirAll(m.baseDir, 0755)
}

// writeFileAtomic writes data to a temp file in the same directory and
// renames it over name, so readers never observe a partial file.
func (m *Manager) writeFileAtomic(name string, data []byte, perm os.FileMode) error {
	if err := m.ensureDir(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(m.baseDir, name+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, filepath.Join(m.baseDir, name))
}

// Load reads the notification record. A missing file is an empty record.
func (m *Manager) Load(ctx context.Context) (NotificationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(m.baseDir, recordFile))
	if err != nil {
		if os.IsNotExist(err) {
			return NotificationRecord{}, nil
		}
		return nil, fmt.Errorf("failed to read notification record: %w", err)
	}

	var file recordFileData
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse notification record: %w", err)
	}
	if file.NotifiedPullRequests == nil {
		file.NotifiedPullRequests = NotificationRecord{}
	}
	return file.NotifiedPullRequests, nil
}

// Save replaces the stored record with record.
func (m *Manager) Save(ctx context.Context, record NotificationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if record == nil {
		record = NotificationRecord{}
	}
	data, err := json.MarshalIndent(recordFileData{NotifiedPullRequests: record}, "", "  ")
	if err != nil {
		return err
	}
	if err := m.writeFileAtomic(recordFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write notification record: %w", err)
	}
	return nil
}

// LoadToken returns the locally saved GitHub token.
func (m *Manager) LoadToken() (string, error) {
	data, err := os.ReadFile(filepath.Join(m.baseDir, credentialFile))
	if err != nil {
		return "", err
	}

	var config authConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return "", err
	}
	return config.Token, nil
}

// SaveToken stores token with owner-only permissions.
func (m *Manager) SaveToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token cannot be empty")
	}

	data, err := json.MarshalIndent(authConfig{Token: token}, "", "  ")
	if err != nil {
		return err
	}
	return m.writeFileAtomic(credentialFile, data, 0600)
}

// RemoveToken deletes the locally saved token. Removing a token that does not
// exist is not an error.
func (m *Manager) RemoveToken() error {
	err := os.Remove(filepath.Join(m.baseDir, credentialFile))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

var _ RecordStore = (*Manager)(nil)
