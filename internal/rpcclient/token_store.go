package rpcclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// TokenStore 保存登录态（token 与用户信息）
type TokenStore interface {
	Token() (string, error)
	Save(token string, user json.RawMessage) error
	User() (json.RawMessage, error)
	Clear() error
}

type storedSession struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"user,omitempty"`
}

// MemoryTokenStore 进程内存储
type MemoryTokenStore struct {
	mu      sync.RWMutex
	session storedSession
}

// NewMemoryTokenStore 创建内存存储
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

// Token 当前 token，未登录返回空串
func (s *MemoryTokenStore) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Token, nil
}

// User 当前用户信息
func (s *MemoryTokenStore) User() (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.User, nil
}

// Save 写入登录态
func (s *MemoryTokenStore) Save(token string, user json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = storedSession{Token: token, User: user}
	return nil
}

// Clear 清除登录态
func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = storedSession{}
	return nil
}

// FileTokenStore 以 JSON 文件保存登录态，键为 token 与 user
type FileTokenStore struct {
	mu   sync.Mutex
	path string
}

// NewFileTokenStore 创建文件存储
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Path 文件路径
func (s *FileTokenStore) Path() string {
	return s.path
}

// Token 读取 token，文件不存在视为未登录
func (s *FileTokenStore) Token() (string, error) {
	session, err := s.load()
	if err != nil {
		return "", err
	}
	return session.Token, nil
}

// User 读取用户信息
func (s *FileTokenStore) User() (json.RawMessage, error) {
	session, err := s.load()
	if err != nil {
		return nil, err
	}
	return session.User, nil
}

// Save 写入登录态（0600 权限）
func (s *FileTokenStore) Save(token string, user json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	body, err := json.Marshal(storedSession{Token: token, User: user})
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create token dir: %w", err)
		}
	}
	return os.WriteFile(s.path, body, 0o600)
}

// Clear 删除登录态文件
func (s *FileTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *FileTokenStore) load() (storedSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var session storedSession
	body, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return session, nil
		}
		return session, err
	}
	if len(body) == 0 {
		return session, nil
	}
	if err := json.Unmarshal(body, &session); err != nil {
		return session, fmt.Errorf("decode token file %s: %w", s.path, err)
	}
	return session, nil
}
