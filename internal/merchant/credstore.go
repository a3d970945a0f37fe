package merchant

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Haleralex/foodyhub/internal/domain"
)

// CredentialStore - порт персистентного хранилища credential pair.
//
// В браузере это был localStorage с ключами foody_restaurant_id/foody_key;
// здесь хранилище инжектируется, чтобы в тестах подставлять in-memory fake.
type CredentialStore interface {
	// Load возвращает сохранённую пару; пустая пара без ошибки, если
	// ничего не сохранено.
	Load() (domain.Credentials, error)
	// Save персистит пару целиком.
	Save(creds domain.Credentials) error
	// Clear удаляет обе половины пары.
	Clear() error
}

// ============================================
// File Store
// ============================================

// FileStore хранит пару в JSON-файле (CLI-эквивалент localStorage).
type FileStore struct {
	path string
}

// storedCredentials - формат файла. Имена полей повторяют ключи
// localStorage браузерной версии, чтобы пару можно было переносить
// между клиентами руками.
type storedCredentials struct {
	RestaurantID domain.ID `json:"foody_restaurant_id"`
	APIKey       string    `json:"foody_key"`
}

// NewFileStore создаёт стор поверх указанного файла.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultCredentialsPath - путь по умолчанию в пользовательском конфиге.
func DefaultCredentialsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "foody", "credentials.json"), nil
}

func (s *FileStore) Load() (domain.Credentials, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Credentials{}, nil
	}
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("read credentials: %w", err)
	}

	var stored storedCredentials
	if err := json.Unmarshal(data, &stored); err != nil {
		return domain.Credentials{}, fmt.Errorf("parse credentials: %w", err)
	}
	return domain.Credentials{RestaurantID: stored.RestaurantID, APIKey: stored.APIKey}, nil
}

func (s *FileStore) Save(creds domain.Credentials) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}
	data, err := json.MarshalIndent(storedCredentials{
		RestaurantID: creds.RestaurantID,
		APIKey:       creds.APIKey,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	// API ключ не восстанавливается - права только владельцу
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}

// ============================================
// In-Memory Store
// ============================================

// MemStore - in-memory fake для тестов.
type MemStore struct {
	creds domain.Credentials
}

// NewMemStore создаёт пустой in-memory стор.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// NewMemStoreWith создаёт стор с заранее сохранённой парой.
func NewMemStoreWith(creds domain.Credentials) *MemStore {
	return &MemStore{creds: creds}
}

func (s *MemStore) Load() (domain.Credentials, error) { return s.creds, nil }

func (s *MemStore) Save(creds domain.Credentials) error {
	s.creds = creds
	return nil
}

func (s *MemStore) Clear() error {
	s.creds = domain.Credentials{}
	return nil
}
