package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/seatwise/seatplan/internal/domain"
	"github.com/seatwise/seatplan/internal/ports"
)

const (
	configName        = "config"
	configType        = "toml"
	cataloguePathKey  = "catalogue.path"
	catalogueFileMode = 0o600
	catalogueDirMode  = 0o700
	configDirName     = ".seatplan"
	catalogueFileName = "catalogue.toml"
	tempFilePattern   = ".catalogue-*.toml.tmp"
)

// Repository stores the seat catalogue as a TOML file. When the file does
// not exist it serves the built-in default layout, so a fresh install works
// without any configuration.
type Repository struct {
	cataloguePath string
	mu            *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.CatalogueRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, configDirName, catalogueFileName)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDirName))
	cfg.SetDefault(cataloguePathKey, defaultPath)

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cataloguePath := cfg.GetString(cataloguePathKey)
	if cataloguePath == "" {
		return nil, errors.New("catalogue path is empty")
	}
	cataloguePath, err = normalizePath(cataloguePath)
	if err != nil {
		return nil, err
	}

	return &Repository{cataloguePath: cataloguePath, mu: lockForPath(cataloguePath)}, nil
}

// Path returns the resolved catalogue file location.
func (r *Repository) Path() string { return r.cataloguePath }

func (r *Repository) Load(ctx context.Context) (domain.Catalogue, error) {
	if err := ctx.Err(); err != nil {
		return domain.Catalogue{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(r.cataloguePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultCatalogue(), nil
		}
		return domain.Catalogue{}, fmt.Errorf("read catalogue file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return domain.Catalogue{}, fmt.Errorf("decode catalogue file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return domain.Catalogue{}, err
	}
	file.applyDefaults()

	seats := make([]domain.Seat, 0, len(file.Seats))
	for _, entry := range file.Seats {
		seats = append(seats, fromSchema(entry))
	}

	catalogue, err := domain.NewCatalogue(seats)
	if err != nil {
		return domain.Catalogue{}, fmt.Errorf("catalogue file %s: %w", r.cataloguePath, err)
	}

	return catalogue, nil
}

func (r *Repository) Save(ctx context.Context, catalogue domain.Catalogue) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file := fileSchema{Version: currentSchemaVersion}
	for _, seat := range catalogue.Seats() {
		file.Seats = append(file.Seats, toSchema(seat))
	}

	return r.writeSchema(file)
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.cataloguePath), catalogueDirMode); err != nil {
		return fmt.Errorf("create catalogue directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode catalogue file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.cataloguePath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp catalogue file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp catalogue file: %w", err)
	}

	if err := tempFile.Chmod(catalogueFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp catalogue file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp catalogue file: %w", err)
	}

	if err := os.Rename(tempName, r.cataloguePath); err != nil {
		return fmt.Errorf("replace catalogue file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(r.cataloguePath, catalogueFileMode); err != nil {
		return fmt.Errorf("chmod catalogue file: %w", err)
	}

	return nil
}

func toSchema(seat domain.Seat) seatSchema {
	enabled := seat.Enabled
	return seatSchema{
		ID:         string(seat.ID),
		Category:   string(seat.Category),
		Number:     seat.Number,
		Adjustable: seat.Adjustable,
		Enabled:    &enabled,
		Classroom:  seat.Classroom,
	}
}

func fromSchema(entry seatSchema) domain.Seat {
	enabled := true
	if entry.Enabled != nil {
		enabled = *entry.Enabled
	}

	return domain.Seat{
		ID:         domain.SeatID(entry.ID),
		Category:   domain.Category(entry.Category),
		Number:     entry.Number,
		Adjustable: entry.Adjustable,
		Enabled:    enabled,
		Classroom:  entry.Classroom,
	}
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve catalogue path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
