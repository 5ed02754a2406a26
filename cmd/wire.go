package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	planrender "github.com/seatwise/seatplan/internal/adapters/render/plan"
	tomlrepo "github.com/seatwise/seatplan/internal/adapters/repo/toml"
	rostercsv "github.com/seatwise/seatplan/internal/adapters/roster/csv"
	"github.com/seatwise/seatplan/internal/application"
	"github.com/seatwise/seatplan/internal/ports"
)

const configDirName = ".seatplan"

type app struct {
	catalogueRepo ports.CatalogueRepository
	rosterSource  ports.RosterSource
	planRenderer  func(application.RunResult, planrender.RenderOptions) (string, error)
	historyPath   string
	clock         ports.Clock
}

func wireApp() (*app, error) {
	repo, err := tomlrepo.NewRepository(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire catalogue repository: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	return &app{
		catalogueRepo: repo,
		rosterSource:  rostercsv.New(),
		planRenderer:  planrender.Render,
		historyPath:   filepath.Join(homeDir, configDirName, "history.db"),
		clock:         ports.SystemClock{},
	}, nil
}
