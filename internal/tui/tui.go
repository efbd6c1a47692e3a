package tui

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-chat-sdk/internal/logger"
	"github.com/MKhiriev/go-chat-sdk/internal/service"
	"github.com/MKhiriev/go-chat-sdk/models"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUserQuit = errors.New("user quit")

type TUI struct {
	services *service.ClientServices
	build    models.AppBuildInfo
	logger   *logger.Logger
}

func New(services *service.ClientServices, build models.AppBuildInfo, log *logger.Logger) (*TUI, error) {
	if services == nil || services.ChatService == nil {
		return nil, errors.New("tui: chat service is required")
	}
	return &TUI{services: services, build: build, logger: log.WithComponent("tui")}, nil
}

// Run shows the dashboard until the user quits or ctx is done. Quitting with
// q or ctrl+c returns ErrUserQuit.
func (t *TUI) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := newDashboardModel(ctx, t.services.ChatService, t.build)
	finalModel, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}

	if result, ok := finalModel.(dashboardModel); ok && result.quitByUser {
		t.logger.Debug().Msg("dashboard closed by user")
		return ErrUserQuit
	}
	return nil
}
