package app

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/samvad-hq/vernacular-news/internal/config"
	"github.com/samvad-hq/vernacular-news/internal/domain"
	"github.com/samvad-hq/vernacular-news/internal/logger"
	"github.com/samvad-hq/vernacular-news/internal/screen"
	"github.com/samvad-hq/vernacular-news/internal/storage"
	"github.com/samvad-hq/vernacular-news/internal/tui"
	"github.com/samvad-hq/vernacular-news/pkg/httpclient"
)

// Reader is the interactive terminal runtime: controller, preference store,
// speech backend and view.
type Reader struct {
	cfg          *config.Config
	ctrl         *screen.Controller
	store        storage.PrefStore
	closeSpeaker func() error
	log          logger.Logger
}

// NewReader builds the reader runtime from config.
func NewReader(ctx context.Context, cfg *config.Config, log logger.Logger) (*Reader, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.Ensure(log)
	if ctx == nil {
		ctx = context.Background()
	}

	category, err := domain.ParseCategory(cfg.DefaultCategory)
	if err != nil {
		return nil, fmt.Errorf("default category: %w", err)
	}

	store, err := storage.NewStore(cfg.PrefsStoreType, cfg.PrefsBBoltPath)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type": cfg.PrefsStoreType,
		"path": cfg.PrefsBBoltPath,
	})

	speaker, closeSpeaker, err := buildSpeaker(ctx, cfg, log)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("init speech: %w", err)
	}

	client := httpclient.NewRestyClient(cfg.HTTPTimeout)
	pipe := buildPipeline(cfg, client, log)

	ctrl := screen.NewController(pipe, store, speaker,
		screen.WithSelection(cfg.DefaultLanguage, category),
		screen.WithLogger(log),
	)

	return &Reader{
		cfg:          cfg,
		ctrl:         ctrl,
		store:        store,
		closeSpeaker: closeSpeaker,
		log:          log,
	}, nil
}

// Run blocks until the user quits or ctx is cancelled.
func (r *Reader) Run(ctx context.Context) error {
	if r == nil || r.ctrl == nil {
		return fmt.Errorf("reader is not initialized")
	}
	defer r.close()

	model := tui.New(ctx, r.ctrl, tui.Deps{OpenURL: openURL, Log: r.log})
	r.log.InfoObj("reader starting", "reader_state", map[string]any{
		"language": r.cfg.DefaultLanguage,
		"category": r.cfg.DefaultCategory,
	})

	prog := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := prog.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run terminal program: %w", err)
	}

	r.log.InfoObj("reader exiting", "reader_state", map[string]any{
		"generation": r.ctrl.Snapshot().Generation,
	})
	return nil
}

func (r *Reader) close() {
	r.ctrl.Close()
	if err := r.closeSpeaker(); err != nil {
		r.log.ErrorObj("speech backend close failed", "error", err.Error())
	}
	if err := r.store.Close(); err != nil {
		r.log.ErrorObj("storage close failed", "error", err.Error())
	}
}

// openURL hands an article link to the platform browser.
func openURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
