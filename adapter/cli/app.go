package cli

import (
	"context"
	"sync"
	"time"

	internalApp "github.com/DHariharanD/Smart-Task-Analyser/internal/app"
	prioritizationQueries "github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/application/queries"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/prioritization/engine"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/application/commands"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/productivity/application/queries"
)

// App holds the CLI application dependencies.
type App struct {
	// Prioritization
	AnalyzeTasksHandler *prioritizationQueries.AnalyzeTasksHandler
	SuggestTasksHandler *prioritizationQueries.SuggestTasksHandler

	// Task Command Handlers
	CreateTaskHandler *commands.CreateTaskHandler
	UpdateTaskHandler *commands.UpdateTaskHandler
	DeleteTaskHandler *commands.DeleteTaskHandler

	// Task Query Handlers
	ListTasksHandler *queries.ListTasksHandler
	GetTaskHandler   *queries.GetTaskHandler

	Location *time.Location

	// Container is set when the app is backed by a task store.
	Container *internalApp.Container
}

// NewApp creates a CLI application backed by container.
func NewApp(container *internalApp.Container) *App {
	return &App{
		AnalyzeTasksHandler: container.AnalyzeTasksHandler,
		SuggestTasksHandler: container.SuggestTasksHandler,
		CreateTaskHandler:   container.CreateTaskHandler,
		UpdateTaskHandler:   container.UpdateTaskHandler,
		DeleteTaskHandler:   container.DeleteTaskHandler,
		ListTasksHandler:    container.ListTasksHandler,
		GetTaskHandler:      container.GetTaskHandler,
		Location:            container.Location,
		Container:           container,
	}
}

// NewEngineApp creates an app that can analyze ad-hoc task files but has no
// task store.
func NewEngineApp(loc *time.Location) *App {
	e := engine.New(engine.Config{Location: loc})
	return &App{
		AnalyzeTasksHandler: prioritizationQueries.NewAnalyzeTasksHandler(e, nil),
		SuggestTasksHandler: prioritizationQueries.NewSuggestTasksHandler(e, nil),
		Location:            e.Location(),
	}
}

var (
	appMu sync.Mutex
	// app is the global CLI application instance
	app *App
)

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	appMu.Lock()
	defer appMu.Unlock()
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	appMu.Lock()
	defer appMu.Unlock()
	return app
}

// RequireApp returns the store-backed app, opening the task store on first
// use.
func RequireApp(ctx context.Context) (*App, error) {
	appMu.Lock()
	defer appMu.Unlock()
	if app != nil && app.Container != nil {
		return app, nil
	}

	c, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	container, err := internalApp.NewContainer(ctx, c, Logger())
	if err != nil {
		return nil, err
	}
	app = NewApp(container)
	return app, nil
}

// EngineApp returns the current app, or an engine-only app when no task store
// has been opened.
func EngineApp() (*App, error) {
	if a := GetApp(); a != nil {
		return a, nil
	}
	c, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	return NewEngineApp(loc), nil
}

// Shutdown closes the task store if one was opened.
func Shutdown() {
	appMu.Lock()
	defer appMu.Unlock()
	if app != nil && app.Container != nil {
		if err := app.Container.Close(); err != nil {
			Logger().Warn("failed to close application", "error", err)
		}
	}
	app = nil
}
