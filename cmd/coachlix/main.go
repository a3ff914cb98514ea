package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/adibhanna/coachlix/internal/config"
	"github.com/adibhanna/coachlix/internal/logging"
	"github.com/adibhanna/coachlix/internal/models"
	"github.com/adibhanna/coachlix/internal/persistence"
	"github.com/adibhanna/coachlix/internal/planapi"
	"github.com/adibhanna/coachlix/internal/session"
	"github.com/adibhanna/coachlix/internal/storage"
	"github.com/adibhanna/coachlix/internal/ui/help"
	"github.com/adibhanna/coachlix/internal/ui/history"
	"github.com/adibhanna/coachlix/internal/ui/menu"
	"github.com/adibhanna/coachlix/internal/ui/settings"
	"github.com/adibhanna/coachlix/internal/ui/workout"
)

const loadTimeout = 30 * time.Second

var errNoPlan = errors.New("no plan id configured, set one in Settings")

type workoutTarget struct {
	week int
	day  int
	ref  string
}

type app struct {
	configPath string
	cfg        *config.Config
	store      *storage.Storage
	log        logrus.FieldLogger
}

func main() {
	configPath := flag.String("config", "", "path to config.yaml (default ~/.coachlix/config.yaml)")
	planID := flag.String("plan", "", "plan id, overrides session.plan_id")
	week := flag.Int("week", 1, "plan week of the workout to open")
	day := flag.Int("day", 1, "plan day of the workout to open")
	workoutRef := flag.String("workout", "", "workout id or index; opens it directly")
	compact := flag.Bool("compact", false, "start the workout in the compact view")
	flag.Parse()

	path := *configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			log.Fatal("Failed to locate config:", err)
		}
	}
	firstRun := !config.Exists(path)

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	if *planID != "" {
		cfg.Session.PlanID = *planID
	}
	if *compact {
		cfg.Session.Compact = true
	}

	// stdout belongs to the terminal UI
	logFile := cfg.Logging.File
	if logFile == "" {
		logFile = filepath.Join(filepath.Dir(path), "coachlix.log")
	}
	closer := logging.Setup(logging.SetupParams{
		LogFileName:   logFile,
		LogLevel:      cfg.Logging.Level,
		LogFormatJSON: cfg.Logging.JSON,
	})
	defer closer.Close()

	store, err := storage.New()
	if err != nil {
		log.Fatal("Failed to initialize storage:", err)
	}

	a := &app{
		configPath: path,
		cfg:        cfg,
		store:      store,
		log:        logrus.StandardLogger(),
	}

	var direct *workoutTarget
	if *workoutRef != "" {
		direct = &workoutTarget{week: *week, day: *day, ref: *workoutRef}
	}

	if err := a.run(firstRun, direct); err != nil {
		closer.Close()
		log.Fatal(err)
	}
}

func (a *app) run(firstRun bool, direct *workoutTarget) error {
	if firstRun {
		fmt.Println("*** Welcome to Coachlix! ***")
		fmt.Println("Point it at your plan API first...")

		if _, err := a.runSettings(); err != nil {
			return err
		}
		fmt.Println("[OK] Setup complete! Let's train!")
	}

	var notice string
	if direct != nil {
		quit, msg, err := a.runWorkout(*direct)
		if err != nil {
			return err
		}
		if quit {
			return a.goodbye()
		}
		notice = msg
	}

	for {
		p, planErr := a.loadPlan()
		if planErr != nil {
			a.log.WithError(planErr).Warn("plan not loaded")
		}

		menuModel := menu.New(p, planErr, a.store).WithNotice(notice)
		notice = ""

		finalModel, err := tea.NewProgram(menuModel, tea.WithAltScreen()).Run()
		if err != nil {
			return err
		}

		menuModel = finalModel.(menu.Model)
		if menuModel.ShouldQuit() {
			return a.goodbye()
		}

		var quit bool
		choice := menuModel.GetChoice()
		switch choice.Action {
		case menu.StartWorkout:
			quit, notice, err = a.runWorkout(workoutTarget{week: choice.Week, day: choice.Day, ref: choice.WorkoutRef})
		case menu.ViewHistory:
			quit, err = a.runHistory()
		case menu.Settings:
			quit, err = a.runSettings()
		case menu.Help:
			quit, err = a.runHelp()
		case menu.Exit:
			return a.goodbye()
		}
		if err != nil {
			return err
		}
		if quit {
			return a.goodbye()
		}
	}
}

func (a *app) goodbye() error {
	fmt.Println(">>> See you next workout!")
	return nil
}

func (a *app) adapter() *persistence.Adapter {
	client := planapi.NewClient(
		a.cfg.API.BaseURL,
		a.cfg.API.Token,
		time.Duration(a.cfg.API.TimeoutSeconds)*time.Second,
		a.log,
	)
	return persistence.New(client, a.log,
		session.WithSoundEnabled(a.cfg.Session.SoundEnabled),
		session.WithLogger(a.log),
	)
}

func (a *app) loadPlan() (*models.Plan, error) {
	if a.cfg.Session.PlanID == "" {
		return nil, errNoPlan
	}
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()
	return a.adapter().Plan(ctx, a.cfg.Session.PlanID)
}

// runWorkout opens a workout session. A workout that cannot be loaded comes
// back as a notice for the menu instead of an error.
func (a *app) runWorkout(t workoutTarget) (quit bool, notice string, err error) {
	if a.cfg.Session.PlanID == "" {
		return false, errNoPlan.Error(), nil
	}

	adapter := a.adapter()
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	sess, loadErr := adapter.LoadSession(ctx, a.cfg.Session.PlanID, t.week, t.day, t.ref)
	cancel()
	if loadErr != nil {
		a.log.WithError(loadErr).WithFields(logrus.Fields{
			"week":    t.week,
			"day":     t.day,
			"workout": t.ref,
		}).Warn("opening workout failed")
		return false, "Could not open workout: " + loadErr.Error(), nil
	}
	a.log.WithField("address", sess.Address.String()).Info("workout opened")

	model := workout.New(workout.Params{
		Adapter: adapter,
		Session: sess,
		History: a.store,
		Compact: a.cfg.Session.Compact,
		Log:     a.log,
	})
	finalModel, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return false, "", err
	}
	return finalModel.(workout.Model).Quitting(), "", nil
}

func (a *app) runHistory() (bool, error) {
	dir, err := config.Dir()
	if err != nil {
		return false, err
	}
	historyModel, err := history.New(a.store, filepath.Join(dir, "reports"))
	if err != nil {
		return false, err
	}
	finalModel, err := tea.NewProgram(historyModel, tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	return finalModel.(history.Model).ShouldQuit(), nil
}

func (a *app) runSettings() (bool, error) {
	settingsModel := settings.New(a.cfg, a.configPath, a.store)
	finalModel, err := tea.NewProgram(settingsModel, tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}

	settingsModel = finalModel.(settings.Model)
	if settingsModel.Saved() {
		cfg := settingsModel.Config()
		a.cfg = &cfg
		a.log.Info("settings saved")
	}
	return settingsModel.ShouldQuit(), nil
}

func (a *app) runHelp() (bool, error) {
	finalModel, err := tea.NewProgram(help.New(), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	return finalModel.(help.Model).ShouldQuit(), nil
}
