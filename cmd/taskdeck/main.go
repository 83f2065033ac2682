// Command taskdeck runs the demo flow: construct a user and a task,
// authenticate, persist both, and print the stored snapshots.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/taskdeck/taskdeck/internal/adapters/jsonfile"
	"github.com/taskdeck/taskdeck/internal/adapters/security"
	"github.com/taskdeck/taskdeck/internal/app/bootstrap"
	"github.com/taskdeck/taskdeck/internal/application"
	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/logging"
	"github.com/taskdeck/taskdeck/internal/utils"
	"github.com/taskdeck/taskdeck/internal/validate"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "configs/default.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := bootstrap.LoadConfig(*configPath)
	if err != nil {
		log.Printf("load config: %v", err)
		return 1
	}

	logger, err := logging.New(logging.Options{
		Level: cfg.LogLevel,
		File:  cfg.LogFile,
		Debug: cfg.Debug,
	})
	if err != nil {
		log.Printf("init logger: %v", err)
		return 1
	}
	slog.SetDefault(logger)
	logger.Info("starting application", "app", cfg.AppName, "version", cfg.Version)

	data := application.NewDataService(jsonfile.New(cfg.DataFile))
	auth := application.NewAuthService(application.AuthConfig{
		Secret:            cfg.AuthSecret,
		SessionTTL:        cfg.SessionTTL,
		MaxFailedAttempts: cfg.MaxFailedAttempts,
	}, security.NewBcryptHasher(cfg.BcryptCost))

	user, err := domain.NewUser(1, "testuser", "test@example.com")
	if err != nil {
		logger.Error("create user", "error", err)
		return 1
	}
	task, err := domain.NewTask(101, "Sample Task", "This is a sample task for testing", user.UserID, domain.PriorityHigh)
	if err != nil {
		logger.Error("create task", "error", err)
		return 1
	}

	if !validate.Email(user.Email) {
		logger.Error("invalid user email", "email", user.Email)
		return 1
	}
	logger.Info("valid user email", "email", user.Email)

	if !auth.Authenticate(&user, "testpass") {
		logger.Error("authentication failed", "username", user.Username)
		return 1
	}
	logger.Info("user authenticated", "username", user.Username)

	data.SaveUser(user)
	data.SaveTask(task)

	savedUser, ok := data.GetUser(user.UserID)
	if !ok {
		logger.Error("saved user not found", "user_id", user.UserID)
		return 1
	}
	savedTask, ok := data.GetTask(task.TaskID)
	if !ok {
		logger.Error("saved task not found", "task_id", task.TaskID)
		return 1
	}

	fmt.Print(utils.FormatSection("User Data", savedUser.Snapshot()))
	fmt.Print(utils.FormatSection("Task Data", savedTask.Snapshot()))

	logger.Info("application completed successfully")
	return 0
}
