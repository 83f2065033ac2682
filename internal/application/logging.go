package application

import "log/slog"

const serviceName = "taskdeck"

func appLogger() *slog.Logger {
	return slog.Default().With(
		"service", serviceName,
		"module", "application",
		"layer", "application",
	)
}
