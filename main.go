// main.go

package main

import (
	"github.com/ferrytools/mongoferry/cmd"
	"github.com/ferrytools/mongoferry/pkg/logger"
	"github.com/ferrytools/mongoferry/pkg/telemetry"
	"go.uber.org/zap"
)

func main() {
	logger.InitializeWithFallback()

	if err := telemetry.Init("mongoferry"); err != nil {
		logger.L().Warn("Telemetry disabled", zap.Error(err))
	}

	cmd.Execute()
}
