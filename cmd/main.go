package main

import (
	"os"

	"github.com/hamidzr/flashcfg/internal/cli"
	"github.com/hamidzr/flashcfg/internal/config"
	"github.com/hamidzr/flashcfg/internal/logger"
	"github.com/hamidzr/flashcfg/model"
	"github.com/sirupsen/logrus"
)

func main() {
	os.Exit(run())
}

// run executes the command tree and returns the process exit code. Deferred
// cleanup has to run before os.Exit, hence the split from main.
func run() int {
	stop := startProfiling()
	defer stop()

	_ = logger.SetupLogger(config.DefaultConfig().LogLevel)
	cmd := cli.InitCLI()
	code, cause := model.ExitCodeFromError(cmd.Execute())
	if cause != nil {
		logrus.Error(cause)
	}
	return int(code)
}
