package main

import (
	"github.com/stelehq/stele/internal/server"
	"github.com/stelehq/stele/internal/util"
	"github.com/stelehq/stele/pkg/logger"
	"github.com/stelehq/stele/pkg/logger/console"

	_ "github.com/lib/pq"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	server.Init()
}
