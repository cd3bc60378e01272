package main

import (
	"fmt"
	"os"

	"github.com/temirov/codecat/internal/cli"
	"github.com/temirov/codecat/internal/utils"
)

func main() {
	applicationLogger, loggerError := utils.NewApplicationLogger()
	if loggerError != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerError))
		os.Exit(1)
	}
	defer applicationLogger.Sync()

	if executionError := cli.Execute(applicationLogger); executionError != nil {
		applicationLogger.Fatal(utils.ApplicationExecutionFailedMessage + ": " + executionError.Error())
	}
}
