// strandctl is an operator tool for inspecting and maintaining the strand
// metadata database.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

var log = logrus.WithField("prefix", "strandctl")

func main() {
	logrus.SetFormatter(&prefixed.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})

	app := &cli.App{
		Name:  "strandctl",
		Usage: "Operator tooling for the strand beacon metadata database",
		Commands: []*cli.Command{
			dbCommands,
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("Command failed")
	}
}
