package cmd

import (
	"github.com/df07/go-pathtracer/pkg/log"
)

var logger = log.New("pathtracer")

// verbosity is the number of -v flags given
var verbosity int

func setupLogging() {
	log.SetLevel(log.LevelForVerbosity(verbosity))
}
