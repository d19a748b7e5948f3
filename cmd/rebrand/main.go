package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/walteh/rebrand/pkg/log"
)

func main() {
	o := defaultOpts()
	o.UserLogger = log.NewUserLogger(zerolog.Nop())

	if err := newRootCmd(o, os.Stderr).ExecuteContext(context.Background()); err != nil {
		o.UserLogger.LogValidation(false, "rebrand failed", err)
		os.Exit(1)
	}
}
