package main

import (
	"fmt"
	"os"

	"github.com/Ghostkeeper/R2D2/model"
)

type logger bool

func (l logger) Logf(format string, a ...interface{}) {
	if !l {
		return
	}
	fmt.Fprintf(os.Stderr, format, a...)
	fmt.Fprintln(os.Stderr, "")
}

// sink drops info messages unless verbose, warnings always go to zlog
func (l logger) sink() model.Logger {
	return model.LoggerFunc(func(s model.Severity, msg string) {
		if s == model.Info && !l {
			return
		}
		model.ZLog.Log(s, msg)
	})
}
