package styles

import (
	"os"

	"github.com/muesli/termenv"
)

var (
	stdout = termenv.NewOutput(os.Stdout)
	stderr = termenv.NewOutput(os.Stderr)

	ERROR = func(s string) string {
		return stderr.String(s).
			Foreground(stderr.Color("9")).
			String()
	}
	SUCCESS = func(s string) string {
		return stderr.String(s).
			Foreground(stderr.Color("10")).
			String()
	}
	WARNING = func(s string) string {
		return stderr.String(s).
			Foreground(stderr.Color("11")).
			Bold().
			String()
	}
	LABEL = func(s string) string {
		return stdout.String(s).
			Foreground(stdout.Color("12")).
			Bold().
			String()
	}
	LOG = func(s string) string {
		return stderr.String(s).
			Foreground(stderr.Color("8")).
			String()
	}
)
