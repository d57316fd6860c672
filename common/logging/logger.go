package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

// Output is where every logger writes. Results go to stdout, so logs stay on stderr.
var Output io.Writer = os.Stderr

// SetupGlobalLogger configures logging for a command run: disabled unless verbose,
// otherwise filtered at the given level.
func SetupGlobalLogger(verbose bool, level string) error {
	if !verbose {
		zerolog.SetGlobalLevel(zerolog.Disabled)
		return nil
	}
	if err := TrySetupGlobalLevel(level); err != nil {
		return err
	}
	log.Logger = NewLogger("global")
	return nil
}

func TrySetupGlobalLevel(level string) error {
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(l)
	return nil
}

// NoColor reports whether log output should stay plain.
func NoColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return true
	}
	f, ok := Output.(*os.File)
	return !ok || !term.IsTerminal(int(f.Fd()))
}

// formatComponent brackets field values, the component included.
func formatComponent(noColor bool) zerolog.Formatter {
	return func(c any) string {
		if noColor {
			return fmt.Sprintf("[%v]", c)
		}
		return fmt.Sprintf("\x1b[1m[%v]\x1b[0m", c)
	}
}

func NewLogger(component string) zerolog.Logger {
	noColor := NoColor()
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        Output,
		TimeFormat: time.DateTime,
		PartsOrder: []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			FieldComponent,
			zerolog.MessageFieldName,
		},
		FieldsExclude:    []string{FieldComponent},
		FormatFieldValue: formatComponent(noColor),
		NoColor:          noColor,
	}).
		With().
		Str(FieldComponent, component).
		Timestamp().
		Logger()
}
