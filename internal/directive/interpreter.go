package directive

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const drainChunkSize = 256

// Streams are the process streams the interpreter operates on.
type Streams struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// StdStreams returns the streams of the current process.
func StdStreams() Streams {
	return Streams{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithLogger sets the logger used for diagnostics. The logger must not write
// to the interpreter's own stdout or stderr.
func WithLogger(logger *zerolog.Logger) Option {
	return func(i *Interpreter) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// Interpreter executes directives against a set of streams.
type Interpreter struct {
	stdin  *bufio.Reader
	stdout io.Writer
	stderr io.Writer
	logger *zerolog.Logger
}

// New creates an Interpreter. Stdin is buffered once and shared between
// directives, so bytes read ahead by incr remain available to {}.
func New(streams Streams, opts ...Option) *Interpreter {
	nop := zerolog.Nop()
	i := &Interpreter{
		stdin:  bufio.NewReader(streams.Stdin),
		stdout: streams.Stdout,
		stderr: streams.Stderr,
		logger: &nop,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Run executes args left to right and returns the resulting exit code.
func (i *Interpreter) Run(args []string) int {
	if len(args) == 0 {
		i.write(i.stdout, HelpText)
		return 0
	}

	exitCode := 0
	for cursor := 0; cursor < len(args); cursor++ {
		switch arg := args[cursor]; arg {
		case Stdout:
			i.write(i.stdout, "1")
		case Stderr:
			i.write(i.stderr, "2")
		case Wrap:
			i.wrapStdin()
		case Incr:
			i.incr()
		case Comma:
			i.write(i.stdout, strings.Join(args[cursor+1:], ","))
			cursor = len(args)
		case False:
			exitCode = 1
		case Return:
			if cursor+1 < len(args) {
				cursor++
				exitCode = Atoi(args[cursor])
			}
		default:
			i.logger.Debug().Str("directive", arg).Int("position", cursor).Msg("Unknown directive")
			i.write(i.stdout, fmt.Sprintf(invalidOptionFormat, arg))
		}
	}

	return exitCode
}

// wrapStdin echoes stdin between braces, blocking until the stream ends.
func (i *Interpreter) wrapStdin() {
	i.write(i.stdout, "{")

	buf := make([]byte, drainChunkSize)
	for {
		n, err := i.stdin.Read(buf)
		if n > 0 {
			i.writeBytes(i.stdout, buf[:n])
		}
		if err != nil || n == 0 {
			if err != nil && err != io.EOF {
				i.logger.Debug().Err(err).Msg("Stopped reading stdin")
			}
			break
		}
	}

	i.write(i.stdout, "}")
}

func (i *Interpreter) incr() {
	value, ok, err := ScanInt(i.stdin)
	if !ok {
		i.logger.Debug().Err(err).Msg("No integer on stdin, using 0")
	}
	i.write(i.stdout, value.Add(value, one).String())
}

func (i *Interpreter) write(w io.Writer, s string) {
	if s == "" {
		return
	}
	if _, err := io.WriteString(w, s); err != nil {
		i.logger.Debug().Err(err).Msg("Failed to write output")
	}
}

func (i *Interpreter) writeBytes(w io.Writer, b []byte) {
	if _, err := w.Write(b); err != nil {
		i.logger.Debug().Err(err).Msg("Failed to write output")
	}
}

// Run executes args against streams with default options.
func Run(args []string, streams Streams) int {
	return New(streams).Run(args)
}
