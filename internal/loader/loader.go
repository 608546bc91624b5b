// Package loader handles program image loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/log"
)

// StdinName is the input name that reads the program image from stdin.
const StdinName = "-"

// ErrEmptyProgram is returned for program images without any data.
var ErrEmptyProgram = errors.New("empty program")

// Loader handles loading program images from disk.
type Loader struct {
	logger *log.Logger
	stdin  io.Reader
}

// New creates a new program loader.
func New(logger *log.Logger) *Loader {
	return &Loader{
		logger: logger,
		stdin:  os.Stdin,
	}
}

// Load reads the raw program image from the given file, or from stdin if the
// name is StdinName. Images that do not fit into the machine memory are
// rejected.
func (l *Loader) Load(name string) ([]byte, error) {
	if name == StdinName {
		return l.LoadReader(l.stdin)
	}

	file, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", name, err)
	}
	defer func() { _ = file.Close() }()

	data, err := l.LoadReader(file)
	if err != nil {
		return nil, fmt.Errorf("loading file %s: %w", name, err)
	}

	l.logger.Debug("Program loaded",
		log.String("file", name),
		log.Int("size", len(data)))
	return data, nil
}

// LoadReader reads a raw program image from the reader.
func (l *Loader) LoadReader(reader io.Reader) ([]byte, error) {
	// read one byte more than fits to detect oversized images
	data, err := io.ReadAll(io.LimitReader(reader, chip8.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading program: %w", err)
	}

	switch {
	case len(data) == 0:
		return nil, ErrEmptyProgram
	case len(data) > chip8.MaxProgramSize:
		return nil, fmt.Errorf("%w: maximum is %d bytes", chip8.ErrProgramTooLarge, chip8.MaxProgramSize)
	}
	return data, nil
}
