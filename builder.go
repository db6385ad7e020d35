package rotolog

import (
	"time"

	"go.uber.org/zap"

	"github.com/rotolog/rotolog/rotation"
)

// DefaultLogPath is used when a rotation is requested before any file path.
const DefaultLogPath = "app.log"

// Builder assembles a Config through a chain of calls and can initialize
// logging from it in one shot.
type Builder struct {
	config *Config
}

// NewBuilder returns a Builder over a default Config.
func NewBuilder() *Builder {
	return &Builder{config: NewConfig()}
}

// FromConfig returns a Builder over an existing Config.
func FromConfig(config *Config) *Builder {
	return &Builder{config: config}
}

// Console enables or disables console output.
func (b *Builder) Console(enabled bool) *Builder {
	b.config.Console = enabled

	return b
}

// Level sets the minimum log level ("debug", "info", "warn", "error", ...).
func (b *Builder) Level(level string) *Builder {
	b.config.Level = level

	return b
}

// Format sets the output format, "text" or "json".
func (b *Builder) Format(format string) *Builder {
	b.config.Format = format

	return b
}

// File configures a file sink at path with no rotation.
func (b *Builder) File(path string) *Builder {
	b.config.File = &FileConfig{Path: path, Rotation: rotation.Never()}

	return b
}

// FileConfig replaces the whole file sink configuration.
func (b *Builder) FileConfig(file *FileConfig) *Builder {
	b.config.File = file

	return b
}

// Rotation sets the rotation trigger on the file sink, creating a default
// file sink at DefaultLogPath when none is configured yet.
func (b *Builder) Rotation(trig rotation.Trigger) *Builder {
	if b.config.File == nil {
		b.config.File = &FileConfig{Path: DefaultLogPath}
	}

	b.config.File.Rotation = trig

	return b
}

// Buffered batches file writes in memory, flushing every interval. Pass a
// non-positive interval to use DefaultFlushInterval.
func (b *Builder) Buffered(interval time.Duration) *Builder {
	if b.config.File == nil {
		b.config.File = &FileConfig{Path: DefaultLogPath}
	}

	b.config.File.Buffered = true
	b.config.File.FlushInterval = interval

	return b
}

// Build returns the assembled Config without initializing anything.
func (b *Builder) Build() *Config {
	return b.config
}

// Init builds the Config and initializes logging from it.
func (b *Builder) Init() (*zap.Logger, *Guard, error) {
	return Init(b.config)
}
