package config

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/fogmaze/maze"
	"github.com/zucenko/fogmaze/model"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("config: invalid settings")

type Settings struct {
	Cols             int     `yaml:"cols"`
	Rows             int     `yaml:"rows"`
	Seed             int64   `yaml:"seed"`
	VisibilityRadius float64 `yaml:"visibility_radius"`
	ContainerWidth   int     `yaml:"container_width"`
	MaxWidth         int     `yaml:"max_width"`
	FrameRate        int     `yaml:"frame_rate"`
	Particles        int     `yaml:"particles"`
	Sound            bool    `yaml:"sound"`
	LogLevel         string  `yaml:"log_level"`

	Server Server `yaml:"server"`
}

type Server struct {
	Port    string        `yaml:"port"`
	Timeout time.Duration `yaml:"timeout"`
	// FrameEvery is how many ticks pass between periodic frame messages.
	FrameEvery int `yaml:"frame_every"`
}

func Default() Settings {
	return Settings{
		Cols:             model.DefaultSize,
		Rows:             model.DefaultSize,
		VisibilityRadius: 5,
		ContainerWidth:   600,
		MaxWidth:         600,
		FrameRate:        60,
		Particles:        model.DefaultParticleCount,
		Sound:            true,
		LogLevel:         "info",
		Server: Server{
			Port:       "8080",
			Timeout:    200 * time.Millisecond,
			FrameEvery: 10,
		},
	}
}

// Load reads defaults, then the YAML file at path when path is not empty,
// then environment overrides, and validates the result.
func Load(path string) (Settings, error) {
	s := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return s, fmt.Errorf("config: load %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &s); err != nil {
			return s, fmt.Errorf("config: unmarshal %s: %w", path, err)
		}
	}
	if err := s.ApplyEnv(os.LookupEnv); err != nil {
		return s, err
	}
	return s, s.Validate()
}

// Parse is Load for an in-memory document, without environment overrides.
func Parse(data []byte) (Settings, error) {
	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("config: unmarshal: %w", err)
	}
	return s, s.Validate()
}

// LoadEnv loads .env files into the environment. A missing file is not an
// error.
func LoadEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		log.Infof(".env file not found or could not be loaded: %v", err)
	}
}

func (s *Settings) ApplyEnv(lookup func(string) (string, bool)) error {
	ints := map[string]*int{
		"MAZE_COLS":      &s.Cols,
		"MAZE_ROWS":      &s.Rows,
		"MAZE_MAX_WIDTH": &s.MaxWidth,
	}
	for key, dst := range ints {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%w: %s=%q", ErrInvalid, key, v)
			}
			*dst = n
		}
	}
	if v, ok := lookup("MAZE_SEED"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: MAZE_SEED=%q", ErrInvalid, v)
		}
		s.Seed = n
	}
	if v, ok := lookup("PORT"); ok && v != "" {
		s.Server.Port = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		s.LogLevel = v
	}
	return nil
}

func (s Settings) Validate() error {
	if err := maze.Validate(s.Cols, s.Rows); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if s.VisibilityRadius <= 0 {
		return fmt.Errorf("%w: visibility_radius %v", ErrInvalid, s.VisibilityRadius)
	}
	if s.ContainerWidth <= 0 || s.MaxWidth < 0 {
		return fmt.Errorf("%w: container_width %d max_width %d", ErrInvalid, s.ContainerWidth, s.MaxWidth)
	}
	if s.FrameRate <= 0 || s.FrameRate > 240 {
		return fmt.Errorf("%w: frame_rate %d", ErrInvalid, s.FrameRate)
	}
	if s.Particles <= 0 {
		return fmt.Errorf("%w: particles %d", ErrInvalid, s.Particles)
	}
	if _, err := log.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level %q", ErrInvalid, s.LogLevel)
	}
	return nil
}

// Interval is the frame period.
func (s Settings) Interval() time.Duration {
	return time.Second / time.Duration(s.FrameRate)
}

// Rand returns the random source for maze generation. Seed 0 means a new
// seed on every launch.
func (s Settings) Rand() *rand.Rand {
	seed := s.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func (s Settings) Game() model.Settings {
	return model.Settings{Cols: s.Cols, Rows: s.Rows, ParticleCount: s.Particles}
}

// ApplyLogLevel sets the global logrus level, keeping the current one when
// the name is unknown.
func (s Settings) ApplyLogLevel() {
	level, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		log.Warnf("unknown log level %q", s.LogLevel)
		return
	}
	log.SetLevel(level)
}
