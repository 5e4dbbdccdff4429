package search

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"tagpoint/internal/curve"
)

type Backend string

const (
	BackendBig   Backend = "big"
	BackendField Backend = "field"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

var (
	ErrUnknownBackend = errors.New("unknown backend")
	ErrUnknownFormat  = errors.New("unknown format")
)

// Config keys, shared by flags, TAGPOINT_* env vars and config files.
const (
	KeyPhrase        = "phrase"
	KeyStart         = "start"
	KeyMaxIterations = "max-iterations"
	KeyBackend       = "backend"
	KeyFormat        = "format"
	KeyPubKey        = "pubkey"
	KeyLogLevel      = "log-level"

	EnvPrefix = "TAGPOINT"
)

type Config struct {
	Phrase        string
	Start         string // overrides Phrase when set
	MaxIterations uint64 // 0 => unbounded
	Backend       Backend
	Format        Format
	PubKey        bool
	LogLevel      string
}

func DefaultConfig() Config {
	return Config{
		Phrase:   DefaultPhrase,
		Backend:  BackendBig,
		Format:   FormatText,
		LogLevel: "warn",
	}
}

// NewViper returns a viper instance with defaults and env binding set up.
// A non-empty cfgFile is read as well; flags bound later take precedence.
func NewViper(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	d := DefaultConfig()
	v.SetDefault(KeyPhrase, d.Phrase)
	v.SetDefault(KeyStart, d.Start)
	v.SetDefault(KeyMaxIterations, d.MaxIterations)
	v.SetDefault(KeyBackend, string(d.Backend))
	v.SetDefault(KeyFormat, string(d.Format))
	v.SetDefault(KeyPubKey, d.PubKey)
	v.SetDefault(KeyLogLevel, d.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", cfgFile)
		}
	}
	return v, nil
}

// LoadConfig reads and validates a Config from v.
func LoadConfig(v *viper.Viper) (*Config, error) {
	backend, err := parseBackend(v.GetString(KeyBackend))
	if err != nil {
		return nil, err
	}
	format, err := parseFormat(v.GetString(KeyFormat))
	if err != nil {
		return nil, err
	}
	// GetUint64 maps junk to 0, which would silently lift the cap
	maxIter, err := cast.ToUint64E(v.Get(KeyMaxIterations))
	if err != nil {
		return nil, errors.Wrapf(curve.ErrInvalidArgument, "%s: %v", KeyMaxIterations, err)
	}
	cfg := &Config{
		Phrase:        v.GetString(KeyPhrase),
		Start:         strings.TrimSpace(v.GetString(KeyStart)),
		MaxIterations: maxIter,
		Backend:       backend,
		Format:        format,
		PubKey:        v.GetBool(KeyPubKey),
		LogLevel:      v.GetString(KeyLogLevel),
	}
	// Validate parseability early (friendlier errors)
	if _, err := cfg.StartX(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// StartX is the first candidate: Start if set, else the encoded Phrase.
func (c *Config) StartX() (*big.Int, error) {
	if c.Start != "" {
		return ParseStart(c.Start)
	}
	return EncodePhrase(c.Phrase)
}

// NewRootFinder returns the root backend named b.
func NewRootFinder(b Backend) (curve.RootFinder, error) {
	switch b {
	case BackendBig:
		return curve.Secp256k1(), nil
	case BackendField:
		return curve.NewFieldValRoot(), nil
	default:
		return nil, errors.Wrapf(ErrUnknownBackend, "%q", b)
	}
}

func parseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "big", "mathbig":
		return BackendBig, nil
	case "field", "fieldval":
		return BackendField, nil
	default:
		return BackendBig, errors.Wrapf(ErrUnknownBackend, "%q", s)
	}
}

func parseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatText, errors.Wrapf(ErrUnknownFormat, "%q", s)
	}
}
