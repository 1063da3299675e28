package calc

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/msto63/numerik/foundation/core/config"
	mdwerrors "github.com/msto63/numerik/foundation/core/errors"
	"github.com/msto63/numerik/foundation/utils/filex"
	"github.com/msto63/numerik/foundation/utils/mathx"
)

// EnvPrefix is the environment prefix for configuration overrides,
// e.g. NUMERIK_ENGINE_SCALE
const EnvPrefix = "NUMERIK"

// Settings holds everything the calculation service and its surfaces read
// from configuration. The config tags name the dotted configuration keys.
type Settings struct {
	Engine  EngineSettings  `config:"engine"`
	Log     LogSettings     `config:"log"`
	Journal JournalSettings `config:"journal"`
	Server  ServerSettings  `config:"server"`
}

// EngineSettings are the defaults applied to accumulator programs and
// divisions that do not name their own
type EngineSettings struct {
	Scale         int32  `config:"scale" validate:"gte=0,lte=64"`
	RoundingMode  string `config:"rounding_mode" validate:"oneof=up down ceiling floor half_up half_down half_even unnecessary"`
	PercentPlaces int    `config:"percent_places" validate:"gte=-16,lte=16"`
	Policy        string `config:"policy" validate:"oneof=wrap_zero reserve_null notice_null"`
}

// LogSettings configure the service logger
type LogSettings struct {
	Level  string `config:"level" validate:"oneof=debug info warn warning error audit"`
	Format string `config:"format" validate:"oneof=json text console logfmt"`
	File   string `config:"file"`
}

// JournalSettings configure persistence of accumulator runs
type JournalSettings struct {
	Enabled bool   `config:"enabled"`
	Path    string `config:"path" validate:"required_if=Enabled true"`
}

// ServerSettings configure the HTTP service and its evaluation cache
type ServerSettings struct {
	Addr      string        `config:"addr" validate:"required,hostname_port"`
	CacheTTL  time.Duration `config:"cache_ttl" validate:"gte=0"`
	CacheSize int           `config:"cache_size" validate:"gte=1,lte=1000000"`
}

// DefaultSettings returns the built-in defaults
func DefaultSettings() Settings {
	return Settings{
		Engine: EngineSettings{
			Scale:         2,
			RoundingMode:  "half_up",
			PercentPlaces: 2,
			Policy:        "wrap_zero",
		},
		Log: LogSettings{
			Level:  "info",
			Format: "console",
		},
		Journal: JournalSettings{
			Enabled: true,
			Path:    filex.HomePath(".numerik", "journal.db"),
		},
		Server: ServerSettings{
			Addr:      ":8088",
			CacheTTL:  5 * time.Minute,
			CacheSize: 1024,
		},
	}
}

// LoadSettings reads settings from cfg on top of the defaults and validates
// them. A nil cfg yields the validated defaults.
func LoadSettings(cfg *config.Config) (Settings, error) {
	s := DefaultSettings()
	if cfg == nil {
		return s, s.Validate()
	}

	s.Engine.Scale = int32(cfg.GetInt("engine.scale", int(s.Engine.Scale)))
	s.Engine.RoundingMode = normalize(cfg.GetString("engine.rounding_mode", s.Engine.RoundingMode))
	s.Engine.PercentPlaces = cfg.GetInt("engine.percent_places", s.Engine.PercentPlaces)
	s.Engine.Policy = normalize(cfg.GetString("engine.policy", s.Engine.Policy))

	s.Log.Level = strings.ToLower(cfg.GetString("log.level", s.Log.Level))
	s.Log.Format = strings.ToLower(cfg.GetString("log.format", s.Log.Format))
	s.Log.File = filex.ExpandHome(cfg.GetString("log.file", s.Log.File))

	s.Journal.Enabled = cfg.GetBool("journal.enabled", s.Journal.Enabled)
	s.Journal.Path = filex.ExpandHome(cfg.GetString("journal.path", s.Journal.Path))

	s.Server.Addr = cfg.GetString("server.addr", s.Server.Addr)
	s.Server.CacheTTL = cfg.GetDuration("server.cache_ttl", s.Server.CacheTTL)
	s.Server.CacheSize = cfg.GetInt("server.cache_size", s.Server.CacheSize)

	return s, s.Validate()
}

func normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("config"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// Validate checks every field and reports the first violation as a
// CONFIG_INVALID error naming the dotted key
func (s Settings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return mdwerrors.ConfigInvalid("settings", nil, err.Error())
	}
	fe := verrs[0]
	key := strings.TrimPrefix(fe.Namespace(), "Settings.")
	reason := fe.Tag()
	if fe.Param() != "" {
		reason += "=" + fe.Param()
	}
	return mdwerrors.ConfigInvalid(key, fe.Value(), "failed "+reason)
}

// engine is the parsed form of EngineSettings
type engine struct {
	scale         int32
	mode          mathx.RoundingMode
	percentPlaces int
	policy        mathx.Policy
}

func (e EngineSettings) parse() (engine, error) {
	mode, err := mathx.ParseRoundingMode(e.RoundingMode)
	if err != nil {
		return engine{}, err
	}
	policy, err := mathx.ParsePolicy(e.Policy)
	if err != nil {
		return engine{}, err
	}
	return engine{scale: e.Scale, mode: mode, percentPlaces: e.PercentPlaces, policy: policy}, nil
}
