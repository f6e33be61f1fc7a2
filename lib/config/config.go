package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/viper"
	"github.com/tmpe/globalconfig/lib/codec"
	"github.com/tmpe/globalconfig/lib/lifecycle"
	"github.com/tmpe/globalconfig/lib/storage"
	"github.com/tmpe/globalconfig/lib/util"
	"github.com/tmpe/globalconfig/lib/util/logger"
	"github.com/tmpe/globalconfig/lib/util/time/frames"
)

var (
	CfgFile string
	log     = logger.GetLogger()
)

const TMPE_BASE_DIR = ".tmpe"

// ErrInvalidSettings is returned by Settings.Validate.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings is a typed snapshot of the viper keys this tool reads.
type Settings struct {
	DataDir           string
	Filename          string
	BackupPrefix      string
	Format            string
	MaxBackupProbes   int
	PollingEnabled    bool
	TickShift         uint
	FrameRate         int
	LogLevel          string
	ReloadMinInterval time.Duration
}

// InitConfig reads the settings file, creating a default one in the tool's
// home directory when none exists yet. An explicit CfgFile must exist.
func InitConfig() error {
	if CfgFile != "" {
		viper.SetConfigFile(CfgFile)
	} else {
		viper.AddConfigPath(BuildTMPEDirPath())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("TMPE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	return handleConfigFile()
}

func setDefaults() {
	viper.SetDefault("data_dir", BuildTMPEDirPath())

	viper.SetDefault("global_config.filename", storage.PrimaryFilename)
	// empty means <filename>.bak
	viper.SetDefault("global_config.backup_prefix", "")
	viper.SetDefault("global_config.format", codec.FormatXML)
	viper.SetDefault("global_config.max_backup_probes", 0)

	viper.SetDefault("diagnostics.polling_enabled", false)
	viper.SetDefault("diagnostics.tick_shift", lifecycle.DefaultTickShift)
	viper.SetDefault("diagnostics.frame_rate", frames.DefaultFrameRate)

	viper.SetDefault("log_level", "")
	viper.SetDefault("reload.min_interval", 2*time.Second)
}

// CurrentSettings returns the settings as currently resolved by viper.
func CurrentSettings() Settings {
	return Settings{
		DataDir:           viper.GetString("data_dir"),
		Filename:          viper.GetString("global_config.filename"),
		BackupPrefix:      viper.GetString("global_config.backup_prefix"),
		Format:            viper.GetString("global_config.format"),
		MaxBackupProbes:   viper.GetInt("global_config.max_backup_probes"),
		PollingEnabled:    viper.GetBool("diagnostics.polling_enabled"),
		TickShift:         viper.GetUint("diagnostics.tick_shift"),
		FrameRate:         viper.GetInt("diagnostics.frame_rate"),
		LogLevel:          viper.GetString("log_level"),
		ReloadMinInterval: viper.GetDuration("reload.min_interval"),
	}
}

// Validate reports the first setting that cannot be used.
func (s Settings) Validate() error {
	if s.Filename == "" {
		return oops.Wrapf(ErrInvalidSettings, "global_config.filename is empty")
	}
	if _, err := codec.ByName(s.Format); err != nil {
		return oops.Wrapf(errors.Join(ErrInvalidSettings, err), "global_config.format")
	}
	if s.MaxBackupProbes < 0 {
		return oops.Wrapf(ErrInvalidSettings, "global_config.max_backup_probes is negative: %d", s.MaxBackupProbes)
	}
	if s.TickShift > 31 {
		return oops.Wrapf(ErrInvalidSettings, "diagnostics.tick_shift out of range: %d", s.TickShift)
	}
	if s.FrameRate <= 0 {
		return oops.Wrapf(ErrInvalidSettings, "diagnostics.frame_rate must be positive: %d", s.FrameRate)
	}
	if s.ReloadMinInterval < 0 {
		return oops.Wrapf(ErrInvalidSettings, "reload.min_interval is negative: %s", s.ReloadMinInterval)
	}
	return nil
}

// StorageOptions maps the settings onto storage.Options.
func (s Settings) StorageOptions() storage.Options {
	return storage.Options{
		Dir:             s.DataDir,
		Primary:         s.Filename,
		BackupPrefix:    s.BackupPrefix,
		MaxBackupProbes: s.MaxBackupProbes,
	}
}

func createDefaultConfig(defaultConfigDir string) error {
	defaultConfigFile := filepath.Join(defaultConfigDir, "config.yaml")
	if err := os.MkdirAll(defaultConfigDir, 0o755); err != nil {
		return oops.Wrapf(err, "could not create config directory '%s'", defaultConfigDir)
	}

	if err := viper.SafeWriteConfigAs(defaultConfigFile); err != nil {
		return oops.Wrapf(err, "could not write default config file '%s'", defaultConfigFile)
	}

	log.WithField("file", defaultConfigFile).Debug("Created default configuration")
	return nil
}

func handleConfigFile() error {
	err := viper.ReadInConfig()
	if err == nil {
		log.WithField("file", viper.ConfigFileUsed()).Debug("Using config file")
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	switch {
	case CfgFile != "" && (errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)):
		return oops.Wrapf(err, "config file '%s' is not found", CfgFile)
	case errors.As(err, &notFound):
		return createDefaultConfig(BuildTMPEDirPath())
	default:
		return oops.Wrapf(err, "error reading config file")
	}
}

// BuildTMPEDirPath returns the tool's home directory, $HOME/.tmpe.
func BuildTMPEDirPath() string {
	return filepath.Join(util.UserHome(), TMPE_BASE_DIR)
}
