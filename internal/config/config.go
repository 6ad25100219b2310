package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Template TemplateConfig
	Output   OutputConfig
	Tax      TaxConfig
	Convert  ConvertConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// StoreConfig holds the flat-file JSON store locations.
type StoreConfig struct {
	DataDir        string `mapstructure:"data_dir"`
	BackupDir      string `mapstructure:"backup_dir"`
	ProfilesFile   string `mapstructure:"profiles_file"`
	TransportFile  string `mapstructure:"transport_file"`
	SequenceFile   string `mapstructure:"sequence_file"`
}

// ProfilesPath returns the absolute path of the buyer profile store.
func (s *StoreConfig) ProfilesPath() string {
	return filepath.Join(s.DataDir, s.ProfilesFile)
}

// TransportPath returns the absolute path of the transport mode store.
func (s *StoreConfig) TransportPath() string {
	return filepath.Join(s.DataDir, s.TransportFile)
}

// SequencePath returns the absolute path of the invoice sequence state file.
func (s *StoreConfig) SequencePath() string {
	return filepath.Join(s.DataDir, s.SequenceFile)
}

// TemplateConfig holds invoice template discovery settings.
type TemplateConfig struct {
	Dir  string `mapstructure:"dir"`
	File string `mapstructure:"file"`
}

// OutputConfig holds generated artifact directories.
type OutputConfig struct {
	Dir    string `mapstructure:"dir"`
	PDFDir string `mapstructure:"pdf_dir"`
}

// TaxConfig holds the GST rates as fractions (0.05 == 5%). CGST and SGST are
// each half of the combined intra-state rate.
type TaxConfig struct {
	IGSTRate float64 `mapstructure:"igst_rate"`
	CGSTRate float64 `mapstructure:"cgst_rate"`
	SGSTRate float64 `mapstructure:"sgst_rate"`
}

// ConvertConfig holds PDF conversion settings.
type ConvertConfig struct {
	Provider    string `mapstructure:"provider"`
	Binary      string `mapstructure:"binary"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the GSTBILL_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GSTBILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// Store defaults
	v.SetDefault("store.data_dir", "data")
	v.SetDefault("store.backup_dir", "data/_backups")
	v.SetDefault("store.profiles_file", "buyer_profiles.json")
	v.SetDefault("store.transport_file", "transport_modes.json")
	v.SetDefault("store.sequence_file", "app_state.json")

	// Template defaults
	v.SetDefault("template.dir", "templates")
	v.SetDefault("template.file", "")

	// Output defaults
	v.SetDefault("output.dir", "generated_invoices")
	v.SetDefault("output.pdf_dir", "generated_invoices_pdf")

	// Tax defaults (5% IGST, or 2.5% + 2.5% split intra-state)
	v.SetDefault("tax.igst_rate", 0.05)
	v.SetDefault("tax.cgst_rate", 0.025)
	v.SetDefault("tax.sgst_rate", 0.025)

	// Convert defaults
	v.SetDefault("convert.provider", "noop")
	v.SetDefault("convert.binary", "soffice")
	v.SetDefault("convert.timeout_secs", 60)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "GSTBILL_SERVER_PORT",
		"server.read_timeout":  "GSTBILL_SERVER_READ_TIMEOUT",
		"server.write_timeout": "GSTBILL_SERVER_WRITE_TIMEOUT",
		"server.environment":   "GSTBILL_SERVER_ENVIRONMENT",
		"store.data_dir":       "GSTBILL_STORE_DATA_DIR",
		"store.backup_dir":     "GSTBILL_STORE_BACKUP_DIR",
		"store.profiles_file":  "GSTBILL_STORE_PROFILES_FILE",
		"store.transport_file": "GSTBILL_STORE_TRANSPORT_FILE",
		"store.sequence_file":  "GSTBILL_STORE_SEQUENCE_FILE",
		"template.dir":         "GSTBILL_TEMPLATE_DIR",
		"template.file":        "GSTBILL_TEMPLATE_FILE",
		"output.dir":           "GSTBILL_OUTPUT_DIR",
		"output.pdf_dir":       "GSTBILL_OUTPUT_PDF_DIR",
		"tax.igst_rate":        "GSTBILL_TAX_IGST_RATE",
		"tax.cgst_rate":        "GSTBILL_TAX_CGST_RATE",
		"tax.sgst_rate":        "GSTBILL_TAX_SGST_RATE",
		"convert.provider":     "GSTBILL_CONVERT_PROVIDER",
		"convert.binary":       "GSTBILL_CONVERT_BINARY",
		"convert.timeout_secs": "GSTBILL_CONVERT_TIMEOUT_SECS",
		"log.level":            "GSTBILL_LOG_LEVEL",
		"log.format":           "GSTBILL_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// PaaS hosts set a PORT env var. Use it if GSTBILL_SERVER_PORT is not set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("GSTBILL_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Store = StoreConfig{
		DataDir:       v.GetString("store.data_dir"),
		BackupDir:     v.GetString("store.backup_dir"),
		ProfilesFile:  v.GetString("store.profiles_file"),
		TransportFile: v.GetString("store.transport_file"),
		SequenceFile:  v.GetString("store.sequence_file"),
	}
	cfg.Template = TemplateConfig{
		Dir:  v.GetString("template.dir"),
		File: v.GetString("template.file"),
	}
	cfg.Output = OutputConfig{
		Dir:    v.GetString("output.dir"),
		PDFDir: v.GetString("output.pdf_dir"),
	}
	cfg.Tax = TaxConfig{
		IGSTRate: v.GetFloat64("tax.igst_rate"),
		CGSTRate: v.GetFloat64("tax.cgst_rate"),
		SGSTRate: v.GetFloat64("tax.sgst_rate"),
	}
	cfg.Convert = ConvertConfig{
		Provider:    v.GetString("convert.provider"),
		Binary:      v.GetString("convert.binary"),
		TimeoutSecs: v.GetInt("convert.timeout_secs"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	return cfg, nil
}

// EnsureDirs creates the output, PDF, data, and backup directories.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.Output.Dir, c.Output.PDFDir, c.Store.DataDir, c.Store.BackupDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// DiscoverTemplate returns the template path to use. An explicitly configured
// file wins; otherwise the template directory is searched for the most
// recently modified .xlsx, preferring names containing "bill" and skipping
// Office lock files.
func (c *Config) DiscoverTemplate() string {
	if c.Template.File != "" {
		if _, err := os.Stat(c.Template.File); err == nil {
			return c.Template.File
		}
	}
	entries, err := os.ReadDir(c.Template.Dir)
	if err != nil {
		return ""
	}
	type candidate struct {
		path    string
		modTime time.Time
		bill    bool
	}
	var candidates []candidate
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(name), ".xlsx") || strings.HasPrefix(name, "~$") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{
			path:    filepath.Join(c.Template.Dir, name),
			modTime: info.ModTime(),
			bill:    strings.Contains(strings.ToLower(name), "bill"),
		})
	}
	if len(candidates) == 0 {
		return ""
	}
	best := candidates[0]
	for _, cand := range candidates[1:] {
		if cand.bill != best.bill {
			if cand.bill {
				best = cand
			}
			continue
		}
		if cand.modTime.After(best.modTime) {
			best = cand
		}
	}
	return best.path
}
