// Package config reads the grocerydb configuration file. When no file
// exists a default one is written so the user has something to edit,
// matching the printer-bootstrap behavior users expect.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the full configuration surface.
type Config struct {
	LogLevel string         `toml:"log_level"`
	Printer  PrinterConfig  `toml:"printer"`
	Database DatabaseConfig `toml:"database"`
	UPC      UPCConfig      `toml:"upc"`
}

// PrinterConfig describes the receipt printer target. The USB ids and
// endpoints identify the device node; Profile and CharWidth shape the
// rendered output. With Enabled false everything renders as plain
// text on stdout.
type PrinterConfig struct {
	Enabled   bool   `toml:"enabled"`
	Device    string `toml:"device"` // e.g. /dev/usb/lp0
	VendorID  string `toml:"id_vendor"`
	ProductID string `toml:"id_product"`
	InEP      string `toml:"in_ep"`
	OutEP     string `toml:"out_ep"`
	Profile   string `toml:"profile"`
	CharWidth int    `toml:"chr_width"`
}

// DatabaseConfig locates the two sqlite files (current + history).
type DatabaseConfig struct {
	DataDir string `toml:"data_dir"`
}

// UPCConfig controls the product lookup collaborator.
type UPCConfig struct {
	Enabled bool   `toml:"enabled"`
	BaseURL string `toml:"base_url"`
}

// Default returns the configuration written on first run. The printer
// values match the common TM-P80 compatible thermal printers.
func Default(baseDir string) *Config {
	return &Config{
		LogLevel: "info",
		Printer: PrinterConfig{
			Enabled:   false,
			Device:    "/dev/usb/lp0",
			VendorID:  "0x0416",
			ProductID: "0x5011",
			InEP:      "0x81",
			OutEP:     "0x03",
			Profile:   "TM-P80",
			CharWidth: 48,
		},
		Database: DatabaseConfig{
			DataDir: filepath.Join(baseDir, "data"),
		},
		UPC: UPCConfig{
			Enabled: true,
			BaseURL: "",
		},
	}
}

// DefaultDir returns the per-user configuration directory.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir: %w", err)
	}
	return filepath.Join(base, "grocerydb"), nil
}

// DefaultPath returns the expected config file location.
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Read decodes a Config from the provided reader.
func Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	cfg, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// Init writes cfg to path unless the file already exists.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	defer f.Close()

	return Write(f, cfg)
}

// Load reads the config at path, writing and returning the defaults
// when no file exists yet. The second return reports whether a new
// file was created.
func Load(path string) (*Config, bool, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default(filepath.Dir(path))
		if err := Init(path, cfg); err != nil {
			return nil, false, err
		}
		return cfg, true, nil
	}

	cfg, err := ReadFromFile(path)
	if err != nil {
		return nil, false, err
	}
	return cfg, false, nil
}
