package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	InputDir         string        `mapstructure:"input_dir"`
	OutputDir        string        `mapstructure:"output_dir"`
	ContentThreshold int           `mapstructure:"content_threshold"`
	APIURL           string        `mapstructure:"api_url"`
	APIUser          string        `mapstructure:"api_user"`
	APIPassword      string        `mapstructure:"api_password"`
	CacheDir         string        `mapstructure:"cache_dir"`
	UploadLog        string        `mapstructure:"upload_log"`
	SheetsAPIKey     string        `mapstructure:"sheets_api_key"`
	HTTPTimeout      time.Duration `mapstructure:"http_timeout"`
}

// C is the global config instance
var C Config

// Init initializes configuration with viper
func Init() error {
	viper.SetDefault("input_dir", "data/kagyur_text")
	viper.SetDefault("output_dir", "data/kagyur_output")
	viper.SetDefault("content_threshold", 50)
	viper.SetDefault("api_url", "https://wikisource.org/w/api.php")
	viper.SetDefault("api_user", "")
	viper.SetDefault("api_password", "")
	viper.SetDefault("cache_dir", "cache")
	viper.SetDefault("upload_log", "upload_log.csv")
	viper.SetDefault("sheets_api_key", "")
	viper.SetDefault("http_timeout", 30*time.Second)

	viper.SetConfigName("wikisource")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "wikisource"))
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("WIKISOURCE")
	viper.AutomaticEnv()

	// Missing or malformed config files are not fatal; defaults apply.
	_ = viper.ReadInConfig()

	return viper.Unmarshal(&C)
}

// GetInputDir returns the configured input directory
func GetInputDir() string {
	return viper.GetString("input_dir")
}

// GetOutputDir returns the configured output directory
func GetOutputDir() string {
	return viper.GetString("output_dir")
}

// GetContentThreshold returns the meaningful-line threshold for the splitter
func GetContentThreshold() int {
	return viper.GetInt("content_threshold")
}

// GetAPIURL returns the wiki API endpoint
func GetAPIURL() string {
	return viper.GetString("api_url")
}

// GetCacheDir returns the index-page cache directory
func GetCacheDir() string {
	return viper.GetString("cache_dir")
}

// GetUploadLog returns the CSV upload log path
func GetUploadLog() string {
	return viper.GetString("upload_log")
}

// GetHTTPTimeout returns the timeout for outbound HTTP calls
func GetHTTPTimeout() time.Duration {
	return viper.GetDuration("http_timeout")
}
