package config

const (
	defaultBackendURL      = "http://127.0.0.1:5000"
	defaultConvertTimeout  = 120
	defaultDownloadTimeout = 60
	defaultHealthTimeout   = 5
	defaultDownloadDir     = "~/Downloads"
	defaultDataDir         = "~/.local/share/pdf2word"
	defaultLogDir          = "~/.local/share/pdf2word/logs"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Backend: Backend{
			URL:             defaultBackendURL,
			ConvertTimeout:  defaultConvertTimeout,
			DownloadTimeout: defaultDownloadTimeout,
			HealthTimeout:   defaultHealthTimeout,
		},
		Paths: Paths{
			DownloadDir: defaultDownloadDir,
			DataDir:     defaultDataDir,
			LogDir:      defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
