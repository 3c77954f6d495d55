package config

// Config is the top-level deployment configuration. It decides where data
// comes from and how the page is served; nothing in it is editable from the
// page itself.
type Config struct {
	General  GeneralConfig  `toml:"general"`
	Server   ServerConfig   `toml:"server"`
	Header   HeaderConfig   `toml:"header"`
	Location LocationConfig `toml:"location"`
	Weather  WeatherConfig  `toml:"weather"`
	Crypto   CryptoConfig   `toml:"crypto"`
	Links    LinksConfig    `toml:"links"`
}

// GeneralConfig holds process-wide settings.
type GeneralConfig struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
	// LogFile, if set, receives a copy of every log line.
	LogFile string `toml:"log_file"`
	// UserAgent is sent with every outbound request except geocoding.
	UserAgent string `toml:"user_agent"`
	// RequestTimeout bounds a single outbound request.
	RequestTimeout Duration `toml:"request_timeout"`
	// RequestsPerSecond paces outbound requests across all collectors.
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// ServerConfig configures the HTTP surface used by -serve.
type ServerConfig struct {
	Addr string `toml:"addr"`
	// RateLimit is the number of requests one client may make per
	// RateWindow. Zero disables limiting.
	RateLimit  int      `toml:"rate_limit"`
	RateWindow Duration `toml:"rate_window"`
}

// HeaderConfig controls the greeting banner.
type HeaderConfig struct {
	PageTitle   string   `toml:"page_title"`
	Greeting    string   `toml:"greeting"`
	TypingDelay Duration `toml:"typing_delay"`
	Settle      Duration `toml:"settle"`
}

// LocationConfig decides where the weather is for.
type LocationConfig struct {
	// Latitude and Longitude are the fallback coordinates used whenever
	// geolocation is disabled, denied or fails.
	Latitude  float64 `toml:"latitude"`
	Longitude float64 `toml:"longitude"`
	// IPLocate enables approximate geolocation through IPLocateURL.
	IPLocate    bool   `toml:"ip_locate"`
	IPLocateURL string `toml:"ip_locate_url"`
}

// WeatherConfig configures the weather collector.
type WeatherConfig struct {
	Enabled     bool     `toml:"enabled"`
	ForecastURL string   `toml:"forecast_url"`
	GeocodeURL  string   `toml:"geocode_url"`
	UserAgent   string   `toml:"user_agent"`
	Timezone    string   `toml:"timezone"`
	Interval    Duration `toml:"interval"`
}

// CryptoConfig configures the crypto collector.
type CryptoConfig struct {
	Enabled   bool     `toml:"enabled"`
	TickerURL string   `toml:"ticker_url"`
	IDs       []string `toml:"ids"`
	Interval  Duration `toml:"interval"`
}

// LinksConfig configures the quick links loader.
type LinksConfig struct {
	Enabled  bool     `toml:"enabled"`
	Path     string   `toml:"path"`
	Interval Duration `toml:"interval"`
}
