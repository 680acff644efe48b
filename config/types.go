package config

// Config represents the complete configuration structure
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Proxy   ProxyConfig   `mapstructure:"proxy"`
	Shop    ShopConfig    `mapstructure:"shop"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds TaskHive API connection details
type APIConfig struct {
	Key            string `mapstructure:"key"`
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// ProxyConfig holds the default upstream proxy forwarded with solve and
// shop requests
type ProxyConfig struct {
	Default string `mapstructure:"default"`
}

// ShopConfig holds shop-specific settings
type ShopConfig struct {
	AccessToken string `mapstructure:"access_token"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
