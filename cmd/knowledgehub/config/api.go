package config

// apiConf holds API-related configuration
type apiConf struct {
	// ServerURL is the public URL advertised in the OpenAPI document
	ServerURL string `yaml:"server_url"`
}
