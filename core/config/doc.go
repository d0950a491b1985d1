// Package config provides configuration management for the calculator server.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Every setting has a default, so the packaged executable
// runs without any configuration at all.
//
// # Configuration Structure
//
//   - Server: bind host and the probed port range (SERVER_PORT_START, ...)
//   - App: asset root, data directory and browser behaviour (APP_ROOT, ...)
//   - Log: logging level and format (LOG_LEVEL, LOG_FORMAT)
//   - Storage: optional S3/MinIO backup of the user data (STORAGE_ENABLED, ...)
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.PortStart)
package config
