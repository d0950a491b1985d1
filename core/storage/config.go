package storage

// Config holds configuration for the optional backup bucket.
type Config struct {
	// Enabled turns on mirroring of the user data document to the bucket.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the name of the bucket backups are written to.
	Bucket string `mapstructure:"bucket" default:"torch-calculator"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// Object is the object key the document is stored under.
	Object string `mapstructure:"object" default:"torch_calculator_data.json"`
	// TimeoutSeconds bounds connection setup and each upload.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
}
