package constants

const (
	// AppName is used for config paths, the keyring service name, and logging.
	AppName = "lawtime"

	// KeyringUser is the keyring account under which the narrative API key is stored.
	KeyringUser = "narrative-api-key"

	// APIKeyEnvVar overrides the keyring when set.
	APIKeyEnvVar = "LAWTIME_API_KEY"
)
