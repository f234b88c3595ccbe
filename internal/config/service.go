package config

type ServiceConfig struct {
	Name                 string `yaml:"name"`
	Environment          string `yaml:"environment"`
	Version              string `yaml:"version"`
	ClientURL            string `yaml:"client_url"`
	StripeSecretKey      string `yaml:"stripe_secret_key"`
	StripePublishableKey string `yaml:"stripe_publishable_key"`
	// TestGuardianEmail is returned by the simulated release/transfer
	// endpoints until Stripe Connect accounts are wired in.
	TestGuardianEmail string `yaml:"test_guardian_email"`
}
