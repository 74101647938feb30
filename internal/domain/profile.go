package domain

import "github.com/go-playground/validator/v10"

// Profile is the persisted form of a service configuration.
type Profile struct {
	Name     string      `yaml:"name" validate:"required,max=64"`
	Service  ServiceKind `yaml:"service" validate:"required,oneof=face text"`
	Endpoint string      `yaml:"endpoint" validate:"required,url"`
	Key      string      `yaml:"key" validate:"required"`
}

// Config converts the profile into a configured ServiceConfig.
func (p Profile) Config() ServiceConfig {
	return ServiceConfig{
		Endpoint:   p.Endpoint,
		Key:        p.Key,
		Configured: true,
	}
}

var validate = validator.New()

// Validate checks the profile's struct tags and returns validator.ValidationErrors
// on failure.
func (p Profile) Validate() error {
	return validate.Struct(p)
}
