package providers

import (
	"errors"
	"fmt"
	"langtrack/internal/structures"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid configuration: %w", v.Errors.OneError())
	}

	p := cv.conf.Persistence
	if p.Backend != "memory" && p.Path == "" {
		return errors.New("invalid configuration: persistence.path is required for the " + p.Backend + " backend")
	}
	if cv.conf.YouTube.Enabled && cv.conf.YouTube.ApiKey == "" {
		return errors.New("invalid configuration: youtube.apiKey is required when youtube is enabled")
	}
	return nil
}
