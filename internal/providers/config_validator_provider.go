package providers

import (
	"fmt"

	"github.com/gookit/validate"

	"mindd/internal/structures"
)

// CnfValidator runs the struct-tag validation rules declared on the
// config structures.
type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (v *CnfValidator) Validate() error {
	checks := map[string]interface{}{
		"webServer":   v.conf.WebServer,
		"persistence": v.conf.Persistence,
		"scheduler":   v.conf.Scheduler,
		"logger":      v.conf.Logger,
	}
	for section, target := range checks {
		val := validate.Struct(target)
		if !val.Validate() {
			return fmt.Errorf("config section %s: %s", section, val.Errors.One())
		}
	}
	return nil
}
