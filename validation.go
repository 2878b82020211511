package tracelog

import (
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/openmeta-io/tracelog/errs"
)

var validate *validator.Validate
var validateOnce sync.Once

func validateConfig(cfg *Config) error {
	const op errs.Op = "tracelog.validateConfig"
	if cfg == nil {
		return errs.New(op).Msg(errMsgNilConfig)
	}

	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})

	if err := validate.Struct(cfg); err != nil {
		return errs.New(op).Err(err).Msg(errMsgConfigInvalid)
	}

	if _, err := parseLevel(cfg.Level); err != nil {
		return errs.New(op).Err(err).Msg(errMsgConfigInvalid)
	}

	return nil
}
