package tracelog

import "time"

const (
	emptyString = ""

	// EnvLevel overrides Config.Level for the whole process when set.
	EnvLevel = "TRACELOG_LEVEL"
	// EnvOTLPEndpoint enables span export when Config.TracingEndpoint is
	// empty.
	EnvOTLPEndpoint = "TRACELOG_OTLP_ENDPOINT"

	// TestLogDir is where InitTestLogging writes.
	TestLogDir = "_logs_unittest"

	defaultShutdownTimeout = 5 * time.Second
)

const (
	errMsgNilService    = "Logging service is nil."
	errMsgNilConfig     = "Logging config is nil."
	errMsgEmptyService  = "Service name is empty."
	errMsgConfigInvalid = "Logging configuration is invalid."
	errMsgLogDir        = "Log directory is not usable."
)
