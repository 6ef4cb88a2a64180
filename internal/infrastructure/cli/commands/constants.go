package commands

import "errors"

// Error messages
const (
	ErrDoctorServiceUnavailable = "doctor service unavailable"
)

var (
	ErrServeLocalMode      = errors.New("serve cannot use local mode: the server would call itself")
	ErrAutoAnalyzeDisabled = errors.New("auto-analyze is disabled; enable it with: hateshield settings set autoAnalyze true")
)

// Success messages
const (
	MsgConfigurationValid       = "Configuration valid"
	MsgNoDifferencesFromDefault = "No differences from default configuration."
)
