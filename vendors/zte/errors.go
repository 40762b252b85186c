package zte

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrorCode represents a normalized error code for ZTE CLI replies
type ErrorCode string

const (
	ErrONUExists      ErrorCode = "ONU_EXISTS"
	ErrONUNotFound    ErrorCode = "ONU_NOT_FOUND"
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrIncomplete     ErrorCode = "INCOMPLETE_COMMAND"
	ErrWrongMode      ErrorCode = "WRONG_MODE"
	ErrProfileMissing ErrorCode = "PROFILE_MISSING"
	ErrVLANInvalid    ErrorCode = "VLAN_INVALID"
	ErrTypeMissing    ErrorCode = "ONU_TYPE_MISSING"
	ErrConfigLocked   ErrorCode = "CONFIG_LOCKED"
	ErrUnknown        ErrorCode = "UNKNOWN"
)

// errorMapping describes how to react to one class of CLI reply
type errorMapping struct {
	pattern     string
	code        ErrorCode
	human       string
	action      string
	recoverable bool
}

// zteErrorPatterns is checked in order; the first substring match wins.
var zteErrorPatterns = []errorMapping{
	{
		pattern: "already exist",
		code:    ErrONUExists,
		human:   "ONU id or serial is already registered on this port",
		action:  "Pick a free id or remove the existing ONU first",
	},
	{
		pattern: "does not exist",
		code:    ErrONUNotFound,
		human:   "ONU is not registered",
		action:  "Register the ONU on its gpon_olt interface before configuring it",
	},
	{
		pattern: "onu type",
		code:    ErrTypeMissing,
		human:   "ONU type is not defined on this OLT",
		action:  "Create the type with onu-type or use an existing one",
	},
	{
		pattern: "profile",
		code:    ErrProfileMissing,
		human:   "Referenced profile does not exist",
		action:  "Create the tcont/vlan profile first",
	},
	{
		pattern: "vlan",
		code:    ErrVLANInvalid,
		human:   "VLAN is invalid or not configured",
		action:  "Use VLAN ID between 1 and 4094 configured on the uplink",
	},
	{
		pattern:     "locked",
		code:        ErrConfigLocked,
		human:       "Configuration is locked by another session",
		action:      "Retry once the other session leaves configuration mode",
		recoverable: true,
	},
	{
		pattern: "command not found",
		code:    ErrWrongMode,
		human:   "Command is not available in the current mode",
		action:  "Check that the previous interface command succeeded",
	},
	{
		pattern: "incomplete command",
		code:    ErrIncomplete,
		human:   "Command is incomplete",
		action:  "Check command parameters",
	},
	{
		pattern: "invalid input",
		code:    ErrInvalidInput,
		human:   "Invalid command syntax",
		action:  "Check command parameters",
	},
}

// "%Error 20203: ..." or "%Code 32310-GPONSRV : ..."
var replyPattern = regexp.MustCompile(`(?m)^\s*%\s*(?:Error|Code)\s+(\d+)[^:]*:\s*(.*)$`)

// CLIError is a ZTE CLI reply that rejected a command
type CLIError struct {
	Command     string
	Reply       string
	VendorCode  string
	Code        ErrorCode
	Human       string
	Action      string
	Recoverable bool
}

func (e *CLIError) Error() string {
	if e.VendorCode != "" {
		return fmt.Sprintf("[%s %s] %s (action: %s)", e.Code, e.VendorCode, e.Human, e.Action)
	}
	return fmt.Sprintf("[%s] %s (action: %s)", e.Code, e.Human, e.Action)
}

// DetectCLIError inspects the output of command and returns a *CLIError
// when the OLT rejected it, nil otherwise.
func DetectCLIError(command, output string) *CLIError {
	lower := strings.ToLower(output)

	m := replyPattern.FindStringSubmatch(output)
	if m == nil && !strings.Contains(lower, "invalid input") && !strings.Contains(lower, "incomplete command") {
		return nil
	}

	e := &CLIError{
		Command: command,
		Reply:   strings.TrimSpace(output),
		Code:    ErrUnknown,
		Human:   strings.TrimSpace(output),
		Action:  "Check OLT logs for details",
	}
	if m != nil {
		e.VendorCode = m[1]
		e.Human = strings.TrimSpace(m[2])
	}

	for _, mapping := range zteErrorPatterns {
		if strings.Contains(lower, mapping.pattern) {
			e.Code = mapping.code
			e.Human = mapping.human
			e.Action = mapping.action
			e.Recoverable = mapping.recoverable
			break
		}
	}
	return e
}

// IsRecoverable returns true if the error can be retried
func IsRecoverable(err error) bool {
	var e *CLIError
	if errors.As(err, &e) {
		return e.Recoverable
	}
	return false
}
