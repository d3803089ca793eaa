package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"enduro/internal/store"
)

// schemaVersion tags the envelope shape itself, independent of any
// document's own schema_version.
const schemaVersion = 1

// envelope is the JSON contract every subcommand renders to stdout:
// {schema_version, ok, error_type, message, data}.
type envelope struct {
	SchemaVersion int         `json:"schema_version"`
	OK            bool        `json:"ok"`
	ErrorType     string      `json:"error_type,omitempty"`
	Message       string      `json:"message,omitempty"`
	Data          interface{} `json:"data,omitempty"`
}

// exitCode maps a store.ErrorKind to the documented process exit code:
// 0 ok; 2 config_missing; 3 auth_error; 4 network_error or
// rate_limit; 5 validation_error or insufficient_data; 1 everything else.
func exitCode(kind store.ErrorKind) int {
	switch kind {
	case store.KindConfigMissing:
		return 2
	case store.KindAuthError:
		return 3
	case store.KindNetworkError, store.KindRateLimit:
		return 4
	case store.KindValidationError, store.KindInsufficientData:
		return 5
	default:
		return 1
	}
}

// emitOK renders a successful envelope and returns exit code 0.
func emitOK(data interface{}) int {
	writeEnvelope(envelope{SchemaVersion: schemaVersion, OK: true, Data: data})
	return 0
}

// emitErr renders a failure envelope, deriving error_type and the exit
// code from err's *store.Error kind when present, or internal_error
// otherwise. The outer surface always emits a structured envelope, never
// a crash or partial result.
func emitErr(err error) int {
	var se *store.Error
	kind := store.KindInternal
	if errors.As(err, &se) {
		kind = se.Kind
	}
	writeEnvelope(envelope{
		SchemaVersion: schemaVersion,
		OK:            false,
		ErrorType:     string(kind),
		Message:       err.Error(),
	})
	return exitCode(kind)
}

func writeEnvelope(e envelope) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(e); err != nil {
		fmt.Fprintf(os.Stderr, "trainctl: encoding envelope: %v\n", err)
	}
}
