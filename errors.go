package sml

import (
	"reflect"

	smlerrors "github.com/KimNorgaard/go-sml/errors"
)

// Error kinds reported by Load and LoadFile. Test for them with errors.Is.
var (
	ErrFileNotFound       = smlerrors.ErrFileNotFound
	ErrUnreadable         = smlerrors.ErrUnreadable
	ErrUnterminatedString = smlerrors.ErrUnterminatedString
	ErrUnknownToken       = smlerrors.ErrUnknownToken
	ErrTooManyTokens      = smlerrors.ErrTooManyTokens
	ErrTreeTooDeep        = smlerrors.ErrTreeTooDeep
	ErrUnbalancedEnd      = smlerrors.ErrUnbalancedEnd
	ErrOrphanAttribute    = smlerrors.ErrOrphanAttribute
	ErrUnexpectedEOF      = smlerrors.ErrUnexpectedEOF
	ErrTrailingContent    = smlerrors.ErrTrailingContent
)

// ParseError is the error returned for malformed input. It carries the
// error kind and the line and column it was found at.
type ParseError = smlerrors.ParseError

// An UnmarshalTypeError describes a value that was not appropriate for a
// Go value of a specific type.
type UnmarshalTypeError struct {
	Value string       // description of the SML value: "integer", "element", ...
	Type  reflect.Type // type of Go value it could not be assigned to
	Field string       // dotted path of the attribute or element
}

func (e *UnmarshalTypeError) Error() string {
	if e.Field != "" {
		return "sml: cannot unmarshal " + e.Value + " into Go value of type " + e.Type.String() + " at " + e.Field
	}
	return "sml: cannot unmarshal " + e.Value + " into Go value of type " + e.Type.String()
}

// An UnmarshalerError represents an error from calling an UnmarshalSML or
// UnmarshalText method.
type UnmarshalerError struct {
	Type reflect.Type
	Err  error
}

func (e *UnmarshalerError) Error() string {
	return "sml: error calling unmarshaler for type " + e.Type.String() + ": " + e.Err.Error()
}

func (e *UnmarshalerError) Unwrap() error { return e.Err }

// A MarshalerError represents an error from calling a MarshalText method.
type MarshalerError struct {
	Type reflect.Type
	Err  error
}

func (e *MarshalerError) Error() string {
	return "sml: error calling MarshalText for type " + e.Type.String() + ": " + e.Err.Error()
}

func (e *MarshalerError) Unwrap() error { return e.Err }
