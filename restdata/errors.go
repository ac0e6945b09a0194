// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"

	"github.com/diffeo/go-notebook/notebook"
)

// ErrorStatus describes errors that correspond to specific HTTP
// status codes.
type ErrorStatus interface {
	// HTTPStatus returns the HTTP status code for this error.
	HTTPStatus() int
}

// ErrUnsupportedMediaType is returned from Decode() if the provided
// Content-Type: is unrecognized.  This translates directly into the
// equivalent HTTP 415 error.
type ErrUnsupportedMediaType struct {
	Type string
}

func (e ErrUnsupportedMediaType) Error() string {
	return fmt.Sprintf("Unsupported media type %q", e.Type)
}

// HTTPStatus returns a fixed 415 Unsupported Media Type error code.
func (e ErrUnsupportedMediaType) HTTPStatus() int {
	return http.StatusUnsupportedMediaType
}

// ErrNotFound is a wrapper error that indicates that, due to the
// embedded error, a REST service should return a 404 Not Found error.
type ErrNotFound struct {
	Err error
}

func (e ErrNotFound) Error() string {
	return e.Err.Error()
}

// HTTPStatus returns a fixed 404 Not Found error code.
func (e ErrNotFound) HTTPStatus() int {
	return http.StatusNotFound
}

// ErrBadRequest is returned as an error when a request's verb, query
// parameters, and body cannot be combined into a valid operation, or
// when there is an error decoding HTTP headers or the request body.
type ErrBadRequest struct {
	Err error
}

func (e ErrBadRequest) Error() string {
	return e.Err.Error()
}

// HTTPStatus returns a fixed 400 Bad Request HTTP status code.
func (e ErrBadRequest) HTTPStatus() int {
	return http.StatusBadRequest
}

// ErrConflict is a wrapper error for operations that would land on a
// name that is already taken.
type ErrConflict struct {
	Err error
}

func (e ErrConflict) Error() string {
	return e.Err.Error()
}

// HTTPStatus returns a fixed 409 Conflict HTTP status code.
func (e ErrConflict) HTTPStatus() int {
	return http.StatusConflict
}

// FromError populates an ErrorResponse based on an error value.  This
// remaps the well-known notebook errors to specific e.Error codes.
func (e *ErrorResponse) FromError(err error) {
	switch err {
	case notebook.ErrNoNotebookName:
		e.Error = "ErrNoNotebookName"
	case notebook.ErrBadNotebookName:
		e.Error = "ErrBadNotebookName"
	}
	switch et := err.(type) {
	case notebook.ErrNoSuchNotebook:
		e.Error = "ErrNoSuchNotebook"
		e.Name = et.Name
		e.Path = et.Path
	case notebook.ErrNotebookExists:
		e.Error = "ErrNotebookExists"
		e.Name = et.Name
		e.Path = et.Path
	case notebook.ErrNoSuchCheckpoint:
		e.Error = "ErrNoSuchCheckpoint"
		e.Value = et.ID
	case ErrNotFound:
		// Discard this wrapper and return the embedded error
		e.FromError(et.Err)
	case ErrBadRequest:
		e.FromError(et.Err)
	case ErrConflict:
		e.FromError(et.Err)
	}
}

// ToError converts e back to a notebook error, if that is possible.
// If not, returns a plain error with e.Message text.
func (e *ErrorResponse) ToError() error {
	switch e.Error {
	case "ErrNoNotebookName":
		return notebook.ErrNoNotebookName
	case "ErrBadNotebookName":
		return notebook.ErrBadNotebookName
	case "ErrNoSuchNotebook":
		return notebook.ErrNoSuchNotebook{Name: e.Name, Path: e.Path}
	case "ErrNotebookExists":
		return notebook.ErrNotebookExists{Name: e.Name, Path: e.Path}
	case "ErrNoSuchCheckpoint":
		return notebook.ErrNoSuchCheckpoint{ID: e.Value}
	default:
		return errors.New(e.Message)
	}
}

// FromPanic populates an error response based on a panic.  Typical
// use is:
//
//     defer func() {
//         if obj := recover(); obj != nil {
//             resp := restdata.ErrorResponse{}
//             resp.FromPanic(obj)
//             // write resp out as makes sense
//         }
//    }
func (e *ErrorResponse) FromPanic(obj interface{}) {
	e.Error = "panic"
	if recoveredError, isError := obj.(error); isError {
		e.Message = recoveredError.Error()
	} else {
		e.Message = fmt.Sprintf("%+v", obj)
	}
	var stack [4096]byte
	len := runtime.Stack(stack[:], false)
	e.Stack = string(stack[:len])
}
