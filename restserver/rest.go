// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

// This file contains a REST skeleton framework.
//
// The bulk of this is dealing with HTTP content type negotiation, and
// providing a standard way to deal with input and output values.
// Handler functions get a parsed context (and, for verbs that carry
// one, a decoded JSON body as a loose dictionary) and return a
// response object; this file turns that into status codes, headers,
// and an encoded body, and turns errors into ErrorResponse documents.

import (
	"bytes"
	"errors"
	"fmt"
	"io/ioutil"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/diffeo/go-notebook/notebook"
	"github.com/diffeo/go-notebook/restdata"
)

var typeMap = map[string]string{
	"text/json":              restdata.V1JSONMediaType,
	"application/json":       restdata.V1JSONMediaType,
	restdata.JSONMediaType:   restdata.V1JSONMediaType,
	restdata.V1JSONMediaType: restdata.V1JSONMediaType,
}

// errBadAccept is returned from negotiateResponse() if the Accept:
// header is malformed (and no more specific error applies).
var errBadAccept = errors.New("Invalid Accept: header")

// errNotAcceptable is returned from negotiateResponse() if the Accept:
// header does not mention any media types we can actually return.
type errNotAcceptable struct{}

func (e errNotAcceptable) Error() string {
	return "No acceptable representation for response"
}

func (e errNotAcceptable) HTTPStatus() int {
	return http.StatusNotAcceptable
}

// errMethodNotAllowed is used within the resourceHandler
// implementation to flag an error if a particular HTTP method is not
// allowed.  This corresponds exactly to the 405 Method Not Allowed
// HTTP status code.
type errMethodNotAllowed struct {
	Method string
}

func (e errMethodNotAllowed) Error() string {
	return fmt.Sprintf("Method %v not allowed", e.Method)
}

func (e errMethodNotAllowed) HTTPStatus() int {
	return http.StatusMethodNotAllowed
}

// modelResponse is returned as a value response from handler
// functions whose result is a single notebook or checkpoint model,
// and which therefore need Location and Last-Modified headers beyond
// a bare 200 with a body.
type modelResponse struct {
	// Created indicates that a new resource was made, turning the
	// response into a 201.
	Created bool

	// Location holds the canonical URL of the resource.  If
	// empty, no Location header is sent.
	Location string

	// LastModified stamps the Last-Modified header.
	LastModified time.Time

	// Body contains the object sent in the body of the response.
	Body interface{}
}

type resourceHandler struct {
	// Context reads an HTTP request and produces a context object.
	Context func(req *http.Request) (*context, error)

	// Get, if non-nil, returns a representation of the object.
	Get func(*context) (interface{}, error)

	// Put, Post, and Patch, if non-nil, handle the corresponding
	// verbs.  The dictionary parameter holds the decoded JSON
	// request body, nil if the request had none.  The return can
	// be any useful return value, including modelResponse.
	Put   func(*context, map[string]interface{}) (interface{}, error)
	Post  func(*context, map[string]interface{}) (interface{}, error)
	Patch func(*context, map[string]interface{}) (interface{}, error)

	// Delete, if non-nil, deletes the object.
	Delete func(*context) (interface{}, error)
}

// asHTTPError maps well-known notebook errors onto wrappers carrying
// their HTTP status.  Errors that already know their status, and
// unrecognized errors, pass through unchanged.
func asHTTPError(err error) error {
	switch err {
	case notebook.ErrNoNotebookName, notebook.ErrBadNotebookName:
		return restdata.ErrBadRequest{Err: err}
	}
	switch err.(type) {
	case notebook.ErrNoSuchNotebook:
		return restdata.ErrNotFound{Err: err}
	case notebook.ErrNoSuchCheckpoint:
		return restdata.ErrNotFound{Err: err}
	case notebook.ErrNotebookExists:
		return restdata.ErrConflict{Err: err}
	}
	return err
}

// readBody consumes a request body and decodes it as a JSON
// dictionary.  An absent or empty body yields a nil map; the
// operation resolution rules care about the difference between no
// body and an empty dictionary body.
func readBody(req *http.Request) (map[string]interface{}, error) {
	if req.Body == nil {
		return nil, nil
	}
	data, err := ioutil.ReadAll(req.Body)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	body := map[string]interface{}{}
	err = restdata.Decode(req.Header.Get("Content-Type"), bytes.NewReader(data), &body)
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (h *resourceHandler) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	var (
		ctx          *context
		body         map[string]interface{}
		out          interface{}
		err          error
		status       int
		responseType string
	)

	// Recover from panics by sending an HTTP error.
	defer func() {
		if recovered := recover(); recovered != nil {
			response := restdata.ErrorResponse{}
			response.FromPanic(recovered)
			resp.Header().Set("Content-Type", restdata.V1JSONMediaType)
			resp.WriteHeader(http.StatusInternalServerError)
			_ = restdata.Encode(resp, response)
		}
	}()

	// Start by trying to come up with a response type, even before
	// trying to parse the input.  This determines what format an
	// error message could be sent back as.
	status = http.StatusBadRequest
	responseType, err = negotiateResponse(req)
	if err != nil {
		// Gotta pick something
		responseType = restdata.V1JSONMediaType
	}

	// Get bits from URL parameters
	if err == nil {
		ctx, err = h.Context(req)
	}

	// Read the JSON body, if it's there
	if err == nil {
		switch req.Method {
		case "PUT", "POST", "PATCH":
			body, err = readBody(req)
		}
	}

	// Actually call the handler method
	if err == nil {
		// We will return this if the method is unexpected or
		// we don't have a handler for it
		err = errMethodNotAllowed{Method: req.Method}
		// If anything else goes wrong here, it's an error in
		// client code
		status = http.StatusInternalServerError
		switch req.Method {
		case "GET", "HEAD":
			if h.Get != nil {
				out, err = h.Get(ctx)
			}
		case "PUT":
			if h.Put != nil {
				out, err = h.Put(ctx, body)
			}
		case "POST":
			if h.Post != nil {
				out, err = h.Post(ctx, body)
			}
		case "PATCH":
			if h.Patch != nil {
				out, err = h.Patch(ctx, body)
			}
		case "DELETE":
			if h.Delete != nil {
				out, err = h.Delete(ctx)
			}
		}
	}

	// Fix up the final result based on what we know.
	if err != nil {
		err = asHTTPError(err)
		// Pick a better status code if we know of one
		if errS, hasStatus := err.(restdata.ErrorStatus); hasStatus {
			status = errS.HTTPStatus()
		}
		response := restdata.ErrorResponse{Error: "error", Message: err.Error()}
		response.FromError(err)
		out = response
	} else if out == nil {
		status = http.StatusNoContent
	} else if model, isModel := out.(modelResponse); isModel {
		if model.Created {
			status = http.StatusCreated
		} else {
			status = http.StatusOK
		}
		if model.Location != "" {
			resp.Header().Set("Location", model.Location)
		}
		if !model.LastModified.IsZero() {
			resp.Header().Set("Last-Modified",
				model.LastModified.UTC().Format(http.TimeFormat))
		}
		if req.Method == "HEAD" {
			out = nil
		} else {
			out = model.Body
		}
	} else {
		status = http.StatusOK
		if req.Method == "HEAD" {
			out = nil
		}
	}

	// Actually send the response.  By the time an encode error
	// could surface we have already written an HTTP status line,
	// so there is nothing better to do than drop it.
	if out != nil {
		resp.Header().Set("Content-Type", responseType)
	}
	resp.WriteHeader(status)
	if out != nil {
		_ = restdata.Encode(resp, out)
	}
}

// negotiateResponse returns a supported MIME type for the response
// body, following the path laid out in RFC 7231 section 5.3.
func negotiateResponse(req *http.Request) (string, error) {
	accept := req.Header.Get("Accept")
	if accept == "" {
		accept = "*/*"
	}
	bestType := ""
	bestQ := 0.0
	mediaRanges := strings.Split(accept, ",")
	for _, mediaRange := range mediaRanges {
		mediaRange = strings.TrimSpace(mediaRange)
		mediaType, params, err := mime.ParseMediaType(mediaRange)
		if err != nil {
			return "", err
		}

		// What is the "q" ("quality") parameter for this type?
		// If it is less than the best known so far, skip it
		q := 1.0
		if qStr, haveQ := params["q"]; haveQ {
			q, err = strconv.ParseFloat(qStr, 64)
			if err != nil {
				return "", err
			}
			if q < 0.0 || q > 1.0 {
				return "", errBadAccept
			}
		}
		if q < bestQ {
			continue
		}

		// This is acceptable if it's listed in the type
		// map; or it's one of a couple of specific wildcards.
		// Also need to handle wildcard precedence.  So:
		if mediaType == "*/*" {
			// Doesn't override anything.
			if q > bestQ {
				bestType = mediaType
				bestQ = q
			}
		} else if mediaType == "text/*" || mediaType == "application/*" {
			// Only overrides "*/*".
			if q > bestQ || bestType == "*/*" {
				bestType = mediaType
				bestQ = q
			}
		} else if _, knownType := typeMap[mediaType]; knownType {
			// Overrides any wildcard.  We want the first one
			// at a given q to win.
			if q > bestQ || bestType == "*/*" || bestType == "text/*" || bestType == "application/*" {
				bestType = mediaType
				bestQ = q
			}
		}
		// Otherwise we don't recognize this type at all, so
		// just drop it.
	}
	// If this failed to win, return an error
	if bestQ == 0.0 {
		return "", errNotAcceptable{}
	}
	switch bestType {
	case "*/*":
		return restdata.V1JSONMediaType, nil
	case "application/*":
		return restdata.V1JSONMediaType, nil
	case "text/*":
		return "text/json", nil
	default:
		return bestType, nil
	}
}
