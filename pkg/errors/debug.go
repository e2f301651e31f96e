package errors

import (
	"errors"
	"fmt"
)

// remoteError is implemented by backend client errors carrying the raw
// HTTP exchange with the external service.
type remoteError interface {
	error
	HTTPStatus() int
	ResponseBody() string
	Endpoint() string
}

type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	RemoteStatus   int    `json:"remote_status,omitempty"`
	RemoteEndpoint string `json:"remote_endpoint,omitempty"`
	RemoteBody     string `json:"remote_body,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var remote remoteError
	if errors.As(err, &remote) {
		d.RemoteStatus = remote.HTTPStatus()
		d.RemoteEndpoint = remote.Endpoint()
		d.RemoteBody = remote.ResponseBody()
	}

	return d
}
