package errors

import (
	"errors"
	"fmt"
)

// upstreamDetailer is implemented by errors carrying a raw upstream HTTP response.
type upstreamDetailer interface {
	UpstreamStatus() int
	UpstreamBody() string
}

type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	UpstreamStatus int    `json:"upstream_status,omitempty"`
	UpstreamBody   string `json:"upstream_body,omitempty"`
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

	var detailer upstreamDetailer
	if errors.As(err, &detailer) {
		d.UpstreamStatus = detailer.UpstreamStatus()
		d.UpstreamBody = detailer.UpstreamBody()
	}

	return d
}
