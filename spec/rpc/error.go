package rpc

import (
	"errors"
	"fmt"

	"go.miragespace.co/chordring/spec/protocol"
	"go.miragespace.co/chordring/spec/ring"

	"github.com/twitchtv/twirp"
)

func WrapError(err error) error {
	var code twirp.ErrorCode
	switch {
	case ring.ErrorIsValue(err):
		code = twirp.InvalidArgument
	case ring.ErrorIsInternal(err):
		code = twirp.Internal
	default:
		code = twirp.Unavailable
	}
	twerr := twirp.NewError(code, err.Error())
	twerr = twerr.WithMeta("cause", fmt.Sprintf("%T", err)) // to easily tell apart wrapped internal errors from explicit ones
	return twirp.WrapError(twerr, err)
}

// ErrorToWire flattens err so it can be sent in a response envelope.
func ErrorToWire(err error) *protocol.Error {
	var twerr twirp.Error
	if !errors.As(err, &twerr) {
		twerr = WrapError(err).(twirp.Error)
	}
	return &protocol.Error{
		Code:  string(twerr.Code()),
		Msg:   twerr.Msg(),
		Cause: twerr.Meta("cause"),
	}
}

// ErrorFromWire rebuilds the twirp error sent by the remote end.
func ErrorFromWire(e *protocol.Error) error {
	code := twirp.ErrorCode(e.GetCode())
	if !twirp.IsValidErrorCode(code) {
		code = twirp.Unknown
	}
	twerr := twirp.NewError(code, e.GetMsg())
	if cause := e.GetCause(); cause != "" {
		twerr = twerr.WithMeta("cause", cause)
	}
	return twerr
}
