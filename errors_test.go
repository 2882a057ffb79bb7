package dockersock_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/donflopez/dockersock"
)

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	jsonErr := json.Unmarshal([]byte("{"), &struct{}{})

	testCases := []struct {
		name string
		err  error
		want string
	}{
		{
			"ErrRequestFormat",
			&dockersock.ErrRequestFormat{Msg: "unsupported method \"BREW\""},
			`error while preparing request: unsupported method "BREW"`,
		},
		{
			"ErrNoResponse",
			&dockersock.ErrNoResponse{Msg: "/version"},
			"got no response from docker host: /version",
		},
		{
			"ErrMalformedResponse",
			&dockersock.ErrMalformedResponse{Msg: "no header/body separator found"},
			"response was not a valid HTTP response: no header/body separator found",
		},
		{
			"ErrDecode",
			&dockersock.ErrDecode{Err: jsonErr},
			"error while deserializing JSON response: " + jsonErr.Error(),
		},
		{
			"ErrEncode",
			&dockersock.ErrEncode{Err: errors.New("unsupported type")},
			"error while serializing request body: unsupported type",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Error() != tc.want {
				t.Errorf("expected %q, got %q", tc.want, tc.err.Error())
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	t.Parallel()

	inner := errors.New("boom")

	if !errors.Is(&dockersock.ErrDecode{Err: inner}, inner) {
		t.Error("ErrDecode must unwrap to the decoder's error")
	}

	if !errors.Is(&dockersock.ErrEncode{Err: inner}, inner) {
		t.Error("ErrEncode must unwrap to the encoder's error")
	}
}
