package ring

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/twitchtv/twirp"
)

func TestErrorMapper(t *testing.T) {
	as := require.New(t)

	as.Nil(ErrorMapper(nil))

	twerr := twirp.NewError(twirp.Internal, ErrMissingPredecessor.Error())
	as.ErrorIs(ErrorMapper(twerr), ErrMissingPredecessor)

	plain := errors.New(ErrKeyNotFound.Error())
	as.ErrorIs(ErrorMapper(plain), ErrKeyNotFound)

	unknown := errors.New("something else")
	as.Equal(unknown, ErrorMapper(unknown))
}

func TestErrorKind(t *testing.T) {
	as := require.New(t)

	as.True(ErrorIsValue(ErrKeyNotFound))
	as.True(ErrorIsValue(ErrValueRequired))
	as.False(ErrorIsValue(nil))

	as.True(ErrorIsInternal(ErrDegenerateNeighbor))
	as.True(ErrorIsInternal(fmt.Errorf("wrapped: %w", ErrMissingPredecessor)))
	as.True(ErrorIsInternal(errors.New("unclassified")))
	as.False(ErrorIsInternal(nil))

	as.True(ErrorIsRetryable(ErrConnectionFailed))
	as.True(ErrorIsRetryable(context.DeadlineExceeded))
	as.False(ErrorIsRetryable(ErrKeyNotFound))
}
