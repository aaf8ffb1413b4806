package cronrunner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddRejectsBadSpec(t *testing.T) {
	r := New(nil, context.Background())
	_, err := r.Add("bad", "every now and then", func(context.Context) error { return nil })
	require.Error(t, err)
	require.Zero(t, r.Len())
}

func TestAddAcceptsDescriptors(t *testing.T) {
	r := New(nil, nil)
	_, err := r.Add("snapshot", "@every 15m", func(context.Context) error { return nil })
	require.NoError(t, err)
	_, err = r.Add("nightly", "0 3 * * *", func(context.Context) error { return nil })
	require.NoError(t, err)
	require.Equal(t, 2, r.Len())
	r.Start()
	r.Stop()
}
