package syncer_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/amirasaad/crowdfund/pkg/domain"
	"github.com/amirasaad/crowdfund/pkg/syncer"
	"github.com/amirasaad/crowdfund/pkg/testutils"
	"github.com/amirasaad/crowdfund/pkg/writeback"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCreds struct {
	token string
}

func (c staticCreds) AccessToken(context.Context) (string, error) {
	if c.token == "" {
		return "", domain.ErrNoCredential
	}
	return c.token, nil
}

func (c staticCreds) UserID(context.Context) (int64, error) {
	if c.token == "" {
		return 0, domain.ErrNoCredential
	}
	return 5, nil
}

// store is a trivial cache keyed by name.
type store struct {
	mu   sync.Mutex
	data map[string]string
}

func (s *store) get(key string) func(context.Context) (string, error) {
	return func(context.Context) (string, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		v, ok := s.data[key]
		if !ok {
			return "", domain.ErrNotFound
		}
		return v, nil
	}
}

func (s *store) put(key string) func(context.Context, string) error {
	return func(_ context.Context, v string) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.data[key] = v
		return nil
	}
}

func setup(t *testing.T, token string) (*syncer.Syncer, *writeback.Queue, *store) {
	t.Helper()
	q := writeback.New(1, 8, testutils.NewLogger())
	t.Cleanup(func() { _ = q.Close(context.Background()) })
	return syncer.New(staticCreds{token: token}, q, testutils.NewLogger()),
		q,
		&store{data: map[string]string{}}
}

func remoteOK(v string) func(context.Context, string) (string, error) {
	return func(context.Context, string) (string, error) { return v, nil }
}

func remoteErr(err error) func(context.Context, string) (string, error) {
	return func(context.Context, string) (string, error) { return "", err }
}

func TestRead_RemoteSuccessRefreshesCache(t *testing.T) {
	s, q, st := setup(t, "")
	st.data["k"] = "stale"

	res, err := syncer.Read(context.Background(), s, syncer.Op[string]{
		Family: "test", Name: "get",
		Remote: remoteOK("fresh"),
		Local:  st.get("k"),
		Store:  st.put("k"),
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", res.Value)
	assert.Equal(t, syncer.SourceRemote, res.Source)
	assert.False(t, res.Offline())
	assert.NoError(t, res.Cause)

	require.NoError(t, q.Flush(context.Background()))
	assert.Equal(t, "fresh", st.data["k"])
}

func TestRead_FallsBackOnAnyRemoteError(t *testing.T) {
	for _, cause := range []error{domain.ErrNetwork, domain.ErrServer, domain.ErrUnauthorized, domain.ErrNotFound} {
		t.Run(cause.Error(), func(t *testing.T) {
			s, _, st := setup(t, "")
			st.data["k"] = "cached"

			res, err := syncer.Read(context.Background(), s, syncer.Op[string]{
				Family: "test", Name: "get",
				Remote: remoteErr(cause),
				Local:  st.get("k"),
				Store:  st.put("k"),
			})
			require.NoError(t, err)
			assert.Equal(t, "cached", res.Value)
			assert.True(t, res.Offline())
			assert.ErrorIs(t, res.Cause, cause)
		})
	}
}

func TestRead_MissJoinsCause(t *testing.T) {
	s, _, st := setup(t, "")

	res, err := syncer.Read(context.Background(), s, syncer.Op[string]{
		Family: "test", Name: "get",
		Remote: remoteErr(domain.ErrNetwork),
		Local:  st.get("k"),
	})
	require.ErrorIs(t, err, domain.ErrNotCached)
	require.ErrorIs(t, err, domain.ErrNetwork)
	assert.Equal(t, domain.KindNotCached, domain.KindOf(err))
	assert.Empty(t, res.Value)
}

func TestRead_NoCredentialSkipsRemote(t *testing.T) {
	s, _, st := setup(t, "")
	st.data["k"] = "cached"
	called := false

	res, err := syncer.Read(context.Background(), s, syncer.Op[string]{
		Family: "test", Name: "mine",
		Auth: true,
		Remote: func(context.Context, string) (string, error) {
			called = true
			return "remote", nil
		},
		Local: st.get("k"),
	})
	require.NoError(t, err)
	assert.False(t, called)
	assert.Equal(t, "cached", res.Value)
	assert.ErrorIs(t, res.Cause, domain.ErrNoCredential)
}

func TestRead_PassesToken(t *testing.T) {
	s, _, st := setup(t, "tok")
	var got string

	_, err := syncer.Read(context.Background(), s, syncer.Op[string]{
		Family: "test", Name: "mine",
		Auth: true,
		Remote: func(_ context.Context, token string) (string, error) {
			got = token
			return "ok", nil
		},
		Local: st.get("k"),
	})
	require.NoError(t, err)
	assert.Equal(t, "tok", got)
}

func TestRead_CancelledContextDoesNotFallBack(t *testing.T) {
	s, _, st := setup(t, "")
	st.data["k"] = "cached"
	ctx, cancel := context.WithCancel(context.Background())

	_, err := syncer.Read(ctx, s, syncer.Op[string]{
		Family: "test", Name: "get",
		Remote: func(context.Context, string) (string, error) {
			cancel()
			return "", domain.ErrNetwork
		},
		Local: st.get("k"),
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRead_CacheFailureIsReported(t *testing.T) {
	s, _, _ := setup(t, "")
	diskErr := errors.New("disk I/O error")

	_, err := syncer.Read(context.Background(), s, syncer.Op[string]{
		Family: "test", Name: "get",
		Remote: remoteErr(domain.ErrNetwork),
		Local:  func(context.Context) (string, error) { return "", diskErr },
	})
	require.ErrorIs(t, err, diskErr)
	require.ErrorIs(t, err, domain.ErrNetwork)
	assert.NotErrorIs(t, err, domain.ErrNotCached)
}

func TestWrite(t *testing.T) {
	t.Run("success mirrors", func(t *testing.T) {
		s, q, st := setup(t, "tok")
		v, err := syncer.Write(context.Background(), s, syncer.Op[string]{
			Family: "test", Name: "create", Auth: true,
			Remote: remoteOK("created"),
			Store:  st.put("k"),
		})
		require.NoError(t, err)
		assert.Equal(t, "created", v)
		require.NoError(t, q.Flush(context.Background()))
		assert.Equal(t, "created", st.data["k"])
	})

	t.Run("failure leaves cache alone", func(t *testing.T) {
		s, q, st := setup(t, "tok")
		st.data["k"] = "before"
		_, err := syncer.Write(context.Background(), s, syncer.Op[string]{
			Family: "test", Name: "update", Auth: true,
			Remote: remoteErr(domain.ErrNetwork),
			Store:  st.put("k"),
		})
		require.ErrorIs(t, err, domain.ErrNetwork)
		require.NoError(t, q.Flush(context.Background()))
		assert.Equal(t, "before", st.data["k"])
	})

	t.Run("requires credential", func(t *testing.T) {
		s, _, st := setup(t, "")
		called := false
		_, err := syncer.Write(context.Background(), s, syncer.Op[string]{
			Family: "test", Name: "create", Auth: true,
			Remote: func(context.Context, string) (string, error) {
				called = true
				return "", nil
			},
			Store: st.put("k"),
		})
		require.ErrorIs(t, err, domain.ErrNoCredential)
		assert.False(t, called)
	})
}

func TestNonEmpty(t *testing.T) {
	empty := syncer.NonEmpty(func(context.Context) ([]int, error) { return nil, nil })
	_, err := empty(context.Background())
	require.ErrorIs(t, err, domain.ErrNotFound)

	some := syncer.NonEmpty(func(context.Context) ([]int, error) { return []int{1}, nil })
	rows, err := some(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1}, rows)
}
