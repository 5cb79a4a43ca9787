package chain

import (
	"context"
	"errors"
	"math/big"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"indexConfig/internal/model"
)

type fakeEth struct {
	chainID uint64
	head    uint64
}

func (f *fakeEth) ChainId() hexutil.Big {
	return hexutil.Big(*new(big.Int).SetUint64(f.chainID))
}

func (f *fakeEth) BlockNumber() hexutil.Uint64 {
	return hexutil.Uint64(f.head)
}

func newNode(t *testing.T, chainID, head uint64) string {
	t.Helper()
	server := rpc.NewServer()
	require.NoError(t, server.RegisterName("eth", &fakeEth{chainID: chainID, head: head}))
	httpServer := httptest.NewServer(server)
	t.Cleanup(func() {
		httpServer.Close()
		server.Stop()
	})
	return httpServer.URL
}

func TestClientAgainstNode(t *testing.T) {
	url := newNode(t, 56, 123)
	ctx := context.Background()

	client, err := NewClient(ctx, url)
	require.NoError(t, err)
	defer client.Close()

	id, err := client.ChainID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(56), id.Int64())

	latest, err := client.LatestBlockNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(123), latest)
}

func TestVerify(t *testing.T) {
	mainnetURL := newNode(t, 1, 1000)
	wrongURL := newNode(t, 5, 10)

	huge, ok := new(big.Int).SetString("100000000000000000000", 10)
	require.True(t, ok)

	cfg := model.ResolvedConfig{
		Sources: []model.Source{
			{Name: "mainnet", URL: mainnetURL, ChainID: 1},
			{Name: "base", URL: wrongURL, ChainID: 8453},
		},
		Integrations: []model.ResolvedIntegration{
			{Name: "transfers", Sources: []model.SourceRef{{Name: "mainnet", Start: model.HeightFromUint64(400)}}},
			{Name: "future", Sources: []model.SourceRef{{Name: "mainnet", Start: model.NewHeight(huge)}, {Name: "base"}}},
		},
	}

	v := NewVerifier(nil, RetryPolicy{MaxRetries: 0}, nil)
	reports, err := v.Verify(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrChainIDMismatch))
	require.Len(t, reports, 2)

	mainnet := reports[0]
	require.NoError(t, mainnet.Err)
	assert.Equal(t, uint64(1000), mainnet.Latest)
	require.Len(t, mainnet.Starts, 2)
	assert.Equal(t, "transfers", mainnet.Starts[0].Integration)
	assert.Equal(t, int64(600), mainnet.Starts[0].Backlog.Int64())
	assert.False(t, mainnet.Starts[0].Ahead)
	assert.True(t, mainnet.Starts[1].Ahead)
	assert.Equal(t, 0, mainnet.Starts[1].Backlog.Sign())

	base := reports[1]
	assert.True(t, errors.Is(base.Err, ErrChainIDMismatch))
	assert.Len(t, base.Starts, 1)
}

type flakyEndpoint struct {
	failures int
	calls    int
}

func (f *flakyEndpoint) ChainID(context.Context) (*big.Int, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("temporary")
	}
	return big.NewInt(1), nil
}

func (f *flakyEndpoint) LatestBlockNumber(context.Context) (uint64, error) {
	return 10, nil
}

func (f *flakyEndpoint) Close() {}

func TestVerifyRetries(t *testing.T) {
	endpoint := &flakyEndpoint{failures: 2}
	dial := func(context.Context, string) (Endpoint, error) { return endpoint, nil }
	cfg := model.ResolvedConfig{Sources: []model.Source{{Name: "mainnet", URL: "x", ChainID: 1}}}

	v := NewVerifier(dial, RetryPolicy{MaxRetries: 2, Backoff: time.Millisecond}, nil)
	reports, err := v.Verify(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 3, endpoint.calls)
	assert.Equal(t, uint64(10), reports[0].Latest)

	endpoint = &flakyEndpoint{failures: 5}
	v = NewVerifier(dial, RetryPolicy{MaxRetries: 1, Backoff: time.Millisecond}, nil)
	_, err = v.Verify(context.Background(), cfg)
	assert.Error(t, err)
}

func TestRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	policy := RetryPolicy{MaxRetries: 3, Backoff: time.Hour}
	err := policy.do(ctx, zap.NewNop(), "op", func(context.Context) error { return errors.New("fail") })
	assert.ErrorIs(t, err, context.Canceled)
}
