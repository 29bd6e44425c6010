package lyrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	synced string
	plain  string
	err    error
	calls  int
}

func (stub *stubProvider) Name() string { return "stub" }

func (stub *stubProvider) Search(_ context.Context, _ string, _ []string, synced bool) (string, error) {
	stub.calls++
	if stub.err != nil {
		return "", stub.err
	}
	if synced {
		return stub.synced, nil
	}
	return stub.plain, nil
}

type stubNative struct {
	text   string
	synced bool
	err    error
	calls  int
}

func (stub *stubNative) TrackLyrics(context.Context, string) (string, bool, error) {
	stub.calls++
	return stub.text, stub.synced, stub.err
}

func TestResolveNativeSyncedShortCircuits(t *testing.T) {
	var (
		native   = &stubNative{text: "[00:01.000]line\n", synced: true}
		external = &stubProvider{synced: "external"}
		composer = &Composer{native: native, synced: []Provider{external}, plain: []Provider{external}}
	)

	text := composer.Resolve(context.Background(), "Song", []string{"A"}, "video-id")
	assert.Equal(t, "[00:01.000]line", text)
	assert.Equal(t, 1, native.calls)
	assert.Zero(t, external.calls)
}

func TestResolveExternalSyncedBeatsNativePlain(t *testing.T) {
	var (
		native   = &stubNative{text: "plain native", synced: false}
		external = &stubProvider{synced: "[00:01.000]external"}
		composer = &Composer{native: native, synced: []Provider{external}}
	)

	text := composer.Resolve(context.Background(), "Song", []string{"A"}, "video-id")
	assert.Equal(t, "[00:01.000]external", text)
}

func TestResolveNativePlainBeatsExternalPlain(t *testing.T) {
	var (
		native   = &stubNative{text: "plain native", synced: false}
		synced   = &stubProvider{}
		plain    = &stubProvider{plain: "external plain"}
		composer = &Composer{native: native, synced: []Provider{synced}, plain: []Provider{plain}}
	)

	text := composer.Resolve(context.Background(), "Song", []string{"A"}, "video-id")
	assert.Equal(t, "plain native", text)
	assert.Equal(t, 1, synced.calls)
	assert.Zero(t, plain.calls)
}

func TestResolveSkipsNativeWithoutRef(t *testing.T) {
	var (
		native   = &stubNative{text: "native", synced: true}
		plain    = &stubProvider{plain: "external plain"}
		composer = &Composer{native: native, plain: []Provider{plain}}
	)

	text := composer.Resolve(context.Background(), "Song", []string{"A"}, "")
	assert.Equal(t, "external plain", text)
	assert.Zero(t, native.calls)
}

func TestResolveProviderFailureIsNonFatal(t *testing.T) {
	var (
		broken   = &stubProvider{err: errors.New("down")}
		working  = &stubProvider{synced: "rescued"}
		composer = &Composer{synced: []Provider{broken, working}}
	)

	text := composer.Resolve(context.Background(), "Song", []string{"A"}, "")
	assert.Equal(t, "rescued", text)
	assert.Equal(t, 1, broken.calls)
}

func TestResolveNothingFound(t *testing.T) {
	composer := &Composer{synced: []Provider{&stubProvider{}}, plain: []Provider{&stubProvider{}}}
	assert.Empty(t, composer.Resolve(context.Background(), "Song", []string{"A"}, ""))
}

func TestStripTimestamps(t *testing.T) {
	assert.Equal(t, "one\ntwo", stripTimestamps("[00:01.000]one\n[00:02.120]two"))
}

// headerRecorder short-circuits every request with an empty
// payload, keeping the referer each host was sent.
type headerRecorder struct {
	referers map[string]string
}

func (recorder *headerRecorder) RoundTrip(request *http.Request) (*http.Response, error) {
	recorder.referers[request.URL.Host] = request.Header.Get("Referer")
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(`{}`)),
		Request:    request,
	}, nil
}

func TestProviderReferers(t *testing.T) {
	recorder := &headerRecorder{referers: map[string]string{}}
	restore := httpClient.Transport
	httpClient.Transport = recorder
	defer func() { httpClient.Transport = restore }()

	_, err := netEase{}.Search(context.Background(), "Song", []string{"A"}, false)
	require.NoError(t, err)
	_, err = genius{}.Search(context.Background(), "Song", []string{"A"}, false)
	require.NoError(t, err)

	// the same-site referer belongs to netease requests only
	assert.Equal(t, "http://music.163.com", recorder.referers["music.163.com"])
	assert.Empty(t, recorder.referers["genius.com"])
}
