package words

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordstack/assets"
)

// Source is somewhere a word list can be read from.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	String() string
}

// SourceFor picks the word list source: a URL wins over a file path, and
// with neither the embedded list is used.
func SourceFor(url, path string, attempts uint) Source {
	switch {
	case url != "":
		return &HTTPSource{URL: url, Attempts: attempts}
	case path != "":
		return FileSource(path)
	default:
		return EmbeddedSource{}
	}
}

// FileSource reads the list from a local file.
type FileSource string

func (f FileSource) Open(context.Context) (io.ReadCloser, error) {
	return os.Open(string(f))
}

func (f FileSource) String() string { return "file:" + string(f) }

// EmbeddedSource reads the list baked into the binary.
type EmbeddedSource struct{}

func (EmbeddedSource) Open(context.Context) (io.ReadCloser, error) { return assets.Wordlist() }

func (EmbeddedSource) String() string { return "embedded:" + assets.WordlistName }

// HTTPSource fetches the list with a GET, retrying transient failures with
// exponential backoff. 4xx responses are not retried.
type HTTPSource struct {
	URL      string
	Client   *http.Client  // nil means a client with a 10s timeout
	Attempts uint          // 0 means 3
	Delay    time.Duration // base backoff delay; 0 means 200ms
}

func (h *HTTPSource) String() string { return h.URL }

func (h *HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	client := h.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	attempts := h.Attempts
	if attempts == 0 {
		attempts = 3
	}
	delay := h.Delay
	if delay == 0 {
		delay = 200 * time.Millisecond
	}

	body, err := retry.DoWithData(
		func() ([]byte, error) { return h.fetch(ctx, client) },
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().Err(err).Uint("attempt", n+1).Str("url", h.URL).Msg("word list fetch failed, retrying")
		}),
	)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}

func (h *HTTPSource) fetch(ctx context.Context, client *http.Client) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, retry.Unrecoverable(err)
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		err := fmt.Errorf("words: GET %s: %s", h.URL, res.Status)
		if res.StatusCode >= 400 && res.StatusCode < 500 {
			return nil, retry.Unrecoverable(err)
		}
		return nil, err
	}
	return io.ReadAll(res.Body)
}
