package manager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/rs/zerolog/log"
	"github.com/travigo/bikeflow/pkg/dataimporter/datasets"
	"golang.org/x/net/html/charset"
)

const userAgent = "bikeflow/1.0 (+https://github.com/travigo/bikeflow)"

var ErrUnsupportedSource = errors.New("unsupported dataset source")

var httpClient = &http.Client{
	Timeout: 2 * time.Minute,
}

type readCloser struct {
	io.Reader
	io.Closer
}

// OpenDataset opens the dataset source, which may be an http(s) URL, a
// gs://bucket/object path or a local file path.
func OpenDataset(ctx context.Context, dataset datasets.DataSet) (io.ReadCloser, error) {
	source := dataset.Source

	switch {
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		return openHTTP(ctx, dataset)
	case strings.HasPrefix(source, "gs://"):
		return openCloudStorage(ctx, source)
	case isValidUrl(source):
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, source)
	default:
		return os.Open(source)
	}
}

func openHTTP(ctx context.Context, dataset datasets.DataSet) (io.ReadCloser, error) {
	sourceURL, err := url.Parse(dataset.Source)
	if err != nil {
		return nil, err
	}

	authentication := dataset.SourceAuthentication

	if len(authentication.Query) > 0 {
		query := sourceURL.Query()
		for key, value := range authentication.Query {
			query.Set(key, os.ExpandEnv(value))
		}
		sourceURL.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL.String(), nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", userAgent)
	for key, value := range authentication.Header {
		req.Header.Set(key, os.ExpandEnv(value))
	}
	if authentication.Basic.Username != "" {
		req.SetBasicAuth(os.ExpandEnv(authentication.Basic.Username), os.ExpandEnv(authentication.Basic.Password))
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("download %s: unexpected status %s", dataset.Identifier, resp.Status)
	}

	// Converts to UTF-8 when the server declares another charset
	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		log.Debug().Err(err).Str("dataset", dataset.Identifier).Msg("Could not determine charset, reading raw body")
		return resp.Body, nil
	}

	return readCloser{Reader: body, Closer: resp.Body}, nil
}

func openCloudStorage(ctx context.Context, source string) (io.ReadCloser, error) {
	bucketName, objectName, found := strings.Cut(strings.TrimPrefix(source, "gs://"), "/")
	if !found || bucketName == "" || objectName == "" {
		return nil, fmt.Errorf("%w: %s is not gs://bucket/object", ErrUnsupportedSource, source)
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	reader, err := client.Bucket(bucketName).Object(objectName).NewReader(ctx)
	if err != nil {
		client.Close()
		return nil, err
	}

	return readCloser{Reader: reader, Closer: closerFunc(func() error {
		reader.Close()
		return client.Close()
	})}, nil
}

type closerFunc func() error

func (f closerFunc) Close() error {
	return f()
}

func isValidUrl(toTest string) bool {
	_, err := url.ParseRequestURI(toTest)
	if err != nil {
		return false
	}

	u, err := url.Parse(toTest)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return true
}
