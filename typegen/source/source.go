// Package source loads the upstream API dump and corrections documents from
// a URL or a local path.
package source

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	getter "github.com/hashicorp/go-getter"
	"go.uber.org/zap"

	"github.com/teranos/rbxtypes/errors"
	"github.com/teranos/rbxtypes/internal/httpclient"
	"github.com/teranos/rbxtypes/logger"
)

// Kind tells how a location is read
type Kind int

const (
	KindFile Kind = iota
	KindHTTP
)

func (k Kind) String() string {
	if k == KindHTTP {
		return "http"
	}
	return "file"
}

// Location is a classified source location
type Location struct {
	Kind Kind
	// Path is the absolute file path for KindFile, the URL for KindHTTP
	Path string
	// Input is the location as given
	Input string
}

// Classify resolves a location with go-getter's detectors. Plain and relative
// paths become absolute file paths; http and https URLs are kept as-is.
func Classify(input string) (Location, error) {
	if strings.TrimSpace(input) == "" {
		return Location{}, errors.NewInvalidRequestError("empty source location")
	}

	pwd, err := os.Getwd()
	if err != nil {
		pwd = "."
	}

	if strings.HasPrefix(input, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return Location{}, errors.Wrap(err, "failed to expand home directory")
		}
		input = filepath.Join(home, input[2:])
	}

	detected, err := getter.Detect(input, pwd, getter.Detectors)
	if err != nil {
		return Location{}, errors.Wrapf(err, "failed to detect source type of %q", input)
	}

	u, err := url.Parse(detected)
	if err != nil {
		return Location{}, errors.Wrapf(err, "failed to parse detected location %q", detected)
	}

	switch u.Scheme {
	case "file":
		return Location{Kind: KindFile, Path: filepath.FromSlash(u.Path), Input: input}, nil
	case "":
		abs, err := filepath.Abs(input)
		if err != nil {
			return Location{}, errors.Wrap(err, "failed to make absolute path")
		}
		return Location{Kind: KindFile, Path: abs, Input: input}, nil
	case "http", "https":
		return Location{Kind: KindHTTP, Path: detected, Input: input}, nil
	default:
		return Location{}, errors.WithHint(
			errors.NewInvalidRequestError("unsupported source %q (detected as %s)", input, detected),
			"use an http(s) URL or a local file path")
	}
}

// Fetcher reads source documents
type Fetcher struct {
	client *httpclient.SaferClient
	logger *zap.SugaredLogger
}

// NewFetcher creates a fetcher that uses client for remote locations
func NewFetcher(client *httpclient.SaferClient) *Fetcher {
	return &Fetcher{
		client: client,
		logger: logger.ComponentLogger("typegen.source"),
	}
}

// Fetch returns the full contents of the document at location
func (f *Fetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	loc, err := Classify(location)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	var data []byte
	switch loc.Kind {
	case KindHTTP:
		data, err = f.client.GetBytes(ctx, loc.Path)
	default:
		data, err = readFile(ctx, loc.Path)
	}
	if err != nil {
		return nil, err
	}

	if !logger.ShouldOutput(logger.Verbosity, logger.OutputFetch) {
		return data, nil
	}
	f.logger.Infow("Loaded source",
		logger.FieldOutput, logger.CategoryName(logger.OutputFetch),
		logger.FieldURL, loc.Path,
		"kind", loc.Kind.String(),
		logger.FieldSize, len(data),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return data, nil
}

func readFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WithHint(
				errors.Wrapf(errors.WithSecondaryError(errors.ErrNotFound, err), "source file %s", path),
				"check the [sources] paths in rbxtypes.toml")
		}
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return data, nil
}
