package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"cloud.google.com/go/storage"
)

// WordListRepository returns the raw bytes of a newline-delimited word list
type WordListRepository interface {
	Load(ctx context.Context) ([]byte, error)
}

// ObjectLocation names an object in a bucket
type ObjectLocation struct {
	Bucket string
	Key    string
}

// ParseObjectLocation parses a location whose host names the bucket and whose
// path names the object key, e.g. gs://techwords/words.txt.
func ParseObjectLocation(location string) (ObjectLocation, error) {
	u, err := url.Parse(location)
	if err != nil {
		return ObjectLocation{}, fmt.Errorf("parsing word list location: %w", err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return ObjectLocation{}, fmt.Errorf("word list location %q must name a bucket and an object key", location)
	}
	return ObjectLocation{Bucket: u.Host, Key: key}, nil
}

// gcsWordListRepository reads the word list from Cloud Storage
type gcsWordListRepository struct {
	client   *storage.Client
	location ObjectLocation
}

// NewGCSWordListRepository creates a repository reading location with client
func NewGCSWordListRepository(client *storage.Client, location ObjectLocation) WordListRepository {
	return &gcsWordListRepository{
		client:   client,
		location: location,
	}
}

func (r *gcsWordListRepository) Load(ctx context.Context) ([]byte, error) {
	obj := r.client.Bucket(r.location.Bucket).Object(r.location.Key)

	reader, err := obj.NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("word list gs://%s/%s does not exist: %w", r.location.Bucket, r.location.Key, err)
		}
		return nil, fmt.Errorf("opening object reader: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading object data: %w", err)
	}
	return data, nil
}

// fileWordListRepository reads the word list from the local filesystem
type fileWordListRepository struct {
	path string
}

// NewFileWordListRepository creates a repository reading path
func NewFileWordListRepository(path string) WordListRepository {
	return &fileWordListRepository{path: path}
}

func (r *fileWordListRepository) Load(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("reading word list file: %w", err)
	}
	return data, nil
}

// IsObjectLocation reports whether location refers to Cloud Storage
func IsObjectLocation(location string) bool {
	return strings.HasPrefix(location, "gs://")
}

// FilePath returns the local path for a file:// URL or a bare path
func FilePath(location string) string {
	if strings.HasPrefix(location, "file://") {
		if u, err := url.Parse(location); err == nil {
			return u.Path
		}
	}
	return location
}
