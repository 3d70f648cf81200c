package source

import (
	"text2phenotype.com/postag/s3client"
	"fmt"
	"io/ioutil"
	"strings"
)

const s3Scheme = "s3://"

type Downloader interface {
	Download(bucket string, key string) ([]byte, error)
}

// Loader reads text from local paths or s3://bucket/key locations. The S3
// client is created on first use so local runs need no AWS environment.
type Loader struct {
	newDownloader func() (Downloader, error)
	downloader    Downloader
}

func NewLoader() *Loader {
	return &Loader{
		newDownloader: func() (Downloader, error) {
			client, err := s3client.New()
			if err != nil {
				return nil, err
			}
			return client, nil
		},
	}
}

func NewLoaderWithDownloader(downloader Downloader) *Loader {
	return &Loader{downloader: downloader}
}

func ParseS3Location(location string) (string, string, bool) {
	if !strings.HasPrefix(location, s3Scheme) {
		return "", "", false
	}
	parts := strings.SplitN(strings.TrimPrefix(location, s3Scheme), "/", 2)
	if len(parts) != 2 || len(parts[0]) == 0 || len(parts[1]) == 0 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func (loader *Loader) Read(location string) (string, error) {
	if !strings.HasPrefix(location, s3Scheme) {
		buf, err := ioutil.ReadFile(location)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", location, err)
		}
		return string(buf), nil
	}

	bucket, key, isOk := ParseS3Location(location)
	if !isOk {
		return "", fmt.Errorf("read %s: expected s3://bucket/key", location)
	}
	if loader.downloader == nil {
		downloader, err := loader.newDownloader()
		if err != nil {
			return "", fmt.Errorf("read %s: %w", location, err)
		}
		loader.downloader = downloader
	}
	buf, err := loader.downloader.Download(bucket, key)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", location, err)
	}
	return string(buf), nil
}
