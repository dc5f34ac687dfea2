package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Client struct {
	client         *minio.Client
	frameBucket    string
	snapshotBucket string
}

func NewMinioClient(endpoint, accessKey, secretKey, frameBucket, snapshotBucket string) (*Client, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	return &Client{
		client:         client,
		frameBucket:    frameBucket,
		snapshotBucket: snapshotBucket,
	}, nil
}

// ListFrameObjects returns the object keys under the given camera folder,
// sorted by name so replay order matches capture order.
func (c *Client) ListFrameObjects(ctx context.Context, folder string) ([]string, error) {
	objectCh := c.client.ListObjects(ctx, c.frameBucket, minio.ListObjectsOptions{
		Prefix:    folder,
		Recursive: true,
	})

	var keys []string
	for object := range objectCh {
		if object.Err != nil {
			return nil, object.Err
		}
		if strings.HasSuffix(object.Key, "/") {
			continue
		}
		keys = append(keys, object.Key)
	}

	sort.Strings(keys)
	return keys, nil
}

// DownloadFrame returns the raw contents of one frame object.
func (c *Client) DownloadFrame(ctx context.Context, key string) ([]byte, error) {
	obj, err := c.client.GetObject(ctx, c.frameBucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, obj); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// UploadSnapshot mirrors a saved alert snapshot into the snapshot bucket
// under the same relative path.
func (c *Client) UploadSnapshot(ctx context.Context, localPath string, data []byte) error {
	objectPath := filepath.ToSlash(localPath)

	_, err := c.client.PutObject(
		ctx,
		c.snapshotBucket,
		objectPath,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{
			ContentType: "image/jpeg",
		},
	)
	if err != nil {
		return fmt.Errorf("failed to upload snapshot to S3: %w", err)
	}

	return nil
}
