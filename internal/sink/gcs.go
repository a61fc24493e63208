package sink

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"cloud.google.com/go/storage"
	"github.com/golang/glog"
)

const uploadTimeout = 2 * time.Minute

// GCS uploads statements to a Cloud Storage bucket. Credentials come from the
// environment (Application Default Credentials).
type GCS struct {
	Bucket string
	Prefix string
}

// ObjectName returns the object a statement called name is stored under.
func (g GCS) ObjectName(name string) string {
	return path.Join(g.Prefix, path.Base(name))
}

func (g GCS) Export(ctx context.Context, name string, data []byte) (string, error) {
	if g.Bucket == "" {
		return "", errors.New("gcs sink: no bucket configured")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("create storage client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	object := g.ObjectName(name)
	w := client.Bucket(g.Bucket).Object(object).NewWriter(ctx)
	w.ContentType = ContentType
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload %s: %w", object, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize upload %s: %w", object, err)
	}

	uri := fmt.Sprintf("gs://%s/%s", g.Bucket, object)
	glog.Infof("Uploaded %d bytes to %s", len(data), uri)
	return uri, nil
}
