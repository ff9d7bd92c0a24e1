package swifttoo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Archive mirrors for Swift data products.
const (
	MirrorHEASARC = "heasarc"
	MirrorUKSDC   = "uksdc"
	MirrorITSDC   = "itsdc"
	MirrorAWS     = "aws"
)

const (
	heasarcFTPPrefix = "https://heasarc.gsfc.nasa.gov/FTP/"
	heasarcS3Bucket  = "nasa-heasarc"
	heasarcS3Region  = "us-east-1"
)

// DataQuery selects the data products of one observation.
type DataQuery struct {
	ObsNum   string
	TargetID int
	Segment  int
	// Quicklook fetches the pre-archive quicklook products.
	Quicklook bool
	// Mirror picks the archive copy: heasarc (default), uksdc, itsdc or aws.
	Mirror string
	// Match keeps only files whose path matches one of the glob patterns.
	Match []string
}

// DataFile is one archive file of an observation.
type DataFile struct {
	Path      string `json:"path"` // relative path under the observation directory
	URL       string `json:"url"`
	Type      string `json:"type"`
	Size      int64  `json:"size"`
	Quicklook bool   `json:"quicklook"`
}

// DataManifest lists the files of an observation.
type DataManifest struct {
	ObsNum string     `json:"obsnum"`
	Files  []DataFile `json:"entries"`
	Status Status     `json:"status"`
}

// obsNum builds the 11-digit observation number from whichever selector was
// given.
func (q DataQuery) obsNum() (string, error) {
	if trimmed := strings.TrimSpace(q.ObsNum); trimmed != "" {
		return trimmed, nil
	}
	if q.TargetID > 0 {
		return fmt.Sprintf("%08d%03d", q.TargetID, q.Segment), nil
	}
	return "", fmt.Errorf("data query needs an observation number or target ID")
}

// DataManifest fetches the file listing of an observation.
func (c *Client) DataManifest(ctx context.Context, q DataQuery) (*DataManifest, error) {
	obsNum, err := q.obsNum()
	if err != nil {
		return nil, err
	}

	values := url.Values{}
	values.Set("obsnum", obsNum)
	if q.Quicklook {
		values.Set("quicklook", "true")
	}
	if mirror := strings.TrimSpace(q.Mirror); mirror != "" && mirror != MirrorAWS {
		values.Set("mirror", mirror)
	}

	var manifest DataManifest
	if err := c.get(ctx, "/swift/data", values, &manifest); err != nil {
		return nil, err
	}
	if manifest.ObsNum == "" {
		manifest.ObsNum = obsNum
	}
	if len(q.Match) > 0 {
		manifest.Files = filterFiles(manifest.Files, q.Match)
	}
	return &manifest, nil
}

// filterFiles keeps files whose path or base name matches any glob pattern.
func filterFiles(files []DataFile, patterns []string) []DataFile {
	matched := make([]DataFile, 0, len(files))
	for _, file := range files {
		for _, pattern := range patterns {
			okPath, _ := path.Match(pattern, file.Path)
			okBase, _ := path.Match(pattern, path.Base(file.Path))
			if okPath || okBase {
				matched = append(matched, file)
				break
			}
		}
	}
	return matched
}

// Fetcher streams a single archive file.
type Fetcher interface {
	Fetch(ctx context.Context, file DataFile, dest io.Writer) error
}

// HTTPFetcher downloads files over plain HTTPS from the archive mirrors.
type HTTPFetcher struct {
	Client *http.Client
}

func (f *HTTPFetcher) Fetch(ctx context.Context, file DataFile, dest io.Writer) error {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.URL, nil)
	if err != nil {
		return err
	}
	res, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", file.Path, err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: unexpected status %d", file.Path, res.StatusCode)
	}
	if _, err := io.Copy(dest, res.Body); err != nil {
		return fmt.Errorf("write %s: %w", file.Path, err)
	}
	return nil
}

// S3Fetcher reads archive files from the public HEASARC bucket using
// anonymous credentials.
type S3Fetcher struct {
	client *s3.Client
}

func NewS3Fetcher(ctx context.Context) (*S3Fetcher, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(heasarcS3Region),
		awsconfig.WithCredentialsProvider(aws.AnonymousCredentials{}),
	)
	if err != nil {
		return nil, fmt.Errorf("configure s3: %w", err)
	}
	return &S3Fetcher{client: s3.NewFromConfig(cfg)}, nil
}

func (f *S3Fetcher) Fetch(ctx context.Context, file DataFile, dest io.Writer) error {
	key, ok := s3KeyForURL(file.URL)
	if !ok {
		return fmt.Errorf("%s is not mirrored on s3", file.Path)
	}
	obj, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(heasarcS3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("fetch s3://%s/%s: %w", heasarcS3Bucket, key, err)
	}
	defer obj.Body.Close()
	if _, err := io.Copy(dest, obj.Body); err != nil {
		return fmt.Errorf("write %s: %w", file.Path, err)
	}
	return nil
}

// s3KeyForURL maps an archive URL onto its key in the HEASARC bucket.
func s3KeyForURL(raw string) (string, bool) {
	if !strings.HasPrefix(raw, heasarcFTPPrefix) {
		return "", false
	}
	return strings.TrimPrefix(raw, heasarcFTPPrefix), true
}

// DownloadOptions controls where and how DownloadData writes files.
type DownloadOptions struct {
	Outdir  string
	Clobber bool
	Fetcher Fetcher
}

// DownloadData fetches the manifest and downloads every matched file under
// outdir/<obsnum>/, preserving the archive layout. Existing files are kept
// unless Clobber is set.
func (c *Client) DownloadData(ctx context.Context, q DataQuery, opts DownloadOptions) (*DataManifest, error) {
	manifest, err := c.DataManifest(ctx, q)
	if err != nil {
		return nil, err
	}

	fetcher := opts.Fetcher
	if fetcher == nil {
		if strings.TrimSpace(q.Mirror) == MirrorAWS {
			fetcher, err = NewS3Fetcher(ctx)
			if err != nil {
				return nil, err
			}
		} else {
			fetcher = &HTTPFetcher{Client: c.client}
		}
	}

	outdir := strings.TrimSpace(opts.Outdir)
	if outdir == "" {
		outdir = "."
	}

	for _, file := range manifest.Files {
		dest := filepath.Join(outdir, manifest.ObsNum, filepath.FromSlash(file.Path))
		if !opts.Clobber {
			if _, err := os.Stat(dest); err == nil {
				c.logger.Debug("file exists, skipping", slog.String("path", dest))
				manifest.Status.Warn("%s exists, not overwritten", file.Path)
				continue
			}
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", filepath.Dir(dest), err)
		}
		if err := c.downloadFile(ctx, fetcher, file, dest); err != nil {
			return nil, err
		}
		c.logger.Info("file downloaded", slog.String("path", dest), slog.Int64("size", file.Size))
	}

	return manifest, nil
}

func (c *Client) downloadFile(ctx context.Context, fetcher Fetcher, file DataFile, dest string) error {
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	if err := fetcher.Fetch(ctx, file, out); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	return out.Close()
}

// TableHeader implements Table.
func (m *DataManifest) TableHeader() []string {
	return []string{"Path", "Type", "Size", "Quicklook"}
}

// TableRows implements Table.
func (m *DataManifest) TableRows() [][]string {
	rows := make([][]string, 0, len(m.Files))
	for _, file := range m.Files {
		rows = append(rows, []string{
			file.Path,
			file.Type,
			fmt.Sprintf("%d", file.Size),
			fmt.Sprintf("%t", file.Quicklook),
		})
	}
	return rows
}

func (m *DataManifest) String() string { return renderString(m) }
