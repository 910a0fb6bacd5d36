package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/elishacook/microfun/internal/config"
)

// S3API is the subset of the S3 client used by S3Store.
type S3API interface {
	s3.ListObjectsV2APIClient
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Store keeps one object per record under a key prefix. Keys are the
// zero-padded sequence number, so lexical order is sequence order.
type S3Store struct {
	client S3API
	bucket string
	prefix string

	mu   sync.Mutex
	next uint64 // 0 until the bucket has been listed
}

// NewS3Store creates a store over client.
func NewS3Store(client S3API, bucket, prefix string) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: prefix}
}

// NewS3Client builds an S3 client from the snapshot config. Credentials and,
// when cfg.Region is empty, the region come from the default AWS chain:
// environment, shared config and credentials files, SSO, then instance
// metadata. An endpoint switches the client to path-style addressing for
// S3-compatible servers.
func NewS3Client(ctx context.Context, cfg config.SnapshotConfig) (*s3.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, storageError("load aws config", err)
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// s3Entry is the stored object body.
type s3Entry struct {
	Seq   uint64          `json:"seq"`
	Time  time.Time       `json:"time"`
	Model json.RawMessage `json:"model"`
}

// Append implements Store.
func (s *S3Store) Append(ctx context.Context, data []byte) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.next == 0 {
		last, err := s.lastSeq(ctx)
		if err != nil {
			return 0, err
		}
		s.next = last + 1
	}
	seq := s.next

	body, err := json.Marshal(s3Entry{Seq: seq, Time: time.Now().UTC(), Model: data})
	if err != nil {
		return 0, storageError("encode", err)
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(seq)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return 0, storageError("put", err)
	}
	s.next++
	return seq, nil
}

// Latest implements Store.
func (s *S3Store) Latest(ctx context.Context) (Record, error) {
	seq, err := s.lastSeq(ctx)
	if err != nil {
		return Record{}, err
	}
	if seq == 0 {
		return Record{}, ErrNotFound
	}
	return s.Get(ctx, seq)
}

// Get returns the record with the given sequence.
func (s *S3Store) Get(ctx context.Context, seq uint64) (Record, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(seq)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if stderrors.As(err, &nsk) {
			return Record{}, ErrNotFound
		}
		return Record{}, storageError("get", err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return Record{}, storageError("read", err)
	}
	var entry s3Entry
	if err := json.Unmarshal(body, &entry); err != nil {
		return Record{}, storageError("decode", err)
	}
	return Record{Seq: seq, Time: entry.Time, Model: entry.Model}, nil
}

// Close implements Store. The client holds no resources.
func (s *S3Store) Close() error {
	return nil
}

func (s *S3Store) key(seq uint64) string {
	return fmt.Sprintf("%s%020d.json", s.prefix, seq)
}

// lastSeq lists the prefix and returns the highest sequence, or 0.
func (s *S3Store) lastSeq(ctx context.Context) (uint64, error) {
	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})
	var last uint64
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return 0, storageError("list", err)
		}
		for _, obj := range page.Contents {
			seq, ok := s.parseKey(aws.ToString(obj.Key))
			if ok && seq > last {
				last = seq
			}
		}
	}
	return last, nil
}

func (s *S3Store) parseKey(key string) (uint64, bool) {
	name, ok := strings.CutPrefix(key, s.prefix)
	if !ok {
		return 0, false
	}
	name, ok = strings.CutSuffix(name, ".json")
	if !ok {
		return 0, false
	}
	seq, err := strconv.ParseUint(name, 10, 64)
	return seq, err == nil
}
