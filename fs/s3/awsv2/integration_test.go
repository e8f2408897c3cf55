package awsv2

import (
	"context"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/localstack"

	"github.com/jmgilman/objfs/errors"
	"github.com/jmgilman/objfs/fs/fstest"
	"github.com/jmgilman/objfs/fs/s3"
)

// setupLocalStack starts a LocalStack container and returns an SDK client
// pointed at it.
func setupLocalStack(t *testing.T) *awss3.Client {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := localstack.Run(ctx, "localstack/localstack:latest")
	require.NoError(t, err, "failed to start localstack")

	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	endpoint, err := container.PortEndpoint(ctx, "4566/tcp", "http")
	require.NoError(t, err, "failed to get endpoint")

	api, err := NewAPI(ctx, Options{
		Region:       "us-east-1",
		Endpoint:     endpoint,
		AccessKey:    "test",
		SecretKey:    "test",
		UsePathStyle: true,
	})
	require.NoError(t, err)

	return api
}

func putObject(t *testing.T, api *awss3.Client, bucket, key, body string) string {
	t.Helper()
	_, err := api.PutObject(context.Background(), &awss3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   strings.NewReader(body),
	})
	require.NoError(t, err)
	return "s3://" + bucket + "/" + key
}

func TestIntegration_Filesystem(t *testing.T) {
	api := setupLocalStack(t)
	ctx := context.Background()

	_, err := api.CreateBucket(ctx, &awss3.CreateBucketInput{Bucket: aws.String("walrus")})
	require.NoError(t, err)

	paths := []string{
		putObject(t, api, "walrus", "data/bar", "bar\nbar\n"),
		putObject(t, api, "walrus", "data/bar/baz", "baz\nbaz\n"),
		putObject(t, api, "walrus", "data/foo", "foo\nfoo\n"),
	}

	client, err := New(Config{API: api, PageSize: 1})
	require.NoError(t, err)
	filesystem, err := s3.New(client, s3.Config{})
	require.NoError(t, err)

	t.Run("list across pages", func(t *testing.T) {
		var got []string
		for addr, err := range filesystem.List(ctx, "s3://walrus/data") {
			require.NoError(t, err)
			got = append(got, addr.String())
		}
		assert.Equal(t, paths, got)
	})

	t.Run("cat", func(t *testing.T) {
		var lines []string
		for line, err := range filesystem.Cat(ctx, "s3://walrus/data/f*") {
			require.NoError(t, err)
			lines = append(lines, string(line))
		}
		assert.Equal(t, []string{"foo\n", "foo\n"}, lines)
	})

	t.Run("du", func(t *testing.T) {
		total, err := filesystem.Du(ctx, "s3://walrus/data/bar")
		require.NoError(t, err)
		assert.Equal(t, uint64(8), total)
	})

	t.Run("missing bucket", func(t *testing.T) {
		_, err := client.Bucket(ctx, "no-such-bucket", true)
		assert.ErrorIs(t, err, fs.ErrNotExist)

		for _, err := range filesystem.List(ctx, "s3://no-such-bucket/") {
			t.Fatalf("unexpected element, err=%v", err)
		}
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, filesystem.Remove(ctx, paths[2]))

		exists, err := filesystem.PathExists(ctx, paths[2])
		require.NoError(t, err)
		assert.False(t, exists)

		err = filesystem.Remove(ctx, paths[2])
		assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
	})
}

func TestIntegration_Conformance(t *testing.T) {
	api := setupLocalStack(t)

	var n int
	fstest.TestSuiteWithConfig(t, func(t *testing.T, files map[string][]byte) fstest.Fixture {
		n++
		bucket := fmt.Sprintf("conformance-%d", n)
		_, err := api.CreateBucket(context.Background(), &awss3.CreateBucketInput{Bucket: aws.String(bucket)})
		require.NoError(t, err)
		for name, data := range files {
			putObject(t, api, bucket, name, string(data))
		}

		client, err := New(Config{API: api, PageSize: 2})
		require.NoError(t, err)
		filesystem, err := s3.New(client, s3.Config{})
		require.NoError(t, err)

		return fstest.Fixture{
			FS:   filesystem,
			Path: func(name string) string { return "s3://" + bucket + "/" + name },
		}
	}, fstest.S3TestConfig())
}
