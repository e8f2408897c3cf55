package s3_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jmgilman/objfs/fs/fstest"
	"github.com/jmgilman/objfs/fs/s3"
	"github.com/jmgilman/objfs/fs/s3/s3test"
)

func TestConformance(t *testing.T) {
	for _, pageSize := range []int{1, 2, s3test.DefaultPageSize} {
		t.Run(fmt.Sprintf("page size %d", pageSize), func(t *testing.T) {
			fstest.TestSuiteWithConfig(t, func(t *testing.T, files map[string][]byte) fstest.Fixture {
				store := s3test.New(s3test.WithPageSize(pageSize))
				store.CreateBucket("walrus")
				for name, data := range files {
					store.AddObject("walrus", name, data)
				}

				filesystem, err := s3.New(store, s3.Config{})
				require.NoError(t, err)

				return fstest.Fixture{
					FS:   filesystem,
					Path: func(name string) string { return "s3://walrus/" + name },
				}
			}, fstest.S3TestConfig())
		})
	}
}
