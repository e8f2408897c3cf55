package metrics

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)

	m.ListPage()
	m.ListPage()
	m.ObjectListed()
	m.BytesRead(10)
	m.BytesRead(0)
	m.Removed()
	m.Error(OpRead, "NOT_FOUND")
	m.Error(OpRead, "NOT_FOUND")
	m.Error(OpList, "NETWORK_ERROR")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.listPages))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.objectsListed))
	assert.Equal(t, float64(10), testutil.ToFloat64(m.bytesRead))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.removes))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.errors.WithLabelValues(OpRead, "NOT_FOUND")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.errors.WithLabelValues(OpList, "NETWORK_ERROR")))
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ListPage()
		m.ObjectListed()
		m.BytesRead(5)
		m.Removed()
		m.Error(OpRemove, "NOT_FOUND")
	})
}

func TestNew_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	assert.Error(t, err)
}

func TestWriteText(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)
	m.Removed()

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, reg))
	assert.Contains(t, buf.String(), "objfs_removes_total 1")
	assert.Contains(t, buf.String(), "# TYPE objfs_list_pages_total counter")
}
