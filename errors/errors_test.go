package errors

import (
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(CodeNotFound, "object not found")

	require.Error(t, err)
	assert.Equal(t, CodeNotFound, err.Code())
	assert.Equal(t, ClassificationPermanent, err.Classification())
	assert.Equal(t, "object not found", err.Message())
	assert.Equal(t, "[NOT_FOUND] object not found", err.Error())
	assert.Nil(t, err.Context())
	assert.Nil(t, err.Unwrap())
}

func TestNewf(t *testing.T) {
	err := Newf(CodeInvalidAddress, "unsupported scheme %q", "gs")
	assert.Equal(t, `[INVALID_ADDRESS] unsupported scheme "gs"`, err.Error())
}

func TestDefaultClassification(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want ErrorClassification
	}{
		{CodeNetwork, ClassificationRetryable},
		{CodeTimeout, ClassificationRetryable},
		{CodeNotFound, ClassificationPermanent},
		{CodeInvalidAddress, ClassificationPermanent},
		{CodeDecompressionFailed, ClassificationPermanent},
		{CodeForbidden, ClassificationPermanent},
		{ErrorCode("SOMETHING_ELSE"), ClassificationPermanent},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.code, "x").Classification())
		})
	}
}

func TestWrap(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, CodeNetwork, "ignored"))
		assert.Nil(t, Wrapf(nil, CodeNetwork, "ignored %d", 1))
	})

	t.Run("preserves cause", func(t *testing.T) {
		cause := stderrors.New("connection reset")
		err := Wrap(cause, CodeNetwork, "list objects failed")

		assert.Equal(t, "[NETWORK_ERROR] list objects failed: connection reset", err.Error())
		assert.True(t, stderrors.Is(err, cause))
		assert.Equal(t, cause, stderrors.Unwrap(err))
		assert.True(t, IsRetryable(err))
	})

	t.Run("preserves inner classification", func(t *testing.T) {
		inner := New(CodeForbidden, "access denied")
		err := Wrap(inner, CodeNetwork, "get object failed")

		assert.Equal(t, CodeNetwork, err.Code())
		assert.Equal(t, ClassificationPermanent, err.Classification())
	})
}

func TestWrapWithContext(t *testing.T) {
	ctx := map[string]interface{}{"address": "s3://walrus/data"}
	err := WrapWithContext(stderrors.New("boom"), CodeNetwork, "failed", ctx)

	ctx["address"] = "mutated"
	assert.Equal(t, "s3://walrus/data", err.Context()["address"])
}

func TestWithContext(t *testing.T) {
	t.Run("adds fields", func(t *testing.T) {
		err := WithContext(New(CodeNotFound, "missing"), "address", "s3://walrus/foo")
		err = WithContext(err, "op", "remove")

		assert.Equal(t, CodeNotFound, err.Code())
		assert.Equal(t, map[string]interface{}{
			"address": "s3://walrus/foo",
			"op":      "remove",
		}, err.Context())
	})

	t.Run("converts standard errors", func(t *testing.T) {
		cause := stderrors.New("plain")
		err := WithContext(cause, "k", "v")

		assert.Equal(t, CodeUnknown, err.Code())
		assert.True(t, stderrors.Is(err, cause))
	})

	t.Run("context is a copy", func(t *testing.T) {
		err := WithContext(New(CodeInternal, "x"), "k", "v")
		ctx := err.Context()
		ctx["k"] = "changed"
		assert.Equal(t, "v", err.Context()["k"])
	})
}

func TestFSSentinels(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"not found", New(CodeNotFound, "x"), fs.ErrNotExist, true},
		{"wrapped not found", Wrap(New(CodeNotFound, "x"), CodeNotFound, "y"), fs.ErrNotExist, true},
		{"forbidden", New(CodeForbidden, "x"), fs.ErrPermission, true},
		{"invalid address", New(CodeInvalidAddress, "x"), fs.ErrInvalid, true},
		{"network is not not-exist", New(CodeNetwork, "x"), fs.ErrNotExist, false},
		{"not found is not permission", New(CodeNotFound, "x"), fs.ErrPermission, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stderrors.Is(tt.err, tt.target))
		})
	}
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, CodeUnknown, GetCode(nil))
	assert.Equal(t, CodeUnknown, GetCode(stderrors.New("plain")))
	assert.Equal(t, CodeTimeout, GetCode(New(CodeTimeout, "slow")))
	assert.True(t, HasCode(New(CodeNotFound, "x"), CodeNotFound))
	assert.False(t, HasCode(nil, CodeUnknown))
}

func TestGetClassification(t *testing.T) {
	assert.Equal(t, ClassificationPermanent, GetClassification(nil))
	assert.Equal(t, ClassificationPermanent, GetClassification(stderrors.New("plain")))
	assert.False(t, IsRetryable(New(CodeNotFound, "x")))
}

func TestToJSON(t *testing.T) {
	assert.Nil(t, ToJSON(nil))

	err := WithContext(New(CodeNotFound, "object not found"), "address", "s3://walrus/foo")
	resp := ToJSON(err)
	require.NotNil(t, resp)
	assert.Equal(t, "NOT_FOUND", resp.Code)
	assert.Equal(t, "object not found", resp.Message)
	assert.Equal(t, "PERMANENT", resp.Classification)
	assert.Equal(t, "s3://walrus/foo", resp.Context["address"])

	plain := ToJSON(stderrors.New("plain"))
	assert.Equal(t, "UNKNOWN", plain.Code)
	assert.Equal(t, "plain", plain.Message)
}

func TestMarshalJSON(t *testing.T) {
	data, err := json.Marshal(New(CodeDecompressionFailed, "corrupt gzip stream"))
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"code":"DECOMPRESSION_FAILED","message":"corrupt gzip stream","classification":"PERMANENT"}`,
		string(data))
}
