package arn

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r3-yamauchi/bedrock-kb-mcp-server/internal/validate"
)

type fakeAccounts struct {
	accountID string
	err       error
}

func (f *fakeAccounts) AccountID(ctx context.Context) (string, error) {
	return f.accountID, f.err
}

func TestNormalizeS3(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{name: "arn passes through", value: "arn:aws:s3:::my-bucket", want: "arn:aws:s3:::my-bucket"},
		{name: "uri converted", value: "s3://my-bucket", want: "arn:aws:s3:::my-bucket"},
		{name: "uri path discarded", value: "s3://bucket-name/some/path", want: "arn:aws:s3:::bucket-name"},
		{name: "trims whitespace", value: "  s3://my-bucket  ", want: "arn:aws:s3:::my-bucket"},
		{name: "empty rejected", value: "", wantErr: true},
		{name: "bare name rejected", value: "my-bucket", wantErr: true},
		{name: "uri without bucket rejected", value: "s3://", wantErr: true},
		{name: "uri bucket too short rejected", value: "s3://ab", wantErr: true},
		{name: "http url rejected", value: "https://my-bucket.s3.amazonaws.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeS3(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				var inputErr *validate.Error
				assert.ErrorAs(t, err, &inputErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeS3Idempotent(t *testing.T) {
	first, err := NormalizeS3("s3://my-bucket")
	require.NoError(t, err)

	second, err := NormalizeS3(first)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNormalizeRole(t *testing.T) {
	accounts := &fakeAccounts{accountID: "123456789012"}

	t.Run("full arn passes through without lookup", func(t *testing.T) {
		got, err := NormalizeRole(context.Background(), "arn:aws:iam::999999999999:role/MyRole", &fakeAccounts{err: errors.New("should not be called")})
		require.NoError(t, err)
		assert.Equal(t, "arn:aws:iam::999999999999:role/MyRole", got)
	})

	t.Run("role shorthand resolves account", func(t *testing.T) {
		got, err := NormalizeRole(context.Background(), "role/MyRole", accounts)
		require.NoError(t, err)
		assert.Equal(t, "arn:aws:iam::123456789012:role/MyRole", got)
	})

	t.Run("accountless arn shorthand resolves account", func(t *testing.T) {
		got, err := NormalizeRole(context.Background(), "arn:aws:iam::role/MyRole", accounts)
		require.NoError(t, err)
		assert.Equal(t, "arn:aws:iam::123456789012:role/MyRole", got)
	})

	t.Run("invalid format rejected", func(t *testing.T) {
		_, err := NormalizeRole(context.Background(), "MyRole", accounts)
		require.Error(t, err)
		var inputErr *validate.Error
		assert.ErrorAs(t, err, &inputErr)
	})

	t.Run("empty rejected", func(t *testing.T) {
		_, err := NormalizeRole(context.Background(), "", accounts)
		require.Error(t, err)
	})

	t.Run("sts failure is not a format error", func(t *testing.T) {
		stsErr := errors.New("sts unavailable")
		_, err := NormalizeRole(context.Background(), "role/MyRole", &fakeAccounts{err: stsErr})
		require.Error(t, err)
		assert.ErrorIs(t, err, stsErr)
		var inputErr *validate.Error
		assert.False(t, errors.As(err, &inputErr))
	})
}

func TestBucketNameFromARN(t *testing.T) {
	assert.Equal(t, "my-bucket", BucketNameFromARN("arn:aws:s3:::my-bucket"))
}
