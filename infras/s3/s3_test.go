package s3

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookly/infras/otel/mocks"
)

type fakeObjects struct {
	put     *s3.PutObjectInput
	body    []byte
	deleted string
	err     error
}

func (f *fakeObjects) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.put = params
	f.body, _ = io.ReadAll(params.Body)

	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjects) DeleteObject(_ context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.deleted = aws.ToString(params.Key)

	return &s3.DeleteObjectOutput{}, nil
}

func TestUploadFileBytes(t *testing.T) {
	objects := &fakeObjects{}
	svc := newWithClient(objects, "assets", "https://cdn.example.com/", mocks.NewOtel())

	url, err := svc.UploadFileBytes(context.Background(), "logos/biz-1", "logo.png", "image/png", []byte("png"))
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/logos/biz-1/logo.png", url)
	assert.Equal(t, "assets", aws.ToString(objects.put.Bucket))
	assert.Equal(t, "logos/biz-1/logo.png", aws.ToString(objects.put.Key))
	assert.Equal(t, "image/png", aws.ToString(objects.put.ContentType))
	assert.Equal(t, []byte("png"), objects.body)

	assert.Equal(t, "logos/biz-1/logo.png", svc.ObjectKeyFromURL(url))
	assert.Empty(t, svc.ObjectKeyFromURL("https://elsewhere.example.com/logo.png"))
}

func TestDeleteFile(t *testing.T) {
	objects := &fakeObjects{}
	svc := newWithClient(objects, "assets", "https://cdn.example.com", mocks.NewOtel())

	require.NoError(t, svc.DeleteFile(context.Background(), "logos/biz-1/logo.png"))
	assert.Equal(t, "logos/biz-1/logo.png", objects.deleted)

	objects.err = errors.New("access denied")
	assert.Error(t, svc.DeleteFile(context.Background(), "logos/biz-1/logo.png"))
}
