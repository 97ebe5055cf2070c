package s3_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	s3store "github.com/vytor/roster/internal/storage/s3"
)

type mockPutObjectAPI struct {
	mock.Mock
}

func (m *mockPutObjectAPI) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func TestStore_Put(t *testing.T) {
	ctx := context.Background()
	api := new(mockPutObjectAPI)
	api.On("PutObject", ctx, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		body, _ := io.ReadAll(in.Body)
		return aws.ToString(in.Bucket) == "avatars" &&
			aws.ToString(in.Key) == "a1.jpg" &&
			aws.ToString(in.ContentType) == "image/jpeg" &&
			string(body) == "jpeg"
	})).Return(&s3.PutObjectOutput{}, nil)

	path, err := s3store.NewWithClient(api, "avatars").Put(ctx, "a1.jpg", []byte("jpeg"), "image/jpeg")

	require.NoError(t, err)
	assert.Equal(t, "avatars/a1.jpg", path)
	api.AssertExpectations(t)
}

func TestStore_PutError(t *testing.T) {
	ctx := context.Background()
	api := new(mockPutObjectAPI)
	api.On("PutObject", ctx, mock.Anything).Return(nil, errors.New("AccessDenied"))

	_, err := s3store.NewWithClient(api, "avatars").Put(ctx, "a1.jpg", []byte("jpeg"), "image/jpeg")
	assert.EqualError(t, err, "AccessDenied")
}
