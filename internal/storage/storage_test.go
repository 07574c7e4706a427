package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/contactbook/engine/pkg/utils"
)

func TestDataURIStore(t *testing.T) {
	url, err := NewDataURIStore().Save(context.Background(), uuid.New(), Picture{ContentType: "image/png", Data: []byte("hello")})
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", url)
}

func TestPictureKey(t *testing.T) {
	owner := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	data := []byte("img")
	sum := utils.SumSHA256Hex(data)

	assert.Equal(t, "profile-pictures/"+owner.String()+"/"+sum+".png",
		PictureKey(owner, Picture{Filename: "Me.PNG", ContentType: "image/jpeg", Data: data}))
	assert.Equal(t, "profile-pictures/"+owner.String()+"/"+sum+".bin",
		PictureKey(owner, Picture{ContentType: "image/x-unknown-kind", Data: data}))
}

func TestPublicBaseURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com", publicBaseURL(S3Config{PublicURL: "https://cdn.example.com/", Bucket: "b"}))
	assert.Equal(t, "http://minio:9000/pics", publicBaseURL(S3Config{Endpoint: "http://minio:9000", Bucket: "pics"}))
	assert.Equal(t, "https://pics.s3.eu-west-1.amazonaws.com", publicBaseURL(S3Config{Bucket: "pics", Region: "eu-west-1"}))
}

type mockPutter struct {
	mock.Mock
}

func (m *mockPutter) PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, in)
	if v := args.Get(0); v != nil {
		return v.(*s3.PutObjectOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestS3Store_SaveWithMock(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	p := Picture{Filename: "a.jpg", ContentType: "image/jpeg", Data: []byte("jpeg-bytes")}
	key := PictureKey(owner, p)

	m := &mockPutter{}
	m.On("PutObject", ctx, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return *in.Bucket == "pics" && *in.Key == key && *in.ContentType == "image/jpeg"
	})).Return(&s3.PutObjectOutput{}, nil).Once()

	s := &S3Store{client: m, bucket: "pics", baseURL: "https://cdn.example.com"}
	url, err := s.Save(ctx, owner, p)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/"+key, url)
	mock.AssertExpectationsForObjects(t, m)
}

func TestS3Store_SaveError(t *testing.T) {
	m := &mockPutter{}
	m.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied")).Once()

	s := &S3Store{client: m, bucket: "pics", baseURL: "https://cdn.example.com"}
	_, err := s.Save(context.Background(), uuid.New(), Picture{ContentType: "image/png", Data: []byte("x")})
	require.ErrorContains(t, err, "access denied")
}

func TestS3Store_AgainstFakeEndpoint(t *testing.T) {
	var (
		mu     sync.Mutex
		method string
		gotURL string
		body   string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		method, gotURL, body = r.Method, r.URL.Path, string(b)
		mu.Unlock()
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store, err := NewS3Store(context.Background(), S3Config{
		Bucket:    "pics",
		Region:    "us-east-1",
		Endpoint:  srv.URL,
		AccessKey: "minio",
		SecretKey: "minio123",
	})
	require.NoError(t, err)

	owner := uuid.New()
	p := Picture{Filename: "face.png", ContentType: "image/png", Data: []byte("png-bytes")}
	url, err := store.Save(context.Background(), owner, p)
	require.NoError(t, err)

	key := PictureKey(owner, p)
	assert.Equal(t, srv.URL+"/pics/"+key, url)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/pics/"+key, gotURL)
	assert.True(t, strings.Contains(body, "png-bytes"))
}
