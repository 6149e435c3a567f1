package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/wellness-booking/internal/config"
)

func TestPublicBase(t *testing.T) {
	assert.Equal(t,
		"https://cdn.example.com",
		publicBase(&config.Config{S3PublicURL: "https://cdn.example.com/", S3Bucket: "b"}),
	)
	assert.Equal(t,
		"http://minio:9000/photos",
		publicBase(&config.Config{S3Endpoint: "http://minio:9000/", S3Bucket: "photos"}),
	)
	assert.Equal(t,
		"https://photos.s3.eu-central-1.amazonaws.com",
		publicBase(&config.Config{S3Bucket: "photos", S3Region: "eu-central-1"}),
	)
}
