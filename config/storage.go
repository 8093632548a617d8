package config

import (
	"sync"
)

var (
	minioOnce   sync.Once
	minioConfig *MinioConfig

	s3Once   sync.Once
	s3Config *S3Config
)

type MinioConfig struct {
	AccessKey  string
	SecretKey  string
	Endpoint   string
	UseSSL     bool
	Region     string
	BucketName string
}

func GetMinioConfig() *MinioConfig {
	minioOnce.Do(func() {
		loadEnv()
		minioConfig = &MinioConfig{
			AccessKey:  getenv("MINIO_ACCESS_KEY", ""),
			SecretKey:  getenv("MINIO_SECRET_KEY", ""),
			Endpoint:   getenv("MINIO_ENDPOINT", "localhost:9000"),
			UseSSL:     getenv("MINIO_USE_SSL", "false") == "true",
			Region:     getenv("MINIO_REGION", ""),
			BucketName: getenv("MINIO_BUCKET_NAME", "extractions"),
		}
	})
	return minioConfig
}

type S3Config struct {
	Region     string
	AccessKey  string
	SecretKey  string
	BucketName string
}

func GetS3Config() *S3Config {
	s3Once.Do(func() {
		loadEnv()
		s3Config = &S3Config{
			Region:     getenv("AWS_REGION", ""),
			AccessKey:  getenv("AWS_ACCESS_KEY", ""),
			SecretKey:  getenv("AWS_SECRET_KEY", ""),
			BucketName: getenv("S3_BUCKET_NAME", "extractions"),
		}
	})
	return s3Config
}
