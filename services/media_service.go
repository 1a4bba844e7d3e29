package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/teamuphq/teamup/config"
	"github.com/teamuphq/teamup/db"
	apiError "github.com/teamuphq/teamup/errors"
	"github.com/teamuphq/teamup/models"
)

const thumbnailSize = 128

// MediaService stores profile pictures in S3 and keeps a square thumbnail
// next to the original.
type MediaService interface {
	UploadProfileImage(userID uint, file multipart.File, filename string) (*models.User, *apiError.Error)
}

type mediaService struct {
	Config   *config.Config
	authRepo db.AuthRepository
}

func NewMediaService(authRepo db.AuthRepository, conf *config.Config) MediaService {
	return &mediaService{
		Config:   conf,
		authRepo: authRepo,
	}
}

func createS3Client(region string) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			os.Getenv("AWS_ACCESS_KEY_ID"),
			os.Getenv("AWS_SECRET_ACCESS_KEY"),
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %v", err)
	}
	return s3.NewFromConfig(cfg), nil
}

func (m *mediaService) uploadToS3(client *s3.Client, body io.Reader, key string) (string, error) {
	_, err := client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket: aws.String(m.Config.AwsBucket),
		Key:    aws.String(key),
		Body:   body,
		ACL:    types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %v", err)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", m.Config.AwsBucket, m.Config.AwsRegion, key), nil
}

func (m *mediaService) UploadProfileImage(userID uint, file multipart.File, filename string) (*models.User, *apiError.Error) {
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		log.Printf("UploadProfileImage read error: %v", err)
		return nil, apiError.New("could not read uploaded file", http.StatusBadRequest)
	}

	img, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, apiError.New("uploaded file is not a valid image", http.StatusBadRequest)
	}

	thumb := imaging.Thumbnail(img, thumbnailSize, thumbnailSize, imaging.Lanczos)
	var thumbBuf bytes.Buffer
	if err := imaging.Encode(&thumbBuf, thumb, imaging.JPEG); err != nil {
		log.Printf("UploadProfileImage thumbnail error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	client, err := createS3Client(m.Config.AwsRegion)
	if err != nil {
		log.Printf("UploadProfileImage s3 error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	ext := filepath.Ext(filename)
	key := fmt.Sprintf("profiles/%d/%s%s", userID, uuid.New().String(), ext)
	pictureURL, err := m.uploadToS3(client, bytes.NewReader(content), key)
	if err != nil {
		log.Printf("UploadProfileImage error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	thumbKey := fmt.Sprintf("profiles/%d/thumb_%s.jpg", userID, uuid.New().String())
	thumbnailURL, err := m.uploadToS3(client, bytes.NewReader(thumbBuf.Bytes()), thumbKey)
	if err != nil {
		log.Printf("UploadProfileImage thumbnail upload error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	if err := m.authRepo.UpsertUserImage(userID, pictureURL, thumbnailURL); err != nil {
		log.Printf("UploadProfileImage error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	user, err := m.authRepo.FindUserByID(userID)
	if err != nil {
		log.Printf("UploadProfileImage error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return user, nil
}
