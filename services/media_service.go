package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"log"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/nfnt/resize"
	"github.com/techagentng/wayvee/config"
	apiError "github.com/techagentng/wayvee/errors"
	"github.com/techagentng/wayvee/models"
)

const (
	MaxFileSize      = 5 * 1024 * 1024 // 5 MB
	AllowedMimeTypes = "image/jpeg,image/png,image/gif"
)

// UploadedImage is the stored rendition set for one uploaded file.
type UploadedImage struct {
	Key          string `json:"key"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

type MediaService interface {
	UploadImages(files []*multipart.FileHeader) ([]UploadedImage, *apiError.Error)
	UploadGovernmentID(userID uuid.UUID, file *multipart.FileHeader) (*models.StayImage, *apiError.Error)
}

type mediaService struct {
	Config *config.Config
	s3     *s3.Client
}

func NewMediaService(conf *config.Config) (MediaService, error) {
	client, err := createS3Client(conf)
	if err != nil {
		return nil, err
	}
	return &mediaService{Config: conf, s3: client}, nil
}

func createS3Client(conf *config.Config) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(conf.AwsRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			conf.AwsAccessKeyID,
			conf.AwsSecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %v", err)
	}
	return s3.NewFromConfig(cfg), nil
}

func validateImageFile(file *multipart.FileHeader) error {
	if file.Size > MaxFileSize {
		return fmt.Errorf("file size exceeds limit of %d bytes", MaxFileSize)
	}
	mimeType := file.Header.Get("Content-Type")
	for _, allowed := range strings.Split(AllowedMimeTypes, ",") {
		if mimeType == allowed {
			return nil
		}
	}
	return fmt.Errorf("invalid file type: %s", mimeType)
}

func (m *mediaService) putObject(key string, body []byte, contentType string) (string, error) {
	_, err := m.s3.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(m.Config.S3Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %v", err)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", m.Config.S3Bucket, m.Config.AwsRegion, key), nil
}

// renditions produces the feed-sized image and a small thumbnail.
func renditions(img image.Image) (feed, thumb []byte, err error) {
	feedImg := imaging.Fill(img, 1080, 1080, imaging.Center, imaging.Lanczos)
	thumbnailImg := resize.Resize(200, 0, img, resize.Lanczos3)

	var feedBuf, thumbBuf bytes.Buffer
	if err := jpeg.Encode(&feedBuf, feedImg, nil); err != nil {
		return nil, nil, err
	}
	if err := jpeg.Encode(&thumbBuf, thumbnailImg, nil); err != nil {
		return nil, nil, err
	}
	return feedBuf.Bytes(), thumbBuf.Bytes(), nil
}

func (m *mediaService) UploadImages(files []*multipart.FileHeader) ([]UploadedImage, *apiError.Error) {
	if len(files) == 0 {
		return nil, apiError.New("no files uploaded", http.StatusBadRequest)
	}

	uploaded := make([]UploadedImage, 0, len(files))
	for _, fileHeader := range files {
		if err := validateImageFile(fileHeader); err != nil {
			return nil, apiError.New(err.Error(), http.StatusBadRequest)
		}

		file, err := fileHeader.Open()
		if err != nil {
			log.Printf("UploadImages open error: %v", err)
			return nil, apiError.ErrInternalServerError
		}
		img, err := imaging.Decode(file)
		file.Close()
		if err != nil {
			return nil, apiError.New("could not decode image", http.StatusBadRequest)
		}

		feed, thumb, err := renditions(img)
		if err != nil {
			log.Printf("UploadImages rendition error: %v", err)
			return nil, apiError.ErrInternalServerError
		}

		key := uuid.New().String()
		feedURL, err := m.putObject("stays/"+key+".jpg", feed, "image/jpeg")
		if err != nil {
			log.Printf("UploadImages S3 error: %v", err)
			return nil, apiError.ErrInternalServerError
		}
		thumbURL, err := m.putObject("stays/thumbs/"+key+".jpg", thumb, "image/jpeg")
		if err != nil {
			log.Printf("UploadImages S3 thumbnail error: %v", err)
			return nil, apiError.ErrInternalServerError
		}

		uploaded = append(uploaded, UploadedImage{
			Key:          key,
			URL:          feedURL,
			ThumbnailURL: thumbURL,
		})
	}

	return uploaded, nil
}

func (m *mediaService) UploadGovernmentID(userID uuid.UUID, file *multipart.FileHeader) (*models.StayImage, *apiError.Error) {
	if err := validateImageFile(file); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}

	f, err := file.Open()
	if err != nil {
		log.Printf("UploadGovernmentID open error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	defer f.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(f); err != nil {
		log.Printf("UploadGovernmentID read error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	key := fmt.Sprintf("govt-id/%s", userID)
	url, err := m.putObject(key, buf.Bytes(), file.Header.Get("Content-Type"))
	if err != nil {
		log.Printf("UploadGovernmentID S3 error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	return &models.StayImage{Key: key, URL: url}, nil
}
