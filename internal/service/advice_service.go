package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"strings"
	"time"

	// Register the image formats clients are expected to upload.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"gorm.io/gorm"

	"guardianclima/internal/ai"
	"guardianclima/internal/auth"
	apperrors "guardianclima/internal/errors"
	"guardianclima/internal/model"
	"guardianclima/internal/repository"
	"guardianclima/internal/weather"
)

// NotConfiguredAdvice is returned on the AI endpoints when no generation
// provider key is configured. The request still succeeds.
const NotConfiguredAdvice = "La función de IA no está configurada."

// AdviceService orchestrates the three AI endpoints: quota, weather,
// generation, outfit recording and token reissue.
type AdviceService interface {
	// TextAdvice generates plain styling advice. No quota gate and no
	// token reissue on this path.
	TextAdvice(ctx context.Context, userID uint, city string) (string, error)
	// OutfitAdvice generates image-grounded outfit advice, records it,
	// and reissues the token with the spent quota.
	OutfitAdvice(ctx context.Context, userID uint, city string, files []*multipart.FileHeader) (advice, accessToken string, err error)
	// TravelAdvice generates a packing list and reissues the token with
	// the spent quota. Travel advice is not recorded.
	TravelAdvice(ctx context.Context, userID uint, city, startDate, endDate string) (advice, accessToken string, err error)
}

type adviceService struct {
	userRepo   repository.UserRepository
	outfitRepo repository.OutfitRepository
	fetcher    weather.Fetcher
	advisor    ai.Advisor // nil when no provider key is configured
	quota      QuotaService
	jwtService *auth.JWTService
}

// NewAdviceService creates a new advice service. advisor may be nil when
// the generation provider is not configured.
func NewAdviceService(
	userRepo repository.UserRepository,
	outfitRepo repository.OutfitRepository,
	fetcher weather.Fetcher,
	advisor ai.Advisor,
	quota QuotaService,
	jwtService *auth.JWTService,
) AdviceService {
	return &adviceService{
		userRepo:   userRepo,
		outfitRepo: outfitRepo,
		fetcher:    fetcher,
		advisor:    advisor,
		quota:      quota,
		jwtService: jwtService,
	}
}

func (s *adviceService) findUser(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *adviceService) TextAdvice(ctx context.Context, userID uint, city string) (string, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return "", err
	}

	snap, _, err := s.fetcher.Fetch(ctx, city)
	if err != nil {
		return "", err
	}

	if s.advisor == nil {
		return NotConfiguredAdvice, nil
	}
	return s.advisor.TextAdvice(ctx, user, snap)
}

func (s *adviceService) OutfitAdvice(ctx context.Context, userID uint, city string, files []*multipart.FileHeader) (string, string, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return "", "", err
	}

	// Quota is spent before input validation and before any provider
	// call; a failure further down does not refund it.
	if err := s.quota.CheckAndConsume(ctx, user, FeatureOutfitAdvice); err != nil {
		return "", "", err
	}

	if strings.TrimSpace(city) == "" {
		return "", "", apperrors.ErrCityRequired
	}
	if len(files) == 0 {
		return "", "", apperrors.ErrNoImages
	}

	images := make([]ai.Image, 0, len(files))
	for _, fh := range files {
		img, err := readImage(fh)
		if err != nil {
			return "", "", err
		}
		images = append(images, img)
	}

	snap, _, err := s.fetcher.Fetch(ctx, city)
	if err != nil {
		return "", "", err
	}

	if s.advisor == nil {
		return NotConfiguredAdvice, "", nil
	}

	advice, err := s.advisor.OutfitAdvice(ctx, user, city, snap, images)
	if err != nil {
		return "", "", err
	}

	// Advice without a persisted record is considered incomplete, so a
	// failed insert fails the whole request.
	outfit := &model.Outfit{
		UserID: user.ID,
		City:   city,
		Advice: advice,
		Date:   time.Now().UTC(),
	}
	if err := s.outfitRepo.Create(ctx, outfit); err != nil {
		return "", "", fmt.Errorf("record outfit: %w", err)
	}

	token, err := s.jwtService.IssueForUser(user)
	if err != nil {
		return "", "", fmt.Errorf("issue token: %w", err)
	}
	return advice, token, nil
}

func (s *adviceService) TravelAdvice(ctx context.Context, userID uint, city, startDate, endDate string) (string, string, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return "", "", err
	}

	if err := s.quota.CheckAndConsume(ctx, user, FeatureTravelAdvice); err != nil {
		return "", "", err
	}

	if strings.TrimSpace(city) == "" || strings.TrimSpace(startDate) == "" || strings.TrimSpace(endDate) == "" {
		return "", "", apperrors.ErrTravelDataRequired
	}

	snap, _, err := s.fetcher.Fetch(ctx, city)
	if err != nil {
		return "", "", err
	}

	if s.advisor == nil {
		return NotConfiguredAdvice, "", nil
	}

	advice, err := s.advisor.TravelAdvice(ctx, user, city, startDate, endDate, snap)
	if err != nil {
		return "", "", err
	}

	token, err := s.jwtService.IssueForUser(user)
	if err != nil {
		return "", "", fmt.Errorf("issue token: %w", err)
	}
	return advice, token, nil
}

// readImage loads an uploaded file and verifies it decodes as an image.
// The raw bytes are kept; only the header is decoded here.
func readImage(fh *multipart.FileHeader) (ai.Image, error) {
	if fh.Filename == "" {
		return ai.Image{}, apperrors.ErrInvalidImage
	}

	f, err := fh.Open()
	if err != nil {
		return ai.Image{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidImage, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return ai.Image{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidImage, err)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ai.Image{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidImage, err)
	}

	return ai.Image{Data: data, Format: format}, nil
}
