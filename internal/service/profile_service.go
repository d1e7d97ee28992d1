package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/noah-isme/enrollment-portal-api/internal/dto"
	"github.com/noah-isme/enrollment-portal-api/internal/repository"
)

// ErrEnrollmentNotFound indicates the user has no current enrollment record.
var ErrEnrollmentNotFound = errors.New("no enrollment record")

// ErrNoLoadedRecord indicates a save was attempted without a record
// identifier captured from a prior load.
var ErrNoLoadedRecord = errors.New("no enrollment record loaded")

// ProfileIdentity describes the authenticated account behind a profile
// operation.
type ProfileIdentity struct {
	UserID     uint
	LoginEmail string
	ClientIP   string
}

// ProfileService loads and saves the student profile screen model.
type ProfileService interface {
	Load(ctx context.Context, identity ProfileIdentity) (dto.ProfileResponse, error)
	Save(ctx context.Context, identity ProfileIdentity, payload dto.ProfileUpdateRequest) (dto.ProfileResponse, error)
}

type profileService struct {
	enrollments repository.EnrollmentRepository
	lookups     repository.LookupRepository
	validator   *validator.Validate
	cache       *redis.Client
	cacheTTL    time.Duration
	audit       AuditRecorder
	logger      zerolog.Logger
}

// NewProfileService constructs the profile service.
func NewProfileService(enrollments repository.EnrollmentRepository, lookups repository.LookupRepository, validate *validator.Validate, cache *redis.Client, cacheTTL time.Duration, audit AuditRecorder, logger zerolog.Logger) ProfileService {
	return &profileService{
		enrollments: enrollments,
		lookups:     lookups,
		validator:   validate,
		cache:       cache,
		cacheTTL:    cacheTTL,
		audit:       audit,
		logger:      logger.With().Str("component", "profile_service").Logger(),
	}
}

func (s *profileService) Load(ctx context.Context, identity ProfileIdentity) (dto.ProfileResponse, error) {
	cacheKey := profileCacheKey(identity.UserID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.ProfileResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("user_id", identity.UserID).Msg("profile cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read profile cache")
		}
	}

	enrollment, err := s.enrollments.LatestActive(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProfileResponse{}, ErrEnrollmentNotFound
		}
		return dto.ProfileResponse{}, err
	}

	// The three lookups are independent; resolve them in parallel and join
	// before building the response. A nil foreign key never hits the
	// database.
	grade := dto.Placeholder
	track := dto.Placeholder
	strand := dto.Placeholder

	g, gctx := errgroup.WithContext(ctx)
	if enrollment.GradeLevelID != nil {
		id := *enrollment.GradeLevelID
		g.Go(func() error {
			code, err := s.lookups.GradeLevelCode(gctx, id)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil
				}
				return fmt.Errorf("resolve grade level: %w", err)
			}
			grade = code
			return nil
		})
	}
	if enrollment.TrackID != nil {
		id := *enrollment.TrackID
		g.Go(func() error {
			code, err := s.lookups.TrackCode(gctx, id)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil
				}
				return fmt.Errorf("resolve track: %w", err)
			}
			track = code
			return nil
		})
	}
	if enrollment.StrandID != nil {
		id := *enrollment.StrandID
		g.Go(func() error {
			code, err := s.lookups.StrandCode(gctx, id)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil
				}
				return fmt.Errorf("resolve strand: %w", err)
			}
			strand = code
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return dto.ProfileResponse{}, err
	}

	// Falls back to the account's login email when the enrollment carries
	// none. The substitution is silent; the client cannot tell which value
	// is authoritative.
	email := strings.TrimSpace(enrollment.Email)
	if email == "" {
		email = identity.LoginEmail
	}

	response := dto.ProfileResponse{
		RecordID:        enrollment.ID,
		FullName:        fullName(enrollment.FirstName, enrollment.MiddleName, enrollment.LastName, enrollment.Suffix),
		StudentNumber:   enrollment.StudentNumber,
		Email:           email,
		GradeLevel:      grade,
		Track:           track,
		Strand:          strand,
		Address:         enrollment.Address,
		GuardianName:    enrollment.GuardianName,
		GuardianContact: enrollment.GuardianContact,
		UpdatedAt:       enrollment.UpdatedAt,
	}

	if s.cache != nil {
		payload, err := json.Marshal(response)
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store profile cache")
			}
		}
	}

	return response, nil
}

func (s *profileService) Save(ctx context.Context, identity ProfileIdentity, payload dto.ProfileUpdateRequest) (dto.ProfileResponse, error) {
	if payload.RecordID == 0 {
		return dto.ProfileResponse{}, ErrNoLoadedRecord
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.ProfileResponse{}, err
	}

	updates := map[string]interface{}{
		"address":          strings.TrimSpace(payload.Address),
		"guardian_name":    strings.TrimSpace(payload.GuardianName),
		"guardian_contact": strings.TrimSpace(payload.GuardianContact),
	}

	enrollment, err := s.enrollments.UpdateEditable(ctx, identity.UserID, payload.RecordID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProfileResponse{}, ErrEnrollmentNotFound
		}
		return dto.ProfileResponse{}, err
	}

	if s.cache != nil {
		if err := s.cache.Del(ctx, profileCacheKey(identity.UserID)).Err(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to invalidate profile cache")
		}
	}

	if s.audit != nil {
		recordID := strconv.FormatUint(uint64(enrollment.ID), 10)
		if err := s.audit.Record(ctx, AuditEntry{
			Actor:      identity.LoginEmail,
			IP:         identity.ClientIP,
			Action:     "profile.updated",
			EntityType: "enrollment",
			EntityID:   &recordID,
			Result:     "success",
			Message:    "profile contact fields updated",
			Payload:    map[string]interface{}{"fields": []string{"address", "guardian_name", "guardian_contact"}},
		}); err != nil {
			s.logger.Warn().Err(err).Msg("failed to record profile audit entry")
		}
	}

	return s.Load(ctx, identity)
}

func profileCacheKey(userID uint) string {
	return fmt.Sprintf("profile:user:%d", userID)
}

// fullName joins the name parts with single spaces, skipping empty tokens.
// A middle name contributes only its initial followed by a period.
func fullName(first, middle, last, suffix string) string {
	parts := make([]string, 0, 4)

	if trimmed := strings.TrimSpace(first); trimmed != "" {
		parts = append(parts, trimmed)
	}
	if trimmed := strings.TrimSpace(middle); trimmed != "" {
		parts = append(parts, string([]rune(trimmed)[0])+".")
	}
	if trimmed := strings.TrimSpace(last); trimmed != "" {
		parts = append(parts, trimmed)
	}
	if trimmed := strings.TrimSpace(suffix); trimmed != "" {
		parts = append(parts, trimmed)
	}

	return strings.Join(parts, " ")
}
