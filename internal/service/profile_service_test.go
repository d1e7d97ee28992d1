package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/enrollment-portal-api/internal/dto"
	"github.com/noah-isme/enrollment-portal-api/internal/models"
)

type memoryEnrollmentRepo struct {
	enrollment  models.Enrollment
	missing     bool
	latestCalls int
	updateCalls int
	lastUpdates map[string]interface{}
}

func (m *memoryEnrollmentRepo) LatestActive(_ context.Context, _ uint) (models.Enrollment, error) {
	m.latestCalls++
	if m.missing {
		return models.Enrollment{}, gorm.ErrRecordNotFound
	}
	return m.enrollment, nil
}

func (m *memoryEnrollmentRepo) UpdateEditable(_ context.Context, userID, id uint, updates map[string]interface{}) (models.Enrollment, error) {
	m.updateCalls++
	m.lastUpdates = updates
	if m.missing || id != m.enrollment.ID || userID != m.enrollment.UserID {
		return models.Enrollment{}, gorm.ErrRecordNotFound
	}
	if v, ok := updates["address"].(string); ok {
		m.enrollment.Address = v
	}
	if v, ok := updates["guardian_name"].(string); ok {
		m.enrollment.GuardianName = v
	}
	if v, ok := updates["guardian_contact"].(string); ok {
		m.enrollment.GuardianContact = v
	}
	return m.enrollment, nil
}

type memoryLookupRepo struct {
	grades  map[uint]string
	tracks  map[uint]string
	strands map[uint]string
	calls   int
}

func (m *memoryLookupRepo) GradeLevelCode(_ context.Context, id uint) (string, error) {
	m.calls++
	if code, ok := m.grades[id]; ok {
		return code, nil
	}
	return "", gorm.ErrRecordNotFound
}

func (m *memoryLookupRepo) TrackCode(_ context.Context, id uint) (string, error) {
	m.calls++
	if code, ok := m.tracks[id]; ok {
		return code, nil
	}
	return "", gorm.ErrRecordNotFound
}

func (m *memoryLookupRepo) StrandCode(_ context.Context, id uint) (string, error) {
	m.calls++
	if code, ok := m.strands[id]; ok {
		return code, nil
	}
	return "", gorm.ErrRecordNotFound
}

type stubAuditRecorder struct {
	entries []AuditEntry
}

func (s *stubAuditRecorder) Record(_ context.Context, entry AuditEntry) error {
	s.entries = append(s.entries, entry)
	return nil
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func testValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func newProfileServiceForTest(enrollments *memoryEnrollmentRepo, lookups *memoryLookupRepo, cache *redis.Client, audit AuditRecorder) ProfileService {
	return NewProfileService(enrollments, lookups, testValidator(), cache, time.Minute, audit, testLogger())
}

func TestFullNameAssembly(t *testing.T) {
	require.Equal(t, "Jane Q. Doe", fullName("Jane", "Q", "Doe", ""))
	require.Equal(t, "Jane Q. Doe Jr", fullName("Jane", "Quinn", "Doe", "Jr"))
	require.Equal(t, "Jane Doe", fullName(" Jane ", "  ", "Doe", ""))
	require.Equal(t, "", fullName("", "", "", ""))
}

func TestProfileServiceLoadSkipsNilLookups(t *testing.T) {
	enrollments := &memoryEnrollmentRepo{enrollment: models.Enrollment{
		ID:            7,
		UserID:        3,
		StudentNumber: "2026-0001",
		FirstName:     "Jane",
		MiddleName:    "Q",
		LastName:      "Doe",
		Email:         "jane@school.test",
	}}
	lookups := &memoryLookupRepo{}
	svc := newProfileServiceForTest(enrollments, lookups, nil, nil)

	response, err := svc.Load(context.Background(), ProfileIdentity{UserID: 3})
	require.NoError(t, err)
	require.Equal(t, dto.Placeholder, response.GradeLevel)
	require.Equal(t, dto.Placeholder, response.Track)
	require.Equal(t, dto.Placeholder, response.Strand)
	require.Zero(t, lookups.calls, "nil foreign keys must not trigger lookup queries")
	require.Equal(t, "Jane Q. Doe", response.FullName)
	require.Equal(t, uint(7), response.RecordID)
}

func TestProfileServiceLoadResolvesLookups(t *testing.T) {
	gradeID, trackID, strandID := uint(1), uint(2), uint(3)
	enrollments := &memoryEnrollmentRepo{enrollment: models.Enrollment{
		ID:           7,
		UserID:       3,
		FirstName:    "Jane",
		LastName:     "Doe",
		GradeLevelID: &gradeID,
		TrackID:      &trackID,
		StrandID:     &strandID,
	}}
	lookups := &memoryLookupRepo{
		grades:  map[uint]string{1: "Grade 11"},
		tracks:  map[uint]string{2: "Academic"},
		strands: map[uint]string{3: "STEM"},
	}
	svc := newProfileServiceForTest(enrollments, lookups, nil, nil)

	response, err := svc.Load(context.Background(), ProfileIdentity{UserID: 3})
	require.NoError(t, err)
	require.Equal(t, "Grade 11", response.GradeLevel)
	require.Equal(t, "Academic", response.Track)
	require.Equal(t, "STEM", response.Strand)
	require.Equal(t, 3, lookups.calls)
}

func TestProfileServiceLoadMissingLookupRowFallsBack(t *testing.T) {
	gradeID := uint(99)
	enrollments := &memoryEnrollmentRepo{enrollment: models.Enrollment{
		ID:           7,
		UserID:       3,
		FirstName:    "Jane",
		LastName:     "Doe",
		GradeLevelID: &gradeID,
	}}
	lookups := &memoryLookupRepo{grades: map[uint]string{}}
	svc := newProfileServiceForTest(enrollments, lookups, nil, nil)

	response, err := svc.Load(context.Background(), ProfileIdentity{UserID: 3})
	require.NoError(t, err)
	require.Equal(t, dto.Placeholder, response.GradeLevel)
}

func TestProfileServiceLoadNotFound(t *testing.T) {
	enrollments := &memoryEnrollmentRepo{missing: true}
	svc := newProfileServiceForTest(enrollments, &memoryLookupRepo{}, nil, nil)

	_, err := svc.Load(context.Background(), ProfileIdentity{UserID: 3})
	require.ErrorIs(t, err, ErrEnrollmentNotFound)
}

func TestProfileServiceLoadEmailFallback(t *testing.T) {
	enrollments := &memoryEnrollmentRepo{enrollment: models.Enrollment{
		ID: 7, UserID: 3, FirstName: "Jane", LastName: "Doe",
	}}
	svc := newProfileServiceForTest(enrollments, &memoryLookupRepo{}, nil, nil)

	response, err := svc.Load(context.Background(), ProfileIdentity{UserID: 3, LoginEmail: "login@school.test"})
	require.NoError(t, err)
	require.Equal(t, "login@school.test", response.Email)
}

func TestProfileServiceSaveRequiresLoadedRecord(t *testing.T) {
	enrollments := &memoryEnrollmentRepo{}
	svc := newProfileServiceForTest(enrollments, &memoryLookupRepo{}, nil, nil)

	_, err := svc.Save(context.Background(), ProfileIdentity{UserID: 3}, dto.ProfileUpdateRequest{
		Address: "1 Main St",
	})
	require.ErrorIs(t, err, ErrNoLoadedRecord)
	require.Zero(t, enrollments.updateCalls, "precondition failures must not issue updates")
}

func TestProfileServiceSavePersistsEditableFieldsOnly(t *testing.T) {
	enrollments := &memoryEnrollmentRepo{enrollment: models.Enrollment{
		ID: 7, UserID: 3, FirstName: "Jane", LastName: "Doe", StudentNumber: "2026-0001",
	}}
	audit := &stubAuditRecorder{}
	svc := newProfileServiceForTest(enrollments, &memoryLookupRepo{}, nil, audit)

	response, err := svc.Save(context.Background(), ProfileIdentity{UserID: 3, LoginEmail: "jane@school.test", ClientIP: "10.0.0.9"}, dto.ProfileUpdateRequest{
		RecordID:        7,
		Address:         " 1 Main St ",
		GuardianName:    "John Doe",
		GuardianContact: "555-0100",
	})
	require.NoError(t, err)
	require.Equal(t, 1, enrollments.updateCalls)
	require.Len(t, enrollments.lastUpdates, 3)
	require.Equal(t, "1 Main St", enrollments.lastUpdates["address"])
	require.NotContains(t, enrollments.lastUpdates, "first_name")
	require.NotContains(t, enrollments.lastUpdates, "student_number")
	require.Equal(t, "1 Main St", response.Address)

	require.Len(t, audit.entries, 1)
	require.Equal(t, "profile.updated", audit.entries[0].Action)
	require.Equal(t, "enrollment", audit.entries[0].EntityType)
}

func TestProfileServiceSaveRejectsForeignRecord(t *testing.T) {
	enrollments := &memoryEnrollmentRepo{enrollment: models.Enrollment{
		ID: 7, UserID: 10, FirstName: "Jane", LastName: "Doe", Address: "victim address",
	}}
	audit := &stubAuditRecorder{}
	svc := newProfileServiceForTest(enrollments, &memoryLookupRepo{}, nil, audit)

	_, err := svc.Save(context.Background(), ProfileIdentity{UserID: 99}, dto.ProfileUpdateRequest{
		RecordID: 7,
		Address:  "attacker-controlled address",
	})
	require.ErrorIs(t, err, ErrEnrollmentNotFound)
	require.Equal(t, "victim address", enrollments.enrollment.Address, "record of another user must be untouched")
	require.Empty(t, audit.entries, "rejected saves must not record success entries")
}

func TestProfileServiceSaveMissingRecord(t *testing.T) {
	enrollments := &memoryEnrollmentRepo{enrollment: models.Enrollment{ID: 7}}
	svc := newProfileServiceForTest(enrollments, &memoryLookupRepo{}, nil, nil)

	_, err := svc.Save(context.Background(), ProfileIdentity{UserID: 3}, dto.ProfileUpdateRequest{RecordID: 99})
	require.ErrorIs(t, err, ErrEnrollmentNotFound)
}

func TestProfileServiceCacheRoundTrip(t *testing.T) {
	server := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = cache.Close() })

	enrollments := &memoryEnrollmentRepo{enrollment: models.Enrollment{
		ID: 7, UserID: 3, FirstName: "Jane", LastName: "Doe",
	}}
	svc := newProfileServiceForTest(enrollments, &memoryLookupRepo{}, cache, &stubAuditRecorder{})
	identity := ProfileIdentity{UserID: 3, LoginEmail: "jane@school.test"}

	_, err := svc.Load(context.Background(), identity)
	require.NoError(t, err)
	_, err = svc.Load(context.Background(), identity)
	require.NoError(t, err)
	require.Equal(t, 1, enrollments.latestCalls, "second load should be served from cache")

	_, err = svc.Save(context.Background(), identity, dto.ProfileUpdateRequest{RecordID: 7, Address: "2 Oak St"})
	require.NoError(t, err)

	response, err := svc.Load(context.Background(), identity)
	require.NoError(t, err)
	require.Equal(t, "2 Oak St", response.Address)
}
