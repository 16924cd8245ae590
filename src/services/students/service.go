package students

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"Coaching-Management-Backend/src/constants"
	"Coaching-Management-Backend/src/logger"
	"Coaching-Management-Backend/src/models"
	"Coaching-Management-Backend/src/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is the persistence the student service needs.
type Store interface {
	Insert(ctx context.Context, student *models.Student) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error)
	FindCredentialsByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error)
	FindByEmail(ctx context.Context, email string) (*models.Student, error)
	Find(ctx context.Context, filter models.StudentFilter, page *models.PaginationParams) ([]models.Student, int64, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Student, error)
	CountByStatus(ctx context.Context) (*models.StudentStats, error)
}

// Notifier sends best-effort emails. Implementations must not block the caller.
type Notifier interface {
	WelcomeStudent(ctx context.Context, s *models.Student)
	CourseEnrollment(ctx context.Context, s *models.Student, courseName string)
	PasswordChanged(ctx context.Context, s *models.Student)
}

type Service struct {
	store    Store
	notifier Notifier
	// legacy reads passwords stored by the reversible codec; nil disables legacy logins.
	legacy *utils.CredentialCodec
	now    func() time.Time
}

func NewService(store Store, notifier Notifier, legacy *utils.CredentialCodec) *Service {
	return &Service{store: store, notifier: notifier, legacy: legacy, now: time.Now}
}

// Register creates a student from a raw request body.
func (s *Service) Register(ctx context.Context, actor models.Actor, body map[string]interface{}) (*models.Student, error) {
	if err := utils.CheckFieldsExist(body, constants.RequiredFields.StudentRegistration); err != nil {
		return nil, err
	}
	password, ok := body["password"].(string)
	if !ok {
		return nil, &utils.ValidationError{Fields: []string{"password"}}
	}

	fields := utils.FilterObject(utils.ExtractFields(body, constants.ExpectedFields.Student))

	student := models.Student{
		Role:                 models.RoleStudent,
		RecStatus:            models.RecStatusActive,
		NotificationSettings: models.NotificationSettings{Email: true, Push: true},
	}
	if err := utils.DecodeFields(fields, &student); err != nil {
		return nil, err
	}
	normalize(&student)

	if student.Role != models.RoleStudent && !actor.IsSuperAdmin() {
		return nil, fmt.Errorf("%w: only a super admin can create %s accounts", utils.ErrForbidden, student.Role)
	}
	if err := utils.ValidateStruct(student); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	student.Password = hash
	student.CreatedBy = actor.Email
	student.CreatedDate = s.now()

	if err := s.store.Insert(ctx, &student); err != nil {
		return nil, err
	}
	student.Password = ""

	logger.Info().Str("studentId", student.StudentID).Str("createdBy", actor.Email).Msg("student registered")

	if student.NotificationSettings.Email {
		s.notifier.WelcomeStudent(ctx, &student)
		if student.SelectCourse != "" {
			s.notifier.CourseEnrollment(ctx, &student, student.SelectCourse)
		}
	}
	return &student, nil
}

// List returns students with role student that are not inactive.
func (s *Service) List(ctx context.Context, search string, page *models.PaginationParams) ([]models.Student, int64, error) {
	filter := models.StudentFilter{
		Role:          models.RoleStudent,
		ExcludeStatus: models.RecStatusInactive,
		Search:        search,
	}
	return s.store.Find(ctx, filter, page)
}

func (s *Service) Get(ctx context.Context, id string) (*models.Student, error) {
	oid, err := utils.ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	return s.store.FindByID(ctx, oid)
}

// Update applies the allow-listed fields of body to the student named by body["_id"].
func (s *Service) Update(ctx context.Context, actor models.Actor, body map[string]interface{}) (*models.Student, error) {
	if err := utils.CheckFieldsExist(body, constants.RequiredFields.StudentUpdate); err != nil {
		return nil, err
	}
	id, err := utils.IDFromBody(body)
	if err != nil {
		return nil, err
	}

	fields := utils.FilterObject(utils.ExtractFields(body, constants.ExpectedFields.Student))

	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := *existing
	if err := utils.DecodeFields(fields, &merged); err != nil {
		return nil, err
	}
	normalize(&merged)

	if merged.Role != existing.Role && !actor.IsSuperAdmin() {
		return nil, fmt.Errorf("%w: only a super admin can change roles", utils.ErrForbidden)
	}
	if err := utils.ValidateStruct(merged); err != nil {
		return nil, err
	}

	set, err := utils.UpdateSet(merged, fields)
	if err != nil {
		return nil, err
	}
	set["updatedBy"] = actor.Email
	set["updatedDate"] = s.now()

	updated, err := s.store.UpdateFields(ctx, id, set)
	if err != nil {
		return nil, err
	}

	if updated.SelectCourse != "" && updated.SelectCourse != existing.SelectCourse && updated.NotificationSettings.Email {
		s.notifier.CourseEnrollment(ctx, updated, updated.SelectCourse)
	}
	return updated, nil
}

// Delete marks the student inactive. The record stays retrievable by id.
func (s *Service) Delete(ctx context.Context, actor models.Actor, id string) (*models.Student, error) {
	oid, err := utils.ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	return s.store.UpdateFields(ctx, oid, bson.M{
		"recStatus":   models.RecStatusInactive,
		"updatedBy":   actor.Email,
		"updatedDate": s.now(),
	})
}

// Authenticate checks an email and password pair. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.Student, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password", utils.ErrMissingFields)
	}

	student, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.verifyPassword(ctx, student, password) {
		return nil, utils.ErrInvalidCredentials
	}
	if student.RecStatus == models.RecStatusInactive {
		return nil, utils.ErrInactiveAccount
	}

	student.Password = ""
	return student, nil
}

// verifyPassword accepts bcrypt hashes and, when a legacy key is configured,
// codec ciphertexts. A matching legacy password is rehashed with bcrypt.
func (s *Service) verifyPassword(ctx context.Context, student *models.Student, password string) bool {
	if utils.IsBcryptHash(student.Password) {
		return utils.CheckPassword(student.Password, password)
	}
	if s.legacy == nil || !utils.IsLegacyCiphertext(student.Password) {
		return false
	}
	if !s.legacy.Matches(password, student.Password) {
		return false
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		// too short for the current policy; the login still succeeds
		logger.Warn().Str("studentId", student.StudentID).Msg("legacy password not upgraded")
		return true
	}
	if _, err := s.store.UpdateFields(ctx, student.ID, bson.M{"password": hash}); err != nil {
		logger.Warn().Err(err).Str("studentId", student.StudentID).Msg("legacy password upgrade failed")
	}
	return true
}

// Profile returns the account behind an access token.
func (s *Service) Profile(ctx context.Context, userID string) (*models.Student, error) {
	return s.Get(ctx, userID)
}

// UpdateNotificationSettings changes only the flags that are set.
func (s *Service) UpdateNotificationSettings(ctx context.Context, actor models.Actor, in models.NotificationSettingsInput) (*models.Student, error) {
	id, err := utils.ParseObjectID(actor.ID)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if in.Email != nil {
		set["notificationSettings.email"] = *in.Email
	}
	if in.Push != nil {
		set["notificationSettings.push"] = *in.Push
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("%w: email or push", utils.ErrMissingFields)
	}
	set["updatedBy"] = actor.Email
	set["updatedDate"] = s.now()

	return s.store.UpdateFields(ctx, id, set)
}

func (s *Service) ChangePassword(ctx context.Context, actor models.Actor, req models.ChangePasswordRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return fmt.Errorf("%w: currentPassword and newPassword", utils.ErrMissingFields)
	}
	id, err := utils.ParseObjectID(actor.ID)
	if err != nil {
		return err
	}

	student, err := s.store.FindCredentialsByID(ctx, id)
	if err != nil {
		return err
	}

	current := student.Password
	if !utils.IsBcryptHash(current) {
		if s.legacy == nil || !s.legacy.Matches(req.CurrentPassword, current) {
			return utils.ErrPasswordMismatch
		}
	} else if !utils.CheckPassword(current, req.CurrentPassword) {
		return utils.ErrPasswordMismatch
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if _, err := s.store.UpdateFields(ctx, id, bson.M{
		"password":    hash,
		"updatedBy":   actor.Email,
		"updatedDate": s.now(),
	}); err != nil {
		return err
	}

	if student.NotificationSettings.Email {
		student.Password = ""
		s.notifier.PasswordChanged(ctx, student)
	}
	return nil
}

func (s *Service) Stats(ctx context.Context) (*models.StudentStats, error) {
	return s.store.CountByStatus(ctx)
}

func (s *Service) Qualifications() []models.QualificationOption {
	return models.Qualifications()
}

func normalize(student *models.Student) {
	student.Email = strings.ToLower(strings.TrimSpace(student.Email))
	student.StudentName = strings.TrimSpace(student.StudentName)
	student.StudentID = strings.TrimSpace(student.StudentID)
	student.PhoneNumber = strings.TrimSpace(student.PhoneNumber)
	student.PanCard = strings.ToUpper(strings.TrimSpace(student.PanCard))
}
