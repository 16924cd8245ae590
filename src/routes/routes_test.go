package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Coaching-Management-Backend/src/controllers"
	"Coaching-Management-Backend/src/mocks"
	"Coaching-Management-Backend/src/models"
	"Coaching-Management-Backend/src/services/auth"
	"Coaching-Management-Backend/src/services/chapters"
	"Coaching-Management-Backend/src/services/courses"
	"Coaching-Management-Backend/src/services/students"
	"Coaching-Management-Backend/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type testEnv struct {
	app      *fiber.App
	jwt      *utils.JWTManager
	students *mocks.StudentStore
	courses  *mocks.CourseStore
	chapters *mocks.ChapterStore
	notifier *mocks.Notifier
}

func newTestEnv(t *testing.T) *testEnv {
	env := &testEnv{
		jwt:      utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour, "coaching-management"),
		students: &mocks.StudentStore{},
		courses:  &mocks.CourseStore{},
		chapters: &mocks.ChapterStore{},
		notifier: &mocks.Notifier{},
	}

	studentService := students.NewService(env.students, env.notifier, nil)
	sessions := utils.NewTokenStore(nil)

	env.app = fiber.New(fiber.Config{ErrorHandler: controllers.ErrorHandler})
	InitRoutes(env.app, Handlers{
		Auth:    controllers.NewAuthController(auth.NewService(studentService, env.jwt, sessions)),
		Student: controllers.NewStudentController(studentService),
		Course:  controllers.NewCourseController(courses.NewService(env.courses)),
		Chapter: controllers.NewChapterController(chapters.NewService(env.chapters)),
		Health:  controllers.NewHealthController("test", nil),
	}, Options{JWT: env.jwt, Blacklist: sessions, LoginLimit: 100, LoginWindow: time.Minute})

	t.Cleanup(func() {
		env.students.AssertExpectations(t)
		env.courses.AssertExpectations(t)
		env.chapters.AssertExpectations(t)
		env.notifier.AssertExpectations(t)
	})
	return env
}

func (e *testEnv) token(t *testing.T, role models.Role) string {
	t.Helper()
	tok, err := e.jwt.GenerateAccessToken(&models.Student{
		ID:    primitive.NewObjectID(),
		Email: string(role) + "@example.com",
		Role:  role,
	})
	require.NoError(t, err)
	return tok
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]interface{}{}
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func validRegistration() map[string]interface{} {
	return map[string]interface{}{
		"studentname":          "Asha Patil",
		"gender":               "female",
		"phoneNumber":          "9876543210",
		"address":              "Pune",
		"email":                "asha@example.com",
		"dateOfBirth":          "2001-02-03",
		"dateOfJoining":        "2024-01-01",
		"highestQualification": "hsc",
		"password":             "s3cret-pass",
		"studentId":            "STU00001",
	}
}

func TestRegisterWithoutEmailIsRejected(t *testing.T) {
	env := newTestEnv(t)
	body := validRegistration()
	delete(body, "email")

	status, out := env.do(t, http.MethodPost, "/student/register", env.token(t, models.RoleAdmin), body)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, out["success"])
	env.students.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestRegisterDuplicateIsConflict(t *testing.T) {
	env := newTestEnv(t)
	env.students.On("Insert", mock.Anything, mock.Anything).Return(utils.ErrDuplicate).Once()

	status, _ := env.do(t, http.MethodPost, "/student/register", env.token(t, models.RoleAdmin), validRegistration())
	assert.Equal(t, fiber.StatusConflict, status)
}

func TestRegisterCreatesStudent(t *testing.T) {
	env := newTestEnv(t)
	env.students.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()
	env.notifier.On("WelcomeStudent", mock.Anything, mock.Anything).Once()

	status, out := env.do(t, http.MethodPost, "/student/register", env.token(t, models.RoleAdmin), validRegistration())

	require.Equal(t, fiber.StatusCreated, status)
	data := out["data"].(map[string]interface{})
	assert.Equal(t, "admin@example.com", data["createdBy"])
	assert.NotContains(t, data, "password")
}

func TestRegisterRequiresStaff(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.do(t, http.MethodPost, "/student/register", "", validRegistration())
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = env.do(t, http.MethodPost, "/student/register", env.token(t, models.RoleStudent), validRegistration())
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestDeleteStudentRoles(t *testing.T) {
	env := newTestEnv(t)
	id := primitive.NewObjectID()

	status, _ := env.do(t, http.MethodDelete, "/student/"+id.Hex(), env.token(t, models.RoleStudent), nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = env.do(t, http.MethodDelete, "/student/"+id.Hex(), env.token(t, models.RoleAdmin), nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	env.students.On("UpdateFields", mock.Anything, id, mock.MatchedBy(func(set bson.M) bool {
		return set["recStatus"] == models.RecStatusInactive
	})).Return(&models.Student{ID: id, RecStatus: models.RecStatusInactive}, nil).Once()
	env.students.On("FindByID", mock.Anything, id).Return(&models.Student{ID: id, RecStatus: models.RecStatusInactive}, nil).Once()

	status, out := env.do(t, http.MethodDelete, "/student/"+id.Hex(), env.token(t, models.RoleSuperAdmin), nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "inactive", out["data"].(map[string]interface{})["recStatus"])

	status, out = env.do(t, http.MethodGet, "/student/"+id.Hex(), env.token(t, models.RoleAdmin), nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "inactive", out["data"].(map[string]interface{})["recStatus"])
}

func TestGetStudentErrors(t *testing.T) {
	env := newTestEnv(t)
	admin := env.token(t, models.RoleAdmin)

	status, _ := env.do(t, http.MethodGet, "/student/not-an-id", admin, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	missing := primitive.NewObjectID()
	env.students.On("FindByID", mock.Anything, missing).Return(nil, utils.ErrNotFound).Once()
	status, out := env.do(t, http.MethodGet, "/student/"+missing.Hex(), admin, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Student not found", out["message"])
}

func TestUpdateStudentWithoutRequiredFields(t *testing.T) {
	env := newTestEnv(t)
	status, _ := env.do(t, http.MethodPost, "/student/update", env.token(t, models.RoleAdmin), map[string]interface{}{
		"_id":     primitive.NewObjectID().Hex(),
		"address": "Mumbai",
	})

	assert.Equal(t, fiber.StatusBadRequest, status)
	env.students.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestListStudentsWithPaging(t *testing.T) {
	env := newTestEnv(t)
	env.students.On("Find", mock.Anything, models.StudentFilter{
		Role:          models.RoleStudent,
		ExcludeStatus: models.RecStatusInactive,
		Search:        "asha",
	}, mock.MatchedBy(func(p *models.PaginationParams) bool {
		return p != nil && p.Page == 2 && p.Limit == 5 && p.SortBy == "studentname" && p.Order == "asc"
	})).Return([]models.Student{{StudentName: "Asha"}}, int64(6), nil).Once()

	status, out := env.do(t, http.MethodGet, "/student/?search=asha&page=2&limit=5&sortBy=studentname&order=asc", env.token(t, models.RoleAdmin), nil)

	require.Equal(t, fiber.StatusOK, status)
	meta := out["meta"].(map[string]interface{})
	assert.EqualValues(t, 6, meta["total"])
	assert.EqualValues(t, 2, meta["totalPages"])
	assert.Equal(t, true, meta["hasPrevious"])
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	hash, err := utils.HashPassword("s3cret-pass")
	require.NoError(t, err)
	student := &models.Student{
		ID:        primitive.NewObjectID(),
		Email:     "asha@example.com",
		Password:  hash,
		Role:      models.RoleStudent,
		RecStatus: models.RecStatusActive,
	}

	status, _ := env.do(t, http.MethodPost, "/student/login", "", map[string]string{"email": "asha@example.com"})
	assert.Equal(t, fiber.StatusBadRequest, status)

	env.students.On("FindByEmail", mock.Anything, "asha@example.com").Return(student, nil).Twice()

	status, out := env.do(t, http.MethodPost, "/student/login", "", map[string]string{"email": "asha@example.com", "password": "wrong-pass"})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Invalid credentials", out["message"])

	status, out = env.do(t, http.MethodPost, "/student/login", "", map[string]string{"email": "asha@example.com", "password": "s3cret-pass"})
	require.Equal(t, fiber.StatusOK, status)
	data := out["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
	assert.NotEmpty(t, data["refreshToken"])
	assert.Equal(t, "asha@example.com", data["email"])
	assert.NotContains(t, data, "password")

	// the issued token opens the profile route
	env.students.On("FindByID", mock.Anything, student.ID).Return(student, nil).Once()
	status, _ = env.do(t, http.MethodGet, "/student/profile", data["token"].(string), nil)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestQualificationIsPublic(t *testing.T) {
	env := newTestEnv(t)
	status, out := env.do(t, http.MethodGet, "/student/qualification", "", nil)

	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, out["data"], 5)
}

func TestCourseRoutes(t *testing.T) {
	env := newTestEnv(t)
	student := env.token(t, models.RoleStudent)
	id := primitive.NewObjectID()

	env.courses.On("Find", mock.Anything, models.CourseFilter{}, (*models.PaginationParams)(nil)).
		Return([]models.Course{{ID: id, Title: "Physics"}}, int64(1), nil).Once()
	status, out := env.do(t, http.MethodGet, "/course/", student, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, out["data"], 1)
	assert.NotContains(t, out, "meta")

	status, _ = env.do(t, http.MethodPost, "/course/addcourse", student, map[string]string{"title": "x", "description": "y"})
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = env.do(t, http.MethodDelete, "/course/"+id.Hex(), student, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	env.courses.On("Delete", mock.Anything, id).Return(nil).Once()
	status, _ = env.do(t, http.MethodDelete, "/course/"+id.Hex(), env.token(t, models.RoleSuperAdmin), nil)
	assert.Equal(t, fiber.StatusOK, status)

	env.courses.On("FindByID", mock.Anything, id).Return(nil, utils.ErrNotFound).Once()
	status, _ = env.do(t, http.MethodGet, "/course/"+id.Hex(), student, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestChapterCreate(t *testing.T) {
	env := newTestEnv(t)
	env.chapters.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	status, out := env.do(t, http.MethodPost, "/chapter/addchapter", env.token(t, models.RoleAdmin), map[string]interface{}{
		"courseId":    primitive.NewObjectID().Hex(),
		"title":       "Kinematics",
		"description": "Motion",
		"concepts":    []string{"velocity"},
		"references":  []string{"HC Verma"},
	})
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "Kinematics", out["data"].(map[string]interface{})["title"])
}

func TestHealthAndNotFound(t *testing.T) {
	env := newTestEnv(t)

	status, out := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "OK", out["status"])
	assert.Equal(t, "test", out["environment"])

	status, out = env.do(t, http.MethodGet, "/nowhere", "", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "URL not found", out["message"])
	assert.Equal(t, "/nowhere", out["path"])
}
