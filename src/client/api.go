package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"Coaching-Management-Backend/src/models"
)

// ListOptions are the optional query parameters of the list endpoints.
// A zero Page and Limit asks for the whole collection.
type ListOptions struct {
	Search string
	Page   int
	Limit  int
	SortBy string
	Order  string
}

func (o ListOptions) encode(q url.Values) string {
	if q == nil {
		q = url.Values{}
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.SortBy != "" {
		q.Set("sortBy", o.SortBy)
	}
	if o.Order != "" {
		q.Set("order", o.Order)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// NewChapter is the body of AddChapter.
type NewChapter struct {
	CourseID    string   `json:"courseId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Concepts    []string `json:"concepts"`
	References  []string `json:"references"`
}

// Login stores the issued token pair and returns the profile.
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if _, err := c.call(ctx, http.MethodPost, "/student/login",
		models.LoginRequest{Email: email, Password: password}, &resp, false); err != nil {
		return nil, err
	}
	if err := c.storage.Save(Tokens{AccessToken: resp.Token, RefreshToken: resp.RefreshToken}); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout revokes the session on the server and always clears local storage.
func (c *Client) Logout(ctx context.Context) error {
	err := c.Do(ctx, http.MethodPost, "/student/logout", nil, nil)
	if clearErr := c.storage.Clear(); err == nil {
		err = clearErr
	}
	return err
}

func (c *Client) Profile(ctx context.Context) (*models.Student, error) {
	var student models.Student
	if err := c.Do(ctx, http.MethodGet, "/student/profile", nil, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

func (c *Client) ListStudents(ctx context.Context, opts ListOptions) ([]models.Student, *models.PaginationMeta, error) {
	var list []models.Student
	meta, err := c.call(ctx, http.MethodGet, "/student/"+opts.encode(nil), nil, &list, true)
	return list, meta, err
}

func (c *Client) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	var student models.Student
	if err := c.Do(ctx, http.MethodGet, "/student/"+url.PathEscape(id), nil, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// RegisterStudent sends body as is; it must carry the password.
func (c *Client) RegisterStudent(ctx context.Context, body map[string]interface{}) (*models.Student, error) {
	var student models.Student
	if err := c.Do(ctx, http.MethodPost, "/student/register", body, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// DeleteStudent deactivates the student and returns the updated record.
func (c *Client) DeleteStudent(ctx context.Context, id string) (*models.Student, error) {
	var student models.Student
	if err := c.Do(ctx, http.MethodDelete, "/student/"+url.PathEscape(id), nil, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

func (c *Client) ListCourses(ctx context.Context, opts ListOptions) ([]models.Course, *models.PaginationMeta, error) {
	var list []models.Course
	meta, err := c.call(ctx, http.MethodGet, "/course/"+opts.encode(nil), nil, &list, true)
	return list, meta, err
}

func (c *Client) AddCourse(ctx context.Context, title, description string) (*models.Course, error) {
	var course models.Course
	body := map[string]string{"title": title, "description": description}
	if err := c.Do(ctx, http.MethodPost, "/course/addcourse", body, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (c *Client) DeleteCourse(ctx context.Context, id string) error {
	return c.Do(ctx, http.MethodDelete, "/course/"+url.PathEscape(id), nil, nil)
}

// ListChapters lists one course's chapters, or every chapter when courseID is empty.
func (c *Client) ListChapters(ctx context.Context, courseID string, opts ListOptions) ([]models.Chapter, *models.PaginationMeta, error) {
	q := url.Values{}
	if courseID != "" {
		q.Set("courseId", courseID)
	}
	var list []models.Chapter
	meta, err := c.call(ctx, http.MethodGet, "/chapter/"+opts.encode(q), nil, &list, true)
	return list, meta, err
}

func (c *Client) AddChapter(ctx context.Context, chapter NewChapter) (*models.Chapter, error) {
	var created models.Chapter
	if err := c.Do(ctx, http.MethodPost, "/chapter/addchapter", chapter, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
