package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/learnsphere/learnsphere-api/internal/domain/entity"
	repo "github.com/learnsphere/learnsphere-api/internal/domain/repository"
	"github.com/learnsphere/learnsphere-api/pkg/helpers"
)

var ErrCourseNotFound = errors.New("course not found")

// CourseService handles course CRUD, image upload to GCS and search
// indexing in Elasticsearch. Indexing is best-effort: a failed index call is
// logged but does not fail the write that triggered it.
type CourseService struct {
	Courses        repo.CourseRepository
	GCS            *storage.Client
	GCSBucket      string
	ES             *elasticsearch.Client
	ESCoursesIndex string
	Logger         *logrus.Logger
}

func NewCourseService(courses repo.CourseRepository, gcs *storage.Client, gcsBucket string, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *CourseService {
	return &CourseService{
		Courses:        courses,
		GCS:            gcs,
		GCSBucket:      gcsBucket,
		ES:             es,
		ESCoursesIndex: esIndex,
		Logger:         logger,
	}
}

type CreateCourseInput struct {
	Title       string
	Description string
	VideoURL    string
	Price       float64
}

// Create persists the course, optionally uploading an image supplied as a
// multipart file.
func (s *CourseService) Create(ctx context.Context, in CreateCourseInput, image io.Reader, filename, contentType string) (*entity.Course, error) {
	c := &entity.Course{
		Title:       in.Title,
		Description: in.Description,
		VideoURL:    in.VideoURL,
		Price:       in.Price,
	}
	if image != nil {
		url, err := s.uploadImage(ctx, image, filename, contentType)
		if err != nil {
			return nil, err
		}
		c.ImageURL = url
	}
	if err := s.Courses.Create(ctx, c); err != nil {
		return nil, err
	}
	s.indexCourse(ctx, c)
	return c, nil
}

func (s *CourseService) Get(ctx context.Context, id string) (*entity.Course, error) {
	c, err := s.Courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *CourseService) List(ctx context.Context) ([]*entity.Course, error) {
	return s.Courses.List(ctx)
}

func (s *CourseService) Delete(ctx context.Context, id string) error {
	if err := s.Courses.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrCourseNotFound
		}
		return err
	}
	s.deleteFromIndex(ctx, id)
	return nil
}

// Search runs a multi_match query over title and description.
func (s *CourseService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESCoursesIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESCoursesIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func (s *CourseService) uploadImage(ctx context.Context, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("object storage not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("courses", uuid.NewString()+ext))
	return helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
}

func (s *CourseService) indexCourse(ctx context.Context, c *entity.Course) {
	if s.ES == nil || s.ESCoursesIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          c.ID,
		"title":       c.Title,
		"description": c.Description,
		"price":       c.Price,
		"image_url":   c.ImageURL,
		"created_at":  c.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESCoursesIndex, DocumentID: c.ID, Body: strings.NewReader(string(b)), Refresh: "false"}

	cx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(cx, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("course_id", c.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("course_id", c.ID).Warn("es index response error")
	}
}

func (s *CourseService) deleteFromIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESCoursesIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESCoursesIndex, DocumentID: id}

	cx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(cx, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("course_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}
