package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"resume-screener/internal/models"
)

type fakeJobRepo struct {
	created    []*models.Job
	failCreate bool
	pingErr    error
}

func (f *fakeJobRepo) Create(job *models.Job) error {
	if f.failCreate {
		return errors.New("database unavailable")
	}
	f.created = append(f.created, job)
	return nil
}

func (f *fakeJobRepo) Ping(context.Context) error { return f.pingErr }

type fakeCandidateRepo struct {
	created    []*models.Candidate
	failCreate bool
}

func (f *fakeCandidateRepo) Create(candidate *models.Candidate) error {
	if f.failCreate {
		return errors.New("database unavailable")
	}
	f.created = append(f.created, candidate)
	return nil
}

type fakeAnalysisRepo struct {
	created []*models.AnalysisRecord
}

func (f *fakeAnalysisRepo) Create(record *models.AnalysisRecord) error {
	f.created = append(f.created, record)
	return nil
}

// fakeExtractor returns canned text per filename, or the configured error.
type fakeExtractor struct {
	failures map[string]error
}

func (f *fakeExtractor) Extract(_ []byte, filename string) (string, error) {
	if err, ok := f.failures[filename]; ok {
		return "", err
	}
	return "extracted resume text for " + filename, nil
}

// fakeAnalyzer scores candidates by display name.
type fakeAnalyzer struct {
	scores map[string]int
}

func (f *fakeAnalyzer) Analyze(_ context.Context, _, _, candidateName string) models.AnalysisPayload {
	return models.AnalysisPayload{
		CandidateName:  candidateName,
		MatchScore:     f.scores[candidateName],
		Recommendation: "review",
		Summary:        "Analysis completed",
		MatchingSkills: []string{},
		MissingSkills:  []string{},
		Strengths:      []string{},
		Weaknesses:     []string{},
	}
}

type analyzeFixture struct {
	app           *fiber.App
	jobRepo       *fakeJobRepo
	candidateRepo *fakeCandidateRepo
	analysisRepo  *fakeAnalysisRepo
}

func newAnalyzeFixture(extractor *fakeExtractor, analyzer *fakeAnalyzer) *analyzeFixture {
	jobRepo := &fakeJobRepo{}
	candidateRepo := &fakeCandidateRepo{}
	analysisRepo := &fakeAnalysisRepo{}

	handler := NewAnalyzeHandler(jobRepo, candidateRepo, analysisRepo, extractor, analyzer, zap.NewNop())

	app := fiber.New()
	app.Post("/analyze-resumes", handler.HandleAnalyzeResumes)

	return &analyzeFixture{
		app:           app,
		jobRepo:       jobRepo,
		candidateRepo: candidateRepo,
		analysisRepo:  analysisRepo,
	}
}

type formFile struct {
	name    string
	content string
}

func multipartRequest(t *testing.T, fields map[string]string, files []formFile) *http.Request {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	for _, file := range files {
		part, err := writer.CreateFormFile("resumes", file.name)
		require.NoError(t, err)
		_, err = part.Write([]byte(file.content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze-resumes", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeAnalyzeResponse(t *testing.T, resp *http.Response) models.AnalyzeResponse {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out models.AnalyzeResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestAnalyzeResumesMissingJobDescription(t *testing.T) {
	fixture := newAnalyzeFixture(&fakeExtractor{}, &fakeAnalyzer{})

	req := multipartRequest(t,
		map[string]string{"jobTitle": "Backend Engineer"},
		[]formFile{{name: "alice.txt", content: "resume"}},
	)

	resp, err := fixture.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, fixture.jobRepo.created, "no job record may be created for rejected requests")
}

func TestAnalyzeResumesNoFiles(t *testing.T) {
	fixture := newAnalyzeFixture(&fakeExtractor{}, &fakeAnalyzer{})

	req := multipartRequest(t, map[string]string{
		"jobTitle":       "Backend Engineer",
		"jobDescription": "Build services",
	}, nil)

	resp, err := fixture.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, fixture.jobRepo.created)
}

func TestAnalyzeResumesJobCreationFailureIsFatal(t *testing.T) {
	fixture := newAnalyzeFixture(&fakeExtractor{}, &fakeAnalyzer{})
	fixture.jobRepo.failCreate = true

	req := multipartRequest(t, map[string]string{
		"jobTitle":       "Backend Engineer",
		"jobDescription": "Build services",
	}, []formFile{{name: "alice.txt", content: "resume"}})

	resp, err := fixture.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestAnalyzeResumesBatchSortedByScore(t *testing.T) {
	analyzer := &fakeAnalyzer{scores: map[string]int{
		"Alice Smith": 90,
		"Bob Jones":   40,
	}}
	fixture := newAnalyzeFixture(&fakeExtractor{}, analyzer)

	req := multipartRequest(t, map[string]string{
		"jobTitle":       "Backend Engineer",
		"jobDescription": "Build services",
	}, []formFile{
		{name: "bob-jones.txt", content: "resume b"},
		{name: "alice_smith.pdf", content: "resume a"},
		{name: "malware.exe", content: "nope"},
	})

	resp, err := fixture.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decodeAnalyzeResponse(t, resp)
	// The .exe file is silently dropped and results come back highest first.
	require.Len(t, out.Results, 2)
	assert.Equal(t, 2, out.TotalCandidates)
	assert.Equal(t, "Alice Smith", out.Results[0].CandidateName)
	assert.Equal(t, 90, out.Results[0].MatchScore)
	assert.Equal(t, "Bob Jones", out.Results[1].CandidateName)
	assert.Equal(t, 40, out.Results[1].MatchScore)

	require.Len(t, fixture.jobRepo.created, 1)
	assert.Len(t, fixture.candidateRepo.created, 2)
	assert.Len(t, fixture.analysisRepo.created, 2)
	assert.NotEmpty(t, out.JobID)
	assert.Equal(t, "Backend Engineer", out.JobTitle)
}

func TestAnalyzeResumesExtractionFailureDegradesToEntry(t *testing.T) {
	analyzer := &fakeAnalyzer{scores: map[string]int{"Good": 75}}
	extractor := &fakeExtractor{failures: map[string]error{
		"bad.pdf": errors.New("no text could be extracted, PDF may be image-based"),
	}}
	fixture := newAnalyzeFixture(extractor, analyzer)

	req := multipartRequest(t, map[string]string{
		"jobTitle":       "Backend Engineer",
		"jobDescription": "Build services",
	}, []formFile{
		{name: "good.pdf", content: "resume"},
		{name: "bad.pdf", content: "scanned image"},
	})

	resp, err := fixture.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decodeAnalyzeResponse(t, resp)
	require.Len(t, out.Results, 2)

	assert.Equal(t, "Good", out.Results[0].CandidateName)
	assert.Equal(t, 75, out.Results[0].MatchScore)

	assert.Equal(t, "Bad", out.Results[1].CandidateName)
	assert.Equal(t, 0, out.Results[1].MatchScore)
	assert.Contains(t, out.Results[1].Error, "no text could be extracted")

	// Only the good file produced candidate and analysis rows.
	assert.Len(t, fixture.candidateRepo.created, 1)
	assert.Len(t, fixture.analysisRepo.created, 1)
}

func TestAnalyzeResumesCandidatePersistFailureStillReturnsAnalysis(t *testing.T) {
	analyzer := &fakeAnalyzer{scores: map[string]int{"Alice": 80}}
	fixture := newAnalyzeFixture(&fakeExtractor{}, analyzer)
	fixture.candidateRepo.failCreate = true

	req := multipartRequest(t, map[string]string{
		"jobTitle":       "Backend Engineer",
		"jobDescription": "Build services",
	}, []formFile{{name: "alice.txt", content: "resume"}})

	resp, err := fixture.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decodeAnalyzeResponse(t, resp)
	require.Len(t, out.Results, 1)
	assert.Equal(t, 80, out.Results[0].MatchScore)

	// Without a candidate id the analysis row cannot be written.
	assert.Empty(t, fixture.analysisRepo.created)
}

func TestDisplayNameFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{filename: "john_doe.pdf", want: "John Doe"},
		{filename: "jane-smith-resume.txt", want: "Jane Smith Resume"},
		{filename: "SIMPLE.PDF", want: "Simple"},
		{filename: "already Nice Name.pdf", want: "Already Nice Name"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, displayNameFromFilename(tt.filename))
		})
	}
}

func TestCapRunes(t *testing.T) {
	assert.Equal(t, "abc", capRunes("abc", 10))
	assert.Equal(t, "abc", capRunes("abcdef", 3))
	assert.Equal(t, fmt.Sprintf("%c%c", 'é', 'é'), capRunes("ééé", 2))
}
