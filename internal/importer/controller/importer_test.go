package controller

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	e "github.com/gartstein/registrar/internal/importer/errors"
	"github.com/gartstein/registrar/internal/importer/events"
	"github.com/gartstein/registrar/internal/importer/models"
	"github.com/gartstein/registrar/internal/importer/reader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// fakeRepo records created rows in order and can fail the n-th entity
// create (1-indexed).
type fakeRepo struct {
	entities    []models.Entity
	activities  []*models.Activity
	failAtWrite int
}

func (r *fakeRepo) CreateEntity(_ context.Context, entity models.Entity) error {
	if r.failAtWrite > 0 && len(r.entities)+1 == r.failAtWrite {
		return errors.New("datastore write failed")
	}
	r.entities = append(r.entities, entity)
	return nil
}

func (r *fakeRepo) CreateActivity(_ context.Context, activity *models.Activity) error {
	r.activities = append(r.activities, activity)
	return nil
}

type fakeProducer struct {
	events []events.Event
}

func (p *fakeProducer) Produce(event events.Event) {
	p.events = append(p.events, event)
}

func (p *fakeProducer) byType(t events.EventType) []events.Event {
	var out []events.Event
	for _, ev := range p.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

var directorMapping = map[string]string{
	"firstName":       "First Name",
	"lastName":        "Last Name",
	"dateOfBirth":     "DOB",
	"nationality":     "Nationality",
	"appointmentDate": "Appointed",
	"occupation":      "Occupation",
}

func writeImportFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upload.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func directorCSV(rows ...string) string {
	content := "First Name,Last Name,DOB,Nationality,Appointed,Occupation\n"
	for _, r := range rows {
		content += r + "\n"
	}
	return content
}

func newService(t *testing.T, repo *fakeRepo, producer *fakeProducer, batchSize int) *ImportService {
	t.Helper()
	logger := zaptest.NewLogger(t)
	return NewImportService(reader.New(logger), repo, producer, logger, batchSize)
}

func directorJob(path string) models.ImportJob {
	return models.ImportJob{
		ID:         "job-1",
		FilePath:   path,
		FileName:   "upload.csv",
		MimeType:   "text/csv",
		Mapping:    directorMapping,
		CompanyID:  "company-1",
		EntityType: models.DirectorEntity,
	}
}

// Three rows where the second has an impossible appointment date: the
// bad row is skipped, the other two are persisted with paired audit
// entries, progress ends at 100 and the job succeeds.
func TestProcessJob_SkipsInvalidRecord(t *testing.T) {
	path := writeImportFile(t, directorCSV(
		"Jane,Doe,14/02/1985,Irish,01/06/2015,Engineer",
		"Bob,Broken,14/02/1985,Irish,31/02/2024,Engineer",
		"John,Smith,01/01/1970,British,15/03/2005,Accountant",
	))
	repo := &fakeRepo{}
	producer := &fakeProducer{}

	err := newService(t, repo, producer, 0).ProcessJob(context.Background(), directorJob(path))
	require.NoError(t, err)

	require.Len(t, repo.entities, 2)
	require.Len(t, repo.activities, 2)
	assert.Equal(t, "Doe", repo.entities[0].(*models.Director).LastName)
	assert.Equal(t, "Smith", repo.entities[1].(*models.Director).LastName)

	progress := producer.byType(events.ImportProgress)
	require.Len(t, progress, 2)
	assert.Equal(t, 50, progress[0].Progress.PercentComplete)
	assert.Equal(t, 100, progress[1].Progress.PercentComplete)
	assert.Equal(t, "currentDirector", progress[0].Progress.LabelField)
	assert.Equal(t, "Jane Doe", progress[0].Progress.Label)

	completed := producer.byType(events.ImportCompleted)
	require.Len(t, completed, 1)
	assert.Equal(t, &models.Result{Success: true, Count: 2}, completed[0].Result)
	assert.Empty(t, producer.byType(events.ImportFailed))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "source file should be deleted on success")
}

// Every persisted entity is paired with exactly one activity entry
// pointing at its ID.
func TestProcessJob_ActivityPairing(t *testing.T) {
	path := writeImportFile(t, directorCSV(
		"Jane,Doe,14/02/1985,Irish,01/06/2015,Engineer",
		"John,Smith,01/01/1970,British,15/03/2005,Accountant",
	))
	repo := &fakeRepo{}

	err := newService(t, repo, &fakeProducer{}, 0).ProcessJob(context.Background(), directorJob(path))
	require.NoError(t, err)

	require.Len(t, repo.activities, len(repo.entities))
	for i, ent := range repo.entities {
		activity := repo.activities[i]
		assert.Equal(t, ent.GetID(), activity.EntityID)
		assert.Equal(t, models.DirectorEntity, activity.EntityType)
		assert.Equal(t, "appointment", activity.Type)
		assert.Equal(t, "company-1", activity.CompanyID)
	}
}

func TestProcessJob_FileNotFound(t *testing.T) {
	producer := &fakeProducer{}
	repo := &fakeRepo{}
	job := directorJob(filepath.Join(t.TempDir(), "missing.csv"))

	err := newService(t, repo, producer, 0).ProcessJob(context.Background(), job)
	require.ErrorIs(t, err, e.ErrFileNotFound)

	assert.Empty(t, producer.byType(events.ImportProgress), "no progress before the file check")
	assert.Empty(t, repo.entities)

	failed := producer.byType(events.ImportFailed)
	require.Len(t, failed, 1)
	assert.Contains(t, failed[0].Error, "import file not found")
}

// A persistence error on record k aborts the job: records 1..k-1 stay
// persisted, nothing after k is attempted, the job reports failure.
func TestProcessJob_PersistFailureAborts(t *testing.T) {
	rows := make([]string, 5)
	for i := range rows {
		rows[i] = fmt.Sprintf("Jane%d,Doe,14/02/1985,Irish,01/06/2015,Engineer", i)
	}
	path := writeImportFile(t, directorCSV(rows...))
	repo := &fakeRepo{failAtWrite: 3}
	producer := &fakeProducer{}

	err := newService(t, repo, producer, 2).ProcessJob(context.Background(), directorJob(path))
	require.Error(t, err)

	assert.Len(t, repo.entities, 2, "records before the failure remain persisted")
	assert.Len(t, repo.activities, 2)

	require.Len(t, producer.byType(events.ImportFailed), 1)
	assert.Empty(t, producer.byType(events.ImportCompleted))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "source file should be deleted on failure too")
}

// N records with batch size B are processed in ceil(N/B) chunks with
// one progress event per record, non-decreasing and ending at 100.
func TestProcessJob_ProgressOverBatches(t *testing.T) {
	const n, batchSize = 5, 2
	rows := make([]string, n)
	for i := range rows {
		rows[i] = fmt.Sprintf("Jane%d,Doe,14/02/1985,Irish,01/06/2015,Engineer", i)
	}
	path := writeImportFile(t, directorCSV(rows...))
	producer := &fakeProducer{}

	err := newService(t, &fakeRepo{}, producer, batchSize).ProcessJob(context.Background(), directorJob(path))
	require.NoError(t, err)

	progress := producer.byType(events.ImportProgress)
	require.Len(t, progress, n)
	last := 0
	for _, ev := range progress {
		assert.GreaterOrEqual(t, ev.Progress.PercentComplete, last)
		last = ev.Progress.PercentComplete
	}
	assert.Equal(t, 100, last)
}

func TestProcessJob_AllRowsInvalid(t *testing.T) {
	// Occupation column blank everywhere: every row fails validation.
	path := writeImportFile(t, directorCSV(
		"Jane,Doe,14/02/1985,Irish,01/06/2015,",
		"John,Smith,01/01/1970,British,15/03/2005,",
	))
	repo := &fakeRepo{}
	producer := &fakeProducer{}

	err := newService(t, repo, producer, 0).ProcessJob(context.Background(), directorJob(path))
	require.NoError(t, err)

	assert.Empty(t, repo.entities)
	assert.Empty(t, producer.byType(events.ImportProgress))

	completed := producer.byType(events.ImportCompleted)
	require.Len(t, completed, 1)
	assert.Equal(t, 0, completed[0].Result.Count)
}

func TestProcessJob_UnknownEntityType(t *testing.T) {
	path := writeImportFile(t, directorCSV("Jane,Doe,14/02/1985,Irish,01/06/2015,Engineer"))
	producer := &fakeProducer{}
	job := directorJob(path)
	job.EntityType = "partnership"

	err := newService(t, &fakeRepo{}, producer, 0).ProcessJob(context.Background(), job)
	require.ErrorIs(t, err, e.ErrUnknownEntity)
	require.Len(t, producer.byType(events.ImportFailed), 1)
}

func TestProcessJob_AllotmentLabels(t *testing.T) {
	content := "Ref,Date,Class,Shares,Price,Ccy,To,Payment,Status\n" +
		"ALT-1,01/06/2015,ordinary,10000,1.50,GBP,Jane Doe,Paid,Active\n"
	path := writeImportFile(t, content)
	producer := &fakeProducer{}
	job := models.ImportJob{
		ID:       "job-2",
		FilePath: path,
		FileName: "allotments.csv",
		MimeType: "text/csv",
		Mapping: map[string]string{
			"allotmentId": "Ref", "allotmentDate": "Date", "shareClass": "Class",
			"numberOfShares": "Shares", "pricePerShare": "Price", "currency": "Ccy",
			"allottee": "To", "paymentStatus": "Payment", "status": "Status",
		},
		CompanyID:  "company-1",
		EntityType: models.AllotmentEntity,
	}
	repo := &fakeRepo{}

	require.NoError(t, newService(t, repo, producer, 0).ProcessJob(context.Background(), job))

	progress := producer.byType(events.ImportProgress)
	require.Len(t, progress, 1)
	assert.Equal(t, "currentAllotment", progress[0].Progress.LabelField)
	assert.Equal(t, "GBP 10000 ordinary shares to Jane Doe", progress[0].Progress.Label)

	require.Len(t, repo.entities, 1)
	allotment := repo.entities[0].(*models.Allotment)
	assert.Equal(t, 10000, allotment.NumberOfShares)
	assert.Equal(t, "Paid", allotment.PaymentStatus)
}
