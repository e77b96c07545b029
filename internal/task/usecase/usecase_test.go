package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktrack-api/internal/model"
	"tasktrack-api/internal/task"
	"tasktrack-api/internal/task/repository"
	"tasktrack-api/internal/user"
	pkgMinio "tasktrack-api/pkg/minio"
	"tasktrack-api/pkg/paginator"
)

// testLogger implements log.Logger for testing
type testLogger struct{}

func (m *testLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *testLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *testLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *testLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *testLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *testLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *testLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *testLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *testLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Panicf(ctx context.Context, template string, arg ...any)  {}
func (m *testLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}

// memTaskRepo is an in-memory repository.Repository.
type memTaskRepo struct {
	tasks map[string]model.Task
	seq   int
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: make(map[string]model.Task)}
}

func (m *memTaskRepo) Create(ctx context.Context, sc model.Scope, opts repository.CreateOptions) (model.Task, error) {
	tsk := opts.Task
	if tsk.ID == "" {
		m.seq++
		tsk.ID = fmt.Sprintf("task_%d", m.seq)
	}
	m.tasks[tsk.ID] = tsk
	return tsk, nil
}

func (m *memTaskRepo) Update(ctx context.Context, sc model.Scope, opts repository.UpdateOptions) (model.Task, error) {
	if _, ok := m.tasks[opts.Task.ID]; !ok {
		return model.Task{}, repository.ErrNotFound
	}
	m.tasks[opts.Task.ID] = opts.Task
	return opts.Task, nil
}

func (m *memTaskRepo) Detail(ctx context.Context, sc model.Scope, id string) (model.Task, error) {
	tsk, ok := m.tasks[id]
	if !ok {
		return model.Task{}, repository.ErrNotFound
	}
	return tsk, nil
}

func (m *memTaskRepo) Get(ctx context.Context, sc model.Scope, opts repository.GetOptions) ([]model.Task, paginator.Paginator, error) {
	var res []model.Task
	for _, t := range m.tasks {
		if opts.Filter.AssigneeID != "" && t.AssigneeID != opts.Filter.AssigneeID {
			continue
		}
		if opts.Filter.Status != "" && string(t.Status) != opts.Filter.Status {
			continue
		}
		res = append(res, t)
	}
	pag := paginator.Paginator{Total: int64(len(res)), Count: int64(len(res)), PerPage: 15, CurrentPage: 1}
	return res, pag, nil
}

func (m *memTaskRepo) Delete(ctx context.Context, sc model.Scope, id string) error {
	if _, ok := m.tasks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.tasks, id)
	return nil
}

// stubUserUC resolves a fixed set of users; only Detail matters here.
type stubUserUC struct {
	user.UseCase
	users map[string]model.User
}

func (s *stubUserUC) Detail(ctx context.Context, sc model.Scope, id string) (user.UserOutput, error) {
	u, ok := s.users[id]
	if !ok {
		return user.UserOutput{}, user.ErrUserNotFound
	}
	return user.UserOutput{User: u}, nil
}

// stubDispatcher records dispatched events.
type stubDispatcher struct {
	mu      sync.Mutex
	created []string
	updated []string
	deleted []string
}

func (s *stubDispatcher) OnTaskCreated(ctx context.Context, t model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, t.ID)
}

func (s *stubDispatcher) OnTaskUpdated(ctx context.Context, t model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updated = append(s.updated, t.ID)
}

func (s *stubDispatcher) OnTaskDeleted(ctx context.Context, taskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, taskID)
}

// memStorage is an in-memory pkg/minio implementation.
type memStorage struct {
	objects map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{objects: make(map[string][]byte)}
}

func (m *memStorage) EnsureBucket(ctx context.Context, bucketName string) error { return nil }

func (m *memStorage) UploadFile(ctx context.Context, req pkgMinio.UploadRequest) (*pkgMinio.FileInfo, error) {
	data, err := io.ReadAll(req.Reader)
	if err != nil {
		return nil, err
	}
	m.objects[req.ObjectName] = data
	return &pkgMinio.FileInfo{
		BucketName:   req.BucketName,
		ObjectName:   req.ObjectName,
		OriginalName: req.OriginalName,
		Size:         int64(len(data)),
		ContentType:  req.ContentType,
	}, nil
}

func (m *memStorage) DownloadFile(ctx context.Context, bucketName, objectName string) (*pkgMinio.DownloadResult, error) {
	data, ok := m.objects[objectName]
	if !ok {
		return nil, pkgMinio.ErrObjectNotFound
	}
	return &pkgMinio.DownloadResult{
		Reader: io.NopCloser(bytes.NewReader(data)),
		Info: pkgMinio.FileInfo{
			ObjectName:  objectName,
			Size:        int64(len(data)),
			ContentType: "application/octet-stream",
		},
	}, nil
}

func (m *memStorage) DeleteFile(ctx context.Context, bucketName, objectName string) error {
	delete(m.objects, objectName)
	return nil
}

func (m *memStorage) HealthCheck(ctx context.Context) error { return nil }

var (
	bossScope = model.Scope{UserID: "boss_1", Role: model.RoleBoss}
	userScope = model.Scope{UserID: "user_1", Role: model.RoleUser}
)

type fixture struct {
	uc         task.UseCase
	repo       *memTaskRepo
	dispatcher *stubDispatcher
	storage    *memStorage
}

func newFixture() fixture {
	repo := newMemTaskRepo()
	dispatcher := &stubDispatcher{}
	storage := newMemStorage()
	users := &stubUserUC{users: map[string]model.User{
		"user_1": {ID: "user_1", Role: model.RoleUser},
		"boss_1": {ID: "boss_1", Role: model.RoleBoss},
	}}
	return fixture{
		uc:         New(&testLogger{}, repo, users, dispatcher, storage, "reports"),
		repo:       repo,
		dispatcher: dispatcher,
		storage:    storage,
	}
}

func (f fixture) createTask(t *testing.T) model.Task {
	t.Helper()
	out, err := f.uc.Create(context.Background(), bossScope, task.CreateInput{
		Title:      "Prepare quarterly report",
		Priority:   "HIGH",
		AssigneeID: "user_1",
	})
	require.NoError(t, err)
	return out.Task
}

func TestCreateRequiresManager(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Create(context.Background(), userScope, task.CreateInput{
		Title:      "Prepare quarterly report",
		AssigneeID: "user_1",
	})
	assert.ErrorIs(t, err, task.ErrPermissionDenied)
}

func TestCreateAssignsAndDispatches(t *testing.T) {
	f := newFixture()

	tsk := f.createTask(t)
	assert.Equal(t, model.TaskStatusAssigned, tsk.Status)
	assert.Equal(t, "boss_1", tsk.CreatedBy)
	assert.Equal(t, []string{tsk.ID}, f.dispatcher.created)
}

func TestCreateRejectsUnknownAssignee(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Create(context.Background(), bossScope, task.CreateInput{
		Title:      "Prepare quarterly report",
		AssigneeID: "ghost",
	})
	assert.ErrorIs(t, err, task.ErrAssigneeNotFound)
}

func TestUpdateStatusFollowsWorkflow(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	tsk := f.createTask(t)

	// Assignee takes the task into progress.
	out, err := f.uc.UpdateStatus(ctx, userScope, task.UpdateStatusInput{ID: tsk.ID, Status: "IN_PROGRESS"})
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusInProgress, out.Task.Status)

	// Jumping straight to COMPLETED is not a legal transition.
	_, err = f.uc.UpdateStatus(ctx, bossScope, task.UpdateStatusInput{ID: tsk.ID, Status: "COMPLETED"})
	assert.ErrorIs(t, err, task.ErrInvalidTransition)

	_, err = f.uc.UpdateStatus(ctx, userScope, task.UpdateStatusInput{ID: tsk.ID, Status: "UNDER_REVIEW"})
	require.NoError(t, err)

	// Approval is a manager decision.
	_, err = f.uc.UpdateStatus(ctx, userScope, task.UpdateStatusInput{ID: tsk.ID, Status: "COMPLETED"})
	assert.ErrorIs(t, err, task.ErrPermissionDenied)

	out, err = f.uc.UpdateStatus(ctx, bossScope, task.UpdateStatusInput{ID: tsk.ID, Status: "COMPLETED"})
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusCompleted, out.Task.Status)
}

func TestUpdateStatusRejectsForeignAssignee(t *testing.T) {
	f := newFixture()
	tsk := f.createTask(t)

	other := model.Scope{UserID: "user_2", Role: model.RoleUser}
	_, err := f.uc.UpdateStatus(context.Background(), other, task.UpdateStatusInput{ID: tsk.ID, Status: "IN_PROGRESS"})
	assert.ErrorIs(t, err, task.ErrTaskNotFound, "foreign tasks are invisible to regular users")
}

func TestGetScopesRegularUsersToOwnTasks(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.createTask(t)

	// A second task assigned to someone else.
	f.repo.tasks["task_x"] = model.Task{ID: "task_x", AssigneeID: "user_2", Status: model.TaskStatusAssigned}

	out, err := f.uc.Get(ctx, userScope, task.GetInput{})
	require.NoError(t, err)
	require.Len(t, out.Tasks, 1)
	assert.Equal(t, "user_1", out.Tasks[0].AssigneeID)

	bossOut, err := f.uc.Get(ctx, bossScope, task.GetInput{})
	require.NoError(t, err)
	assert.Len(t, bossOut.Tasks, 2)
}

func TestSubmitTextReport(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	tsk := f.createTask(t)

	_, err := f.uc.UpdateStatus(ctx, userScope, task.UpdateStatusInput{ID: tsk.ID, Status: "IN_PROGRESS"})
	require.NoError(t, err)

	out, err := f.uc.SubmitReport(ctx, userScope, task.SubmitReportInput{
		TaskID: tsk.ID,
		Text:   "Everything is done.",
	})
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusUnderReview, out.Task.Status)
	require.NotNil(t, out.Task.Report)
	assert.True(t, out.Task.Report.IsTextReport)

	dl, err := f.uc.DownloadReport(ctx, bossScope, tsk.ID)
	require.NoError(t, err)
	assert.True(t, dl.IsText)
	assert.Equal(t, "Everything is done.", dl.Text)
}

func TestSubmitFileReport(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	tsk := f.createTask(t)

	_, err := f.uc.UpdateStatus(ctx, userScope, task.UpdateStatusInput{ID: tsk.ID, Status: "IN_PROGRESS"})
	require.NoError(t, err)

	body := "PDF-ish bytes"
	out, err := f.uc.SubmitReport(ctx, userScope, task.SubmitReportInput{
		TaskID:   tsk.ID,
		FileName: "report.pdf",
		Reader:   strings.NewReader(body),
		Size:     int64(len(body)),
	})
	require.NoError(t, err)
	require.NotNil(t, out.Task.Report)
	assert.False(t, out.Task.Report.IsTextReport)

	dl, err := f.uc.DownloadReport(ctx, userScope, tsk.ID)
	require.NoError(t, err)
	require.NotNil(t, dl.Reader)
	data, err := io.ReadAll(dl.Reader)
	require.NoError(t, err)
	require.NoError(t, dl.Reader.Close())
	assert.Equal(t, body, string(data))
}

func TestSubmitReportRequiresInProgress(t *testing.T) {
	f := newFixture()
	tsk := f.createTask(t)

	_, err := f.uc.SubmitReport(context.Background(), userScope, task.SubmitReportInput{
		TaskID: tsk.ID,
		Text:   "too early",
	})
	assert.ErrorIs(t, err, task.ErrInvalidTransition)
}

func TestSubmitReportRequiresContent(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	tsk := f.createTask(t)

	_, err := f.uc.UpdateStatus(ctx, userScope, task.UpdateStatusInput{ID: tsk.ID, Status: "IN_PROGRESS"})
	require.NoError(t, err)

	_, err = f.uc.SubmitReport(ctx, userScope, task.SubmitReportInput{TaskID: tsk.ID})
	assert.ErrorIs(t, err, task.ErrReportRequired)
}

func TestDeleteRemovesReportFile(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	tsk := f.createTask(t)

	_, err := f.uc.UpdateStatus(ctx, userScope, task.UpdateStatusInput{ID: tsk.ID, Status: "IN_PROGRESS"})
	require.NoError(t, err)

	body := "bytes"
	_, err = f.uc.SubmitReport(ctx, userScope, task.SubmitReportInput{
		TaskID:   tsk.ID,
		FileName: "report.pdf",
		Reader:   strings.NewReader(body),
		Size:     int64(len(body)),
	})
	require.NoError(t, err)
	require.Len(t, f.storage.objects, 1)

	require.NoError(t, f.uc.Delete(ctx, bossScope, tsk.ID))
	assert.Empty(t, f.storage.objects)
	assert.Equal(t, []string{tsk.ID}, f.dispatcher.deleted)

	_, err = f.uc.Detail(ctx, bossScope, tsk.ID)
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestDeleteRequiresManager(t *testing.T) {
	f := newFixture()
	tsk := f.createTask(t)

	err := f.uc.Delete(context.Background(), userScope, tsk.ID)
	assert.ErrorIs(t, err, task.ErrPermissionDenied)
}
