package usecase

import (
	"time"

	"tasktrack-api/internal/task"
	"tasktrack-api/internal/task/repository"
	"tasktrack-api/internal/user"
	pkgLog "tasktrack-api/pkg/log"
	pkgMinio "tasktrack-api/pkg/minio"
)

type usecase struct {
	l          pkgLog.Logger
	repo       repository.Repository
	userUC     user.UseCase
	dispatcher task.Dispatcher
	storage    pkgMinio.MinIO
	bucket     string
	clock      func() time.Time
}

func (uc *usecase) now() time.Time {
	return uc.clock()
}

func New(l pkgLog.Logger, repo repository.Repository, userUC user.UseCase, dispatcher task.Dispatcher, storage pkgMinio.MinIO, bucket string) task.UseCase {
	return &usecase{
		l:          l,
		repo:       repo,
		userUC:     userUC,
		dispatcher: dispatcher,
		storage:    storage,
		bucket:     bucket,
		clock:      time.Now,
	}
}
