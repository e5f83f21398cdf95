package service

import (
	"alcyxob/exercise-tracker/internal/api/types"
	"alcyxob/exercise-tracker/internal/observability"
	"alcyxob/exercise-tracker/internal/storage"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExportResult points at an uploaded log snapshot.
type ExportResult struct {
	UserID   primitive.ObjectID
	Username string
	Key      string
	URL      string
}

type ExportService interface {
	ExportLog(ctx context.Context, userID string) (*ExportResult, error)
}

// exportService implements the ExportService interface.
type exportService struct {
	users       UserService
	fileStorage storage.FileStorage
	urlExpiry   time.Duration
	logger      logrus.FieldLogger
	metrics     *observability.Metrics
}

// NewExportService creates a new instance of exportService. A nil fileStorage
// disables exporting.
func NewExportService(users UserService, fileStorage storage.FileStorage, urlExpiry time.Duration, logger logrus.FieldLogger, metrics *observability.Metrics) ExportService {
	return &exportService{
		users:       users,
		fileStorage: fileStorage,
		urlExpiry:   urlExpiry,
		logger:      logger,
		metrics:     metrics,
	}
}

// ExportLog uploads the user's complete log as JSON and returns a temporary
// download link for it.
func (s *exportService) ExportLog(ctx context.Context, userID string) (result *ExportResult, err error) {
	if s.fileStorage == nil {
		return nil, ErrExportDisabled
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	defer func() { s.metrics.LogExported(err) }()

	body, err := json.MarshalIndent(types.NewLogResponse(user.ID, user.Username, nil, nil, user.Exercises), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode log: %w", err)
	}

	key := path.Join("exports", user.ID.Hex(), uuid.NewString()+".json")
	if err = s.fileStorage.PutObject(ctx, key, "application/json", body); err != nil {
		return nil, err
	}

	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, key, s.urlExpiry)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{"userId": userID, "key": key}).Info("Exercise log exported")
	return &ExportResult{
		UserID:   user.ID,
		Username: user.Username,
		Key:      key,
		URL:      url,
	}, nil
}
