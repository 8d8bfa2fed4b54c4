package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AnshRaj112/mentracare-backend/internal/metrics"
	"github.com/AnshRaj112/mentracare-backend/internal/models"
	"github.com/AnshRaj112/mentracare-backend/internal/store"
)

const (
	ServiceName = "MentraCare API"

	healthErrorMaxLen = 120
)

// WellnessService applies the request-level rules (timestamps, sentiment,
// chatbot replies, XP awards) and hands documents to the store.
type WellnessService struct {
	store store.Store
	log   *logrus.Logger
	now   func() time.Time
}

// NewWellnessService returns a service bound to st. A nil store is allowed:
// the service then reports the database as disconnected and every read or
// write fails with store.ErrStorageUnavailable.
func NewWellnessService(st store.Store, log *logrus.Logger) *WellnessService {
	return &WellnessService{
		store: st,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the time source. Used by tests.
func (s *WellnessService) SetClock(now func() time.Time) {
	s.now = now
}

type MoodResult struct {
	ID        string `json:"id"`
	XPAwarded int    `json:"xp_awarded"`
}

type JournalResult struct {
	ID        string           `json:"id"`
	Sentiment models.Sentiment `json:"sentiment"`
}

type HealthReport struct {
	Backend     string   `json:"backend"`
	Database    string   `json:"database"`
	Collections []string `json:"collections"`
}

func (s *WellnessService) CreateUser(ctx context.Context, user *models.User) (string, error) {
	return s.create(ctx, models.CollectionUser, user)
}

func (s *WellnessService) GetUser(ctx context.Context, id string) (*models.User, error) {
	if s.store == nil {
		return nil, fmt.Errorf("get user: %w", store.ErrStorageUnavailable)
	}
	doc, err := s.store.GetDocument(ctx, models.CollectionUser, id)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	var user models.User
	if err := store.DecodeOne(doc, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *WellnessService) CreateMood(ctx context.Context, req *models.MoodRequest) (*MoodResult, error) {
	id, err := s.create(ctx, models.CollectionMood, &models.Mood{
		UserID:    req.UserID,
		Mood:      req.Mood,
		Note:      req.Note,
		Timestamp: s.stamp(),
	})
	if err != nil {
		return nil, err
	}
	s.awardXP(ctx, req.UserID, XPMood, true)
	return &MoodResult{ID: id, XPAwarded: XPMood}, nil
}

func (s *WellnessService) ListMoods(ctx context.Context, userID string, limit int64) ([]models.Mood, error) {
	return list[models.Mood](ctx, s, models.CollectionMood, store.Filter{"user_id": userID}, limit)
}

func (s *WellnessService) CreateJournal(ctx context.Context, req *models.JournalRequest) (*JournalResult, error) {
	sentiment := ClassifySentiment(req.Text)
	id, err := s.create(ctx, models.CollectionJournal, &models.Journal{
		UserID:    req.UserID,
		Text:      req.Text,
		MoodTag:   req.MoodTag,
		Sentiment: sentiment,
		CreatedAt: s.stamp(),
	})
	if err != nil {
		return nil, err
	}
	s.awardXP(ctx, req.UserID, XPJournal, false)
	return &JournalResult{ID: id, Sentiment: sentiment}, nil
}

func (s *WellnessService) ListJournals(ctx context.Context, userID string, limit int64) ([]models.Journal, error) {
	return list[models.Journal](ctx, s, models.CollectionJournal, store.Filter{"user_id": userID}, limit)
}

func (s *WellnessService) LogSession(ctx context.Context, session *models.MindfulnessSession) (string, error) {
	session.CompletedAt = s.orNow(session.CompletedAt)
	id, err := s.create(ctx, models.CollectionMindfulnessSession, session)
	if err != nil {
		return "", err
	}
	s.awardXP(ctx, session.UserID, XPMindfulnessSession, false)
	return id, nil
}

func (s *WellnessService) ListSessions(ctx context.Context, userID string, limit int64) ([]models.MindfulnessSession, error) {
	return list[models.MindfulnessSession](ctx, s, models.CollectionMindfulnessSession, store.Filter{"user_id": userID}, limit)
}

func (s *WellnessService) CreatePost(ctx context.Context, post *models.PeerWallPost) (string, error) {
	post.Timestamp = s.orNow(post.Timestamp)
	return s.create(ctx, models.CollectionPeerWallPost, post)
}

// ListPosts returns up to limit wall posts, newest first. Posts without a
// timestamp sort last.
func (s *WellnessService) ListPosts(ctx context.Context, limit int64) ([]models.PeerWallPost, error) {
	posts, err := list[models.PeerWallPost](ctx, s, models.CollectionPeerWallPost, nil, limit)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(posts, func(i, j int) bool {
		ti, tj := posts[i].Timestamp, posts[j].Timestamp
		if ti == nil {
			return false
		}
		if tj == nil {
			return true
		}
		return ti.After(tj.Time)
	})
	return posts, nil
}

func (s *WellnessService) SaveGame(ctx context.Context, record *models.GameRecord) (string, error) {
	record.Date = s.orNow(record.Date)
	id, err := s.create(ctx, models.CollectionGameRecord, record)
	if err != nil {
		return "", err
	}
	s.awardXP(ctx, record.UserID, XPGame, false)
	return id, nil
}

func (s *WellnessService) ListGames(ctx context.Context, userID string, limit int64) ([]models.GameRecord, error) {
	return list[models.GameRecord](ctx, s, models.CollectionGameRecord, store.Filter{"user_id": userID}, limit)
}

func (s *WellnessService) AddBadge(ctx context.Context, badge *models.Badge) (string, error) {
	badge.EarnedAt = s.orNow(badge.EarnedAt)
	return s.create(ctx, models.CollectionBadge, badge)
}

func (s *WellnessService) ListBadges(ctx context.Context, userID string, limit int64) ([]models.Badge, error) {
	return list[models.Badge](ctx, s, models.CollectionBadge, store.Filter{"user_id": userID}, limit)
}

func (s *WellnessService) CreateAppointment(ctx context.Context, appt *models.Appointment) (string, error) {
	return s.create(ctx, models.CollectionAppointment, appt)
}

func (s *WellnessService) ListAppointments(ctx context.Context, userID string, limit int64) ([]models.Appointment, error) {
	return list[models.Appointment](ctx, s, models.CollectionAppointment, store.Filter{"user_id": userID}, limit)
}

// Chat answers a MentraBot message and logs the exchange.
func (s *WellnessService) Chat(ctx context.Context, req *models.MentraBotRequest) (string, error) {
	response := MentraBotReply(req.Message)
	_, err := s.create(ctx, models.CollectionMentraBotLog, &models.MentraBotLog{
		UserID:    req.UserID,
		Message:   req.Message,
		Response:  response,
		Timestamp: s.stamp(),
	})
	if err != nil {
		return "", err
	}
	return response, nil
}

// Health reports store connectivity. It never fails: store errors are
// rendered into the Database field.
func (s *WellnessService) Health(ctx context.Context) HealthReport {
	report := HealthReport{
		Backend:     "running",
		Database:    "disconnected",
		Collections: []string{},
	}
	if s.store == nil {
		return report
	}

	names, err := s.store.CollectionNames(ctx)
	if err != nil {
		msg := err.Error()
		if r := []rune(msg); len(r) > healthErrorMaxLen {
			msg = string(r[:healthErrorMaxLen])
		}
		report.Database = "error: " + msg
		return report
	}
	report.Database = "connected"
	if names != nil {
		report.Collections = names
	}
	return report
}

func (s *WellnessService) create(ctx context.Context, collection string, entity interface{}) (string, error) {
	if s.store == nil {
		return "", fmt.Errorf("create %s: %w", collection, store.ErrStorageUnavailable)
	}
	id, err := s.store.CreateDocument(ctx, collection, entity)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", collection, err)
	}
	metrics.RecordDocumentCreated(collection)
	s.log.WithFields(logrus.Fields{"collection": collection, "id": id}).Debug("document created")
	return id, nil
}

// awardXP is fire-and-forget: the document is already stored, and a failed or
// unmatched XP increment must not fail the request. The error is logged and
// counted, never returned.
func (s *WellnessService) awardXP(ctx context.Context, userID string, amount int, touchLastActive bool) {
	if s.store == nil {
		return
	}
	err := s.store.IncrementXP(ctx, userID, amount, touchLastActive)
	metrics.RecordXPAward(err)
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{"user_id": userID, "xp": amount}).Info("xp award skipped")
	}
}

func (s *WellnessService) stamp() *models.DateTime {
	return models.DateTimeAt(s.now())
}

func (s *WellnessService) orNow(t *models.DateTime) *models.DateTime {
	if t != nil {
		return t
	}
	return s.stamp()
}

func list[T any](ctx context.Context, s *WellnessService, collection string, filter store.Filter, limit int64) ([]T, error) {
	if s.store == nil {
		return nil, fmt.Errorf("list %s: %w", collection, store.ErrStorageUnavailable)
	}
	docs, err := s.store.GetDocuments(ctx, collection, filter, limit)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	return store.Decode[T](docs)
}
