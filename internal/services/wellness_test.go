package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/mentracare-backend/internal/logging"
	"github.com/AnshRaj112/mentracare-backend/internal/models"
	"github.com/AnshRaj112/mentracare-backend/internal/store"
)

var fixedNow = time.Date(2026, 10, 19, 9, 15, 0, 0, time.UTC)

func newTestService(t *testing.T) (*WellnessService, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	st.SetClock(func() time.Time { return fixedNow })
	svc := NewWellnessService(st, logging.Discard())
	svc.SetClock(func() time.Time { return fixedNow })
	return svc, st
}

func createUser(t *testing.T, svc *WellnessService) string {
	t.Helper()
	user := models.NewUser()
	user.Name = "Ari"
	user.Email = "ari@example.com"
	id, err := svc.CreateUser(context.Background(), user)
	require.NoError(t, err)
	return id
}

func strPtr(s string) *string { return &s }

func TestCreateMood_StoresRequestFieldsAndTimestamp(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	res, err := svc.CreateMood(ctx, &models.MoodRequest{UserID: "u1", Mood: "hopeful", Note: strPtr("walked outside")})
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, 10, res.XPAwarded)

	doc, err := st.GetDocument(ctx, models.CollectionMood, res.ID)
	require.NoError(t, err)
	var mood models.Mood
	require.NoError(t, store.DecodeOne(doc, &mood))

	assert.Equal(t, res.ID, mood.ID)
	assert.Equal(t, "u1", mood.UserID)
	assert.Equal(t, "hopeful", mood.Mood)
	assert.Equal(t, "walked outside", *mood.Note)
	require.NotNil(t, mood.Timestamp)
	assert.True(t, mood.Timestamp.Equal(fixedNow))
}

func TestCreateMood_AwardsXPAndTouchesLastActive(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	userID := createUser(t, svc)

	_, err := svc.CreateMood(ctx, &models.MoodRequest{UserID: userID, Mood: "ok"})
	require.NoError(t, err)

	user, err := svc.GetUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, XPMood, user.XP)
	require.NotNil(t, user.LastActive)
	assert.True(t, user.LastActive.Equal(fixedNow))
}

func TestXPAwards(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	userID := createUser(t, svc)

	_, err := svc.CreateJournal(ctx, &models.JournalRequest{UserID: userID, Text: "fine"})
	require.NoError(t, err)
	_, err = svc.LogSession(ctx, &models.MindfulnessSession{UserID: userID, ActivityType: models.ActivityBreathing})
	require.NoError(t, err)
	_, err = svc.SaveGame(ctx, &models.GameRecord{UserID: userID, GameName: models.GameSudoku, Score: 3})
	require.NoError(t, err)
	_, err = svc.AddBadge(ctx, &models.Badge{UserID: userID, BadgeName: "first-week"})
	require.NoError(t, err)
	_, err = svc.CreateAppointment(ctx, &models.Appointment{UserID: userID, DoctorName: "Dr. Rao", Date: models.NewDateTime(fixedNow), Status: models.AppointmentRequested})
	require.NoError(t, err)

	user, err := svc.GetUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, XPJournal+XPMindfulnessSession+XPGame, user.XP)
	assert.Nil(t, user.LastActive, "only mood logging stamps last_active")
}

func TestXPAward_UnknownUserIsNotAnError(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.CreateMood(context.Background(), &models.MoodRequest{UserID: "nobody", Mood: "ok"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
}

// failingXPStore stores documents but cannot update users.
type failingXPStore struct {
	*store.MemoryStore
}

func (failingXPStore) IncrementXP(context.Context, string, int, bool) error {
	return store.ErrStorageUnavailable
}

func TestXPAward_FailureIsSwallowed(t *testing.T) {
	svc := NewWellnessService(failingXPStore{store.NewMemoryStore()}, logging.Discard())

	res, err := svc.CreateMood(context.Background(), &models.MoodRequest{UserID: "u1", Mood: "ok"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)

	_, err = svc.CreateJournal(context.Background(), &models.JournalRequest{UserID: "u1", Text: "ok"})
	assert.NoError(t, err)
}

func TestCreate_StorageFailurePropagates(t *testing.T) {
	svc, st := newTestService(t)
	st.FailWith = errors.New("no reachable servers")

	_, err := svc.CreateMood(context.Background(), &models.MoodRequest{UserID: "u1", Mood: "ok"})
	assert.ErrorIs(t, err, store.ErrStorageUnavailable)

	_, err = svc.Chat(context.Background(), &models.MentraBotRequest{Message: "hi"})
	assert.ErrorIs(t, err, store.ErrStorageUnavailable)

	_, err = svc.ListMoods(context.Background(), "u1", 30)
	assert.ErrorIs(t, err, store.ErrStorageUnavailable)
}

func TestNilStore(t *testing.T) {
	svc := NewWellnessService(nil, logging.Discard())
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, &models.PeerWallPost{PostText: "hi"})
	assert.ErrorIs(t, err, store.ErrStorageUnavailable)

	_, err = svc.ListPosts(ctx, 50)
	assert.ErrorIs(t, err, store.ErrStorageUnavailable)

	_, err = svc.GetUser(ctx, "u1")
	assert.ErrorIs(t, err, store.ErrStorageUnavailable)

	report := svc.Health(ctx)
	assert.Equal(t, HealthReport{Backend: "running", Database: "disconnected", Collections: []string{}}, report)
}

func TestListMoods_ReturnsAllForUserUpToLimit(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := svc.CreateMood(ctx, &models.MoodRequest{UserID: "u1", Mood: "ok"})
		require.NoError(t, err)
	}
	_, err := svc.CreateMood(ctx, &models.MoodRequest{UserID: "u2", Mood: "other"})
	require.NoError(t, err)

	moods, err := svc.ListMoods(ctx, "u1", 30)
	require.NoError(t, err)
	require.Len(t, moods, 4)
	for _, m := range moods {
		assert.NotEmpty(t, m.ID)
		assert.Equal(t, "u1", m.UserID)
	}

	limited, err := svc.ListMoods(ctx, "u1", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	none, err := svc.ListMoods(ctx, "unknown", 30)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCreateJournal_ComputesSentiment(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.CreateJournal(ctx, &models.JournalRequest{UserID: "u1", Text: "I feel sad and anxious", MoodTag: strPtr("low")})
	require.NoError(t, err)
	assert.Equal(t, models.SentimentNegative, res.Sentiment)

	journals, err := svc.ListJournals(ctx, "u1", 20)
	require.NoError(t, err)
	require.Len(t, journals, 1)
	assert.Equal(t, models.SentimentNegative, journals[0].Sentiment)
	assert.Equal(t, "low", *journals[0].MoodTag)
	assert.True(t, journals[0].CreatedAt.Equal(fixedNow))
}

func TestListJournals_IsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	for _, text := range []string{"good", "bad", "plain"} {
		_, err := svc.CreateJournal(ctx, &models.JournalRequest{UserID: "u1", Text: text})
		require.NoError(t, err)
	}

	first, err := svc.ListJournals(ctx, "u1", 20)
	require.NoError(t, err)
	second, err := svc.ListJournals(ctx, "u1", 20)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestListPosts_NewestFirst(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	t1 := fixedNow.Add(-2 * time.Hour)
	t2 := fixedNow.Add(-1 * time.Hour)

	_, err := svc.CreatePost(ctx, &models.PeerWallPost{PostText: "older", Timestamp: models.DateTimeAt(t1)})
	require.NoError(t, err)
	_, err = svc.CreatePost(ctx, &models.PeerWallPost{PostText: "newer", Timestamp: models.DateTimeAt(t2)})
	require.NoError(t, err)
	_, err = svc.CreatePost(ctx, &models.PeerWallPost{PostText: "now"})
	require.NoError(t, err)

	posts, err := svc.ListPosts(ctx, 50)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "now", posts[0].PostText)
	assert.Equal(t, "newer", posts[1].PostText)
	assert.Equal(t, "older", posts[2].PostText)
}

func TestDefaultTimestamps(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	earlier := fixedNow.Add(-24 * time.Hour)

	session := &models.MindfulnessSession{UserID: "u1", ActivityType: models.ActivitySleep}
	_, err := svc.LogSession(ctx, session)
	require.NoError(t, err)
	assert.True(t, session.CompletedAt.Equal(fixedNow))

	game := &models.GameRecord{UserID: "u1", GameName: models.GameTicTacToe, Date: models.DateTimeAt(earlier)}
	_, err = svc.SaveGame(ctx, game)
	require.NoError(t, err)
	assert.True(t, game.Date.Equal(earlier), "client-supplied date is kept")

	badge := &models.Badge{UserID: "u1", BadgeName: "calm-week"}
	_, err = svc.AddBadge(ctx, badge)
	require.NoError(t, err)
	assert.True(t, badge.EarnedAt.Equal(fixedNow))

	badges, err := svc.ListBadges(ctx, "u1", 50)
	require.NoError(t, err)
	require.Len(t, badges, 1)
	games, err := svc.ListGames(ctx, "u1", 50)
	require.NoError(t, err)
	require.Len(t, games, 1)
	sessions, err := svc.ListSessions(ctx, "u1", 50)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
}

func TestChat_LogsExchange(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	reply, err := svc.Chat(ctx, &models.MentraBotRequest{UserID: strPtr("u1"), Message: "I'm so stressed I could kill someone"})
	require.NoError(t, err)
	assert.Equal(t, ReplySOS, reply)

	docs, err := st.GetDocuments(ctx, models.CollectionMentraBotLog, nil, 0)
	require.NoError(t, err)
	logs, err := store.Decode[models.MentraBotLog](docs)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, ReplySOS, logs[0].Response)
	assert.Equal(t, "u1", *logs[0].UserID)
}

func TestGetUser_NotFound(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.GetUser(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestHealth(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	_, err := svc.CreateMood(ctx, &models.MoodRequest{UserID: "u1", Mood: "ok"})
	require.NoError(t, err)

	report := svc.Health(ctx)
	assert.Equal(t, "connected", report.Database)
	assert.Equal(t, []string{"mood"}, report.Collections)

	st.FailWith = errors.New(strings.Repeat("x", 300))
	report = svc.Health(ctx)
	assert.True(t, strings.HasPrefix(report.Database, "error: "))
	assert.Len(t, report.Database, len("error: ")+healthErrorMaxLen)
	assert.Empty(t, report.Collections)
}

func TestHealth_TruncatesByCharacter(t *testing.T) {
	svc, st := newTestService(t)

	st.FailWith = errors.New(strings.Repeat("é", 300))
	report := svc.Health(context.Background())

	assert.True(t, utf8.ValidString(report.Database))
	assert.Equal(t, len("error: ")+healthErrorMaxLen, utf8.RuneCountInString(report.Database))
}
