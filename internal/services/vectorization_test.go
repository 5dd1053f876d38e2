package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kindredapp/kindred-backend/internal/logger"
	"github.com/kindredapp/kindred-backend/internal/semantics"
	"github.com/kindredapp/kindred-backend/internal/types"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

type fakeUserRepo struct {
	users map[uuid.UUID]*types.User
	errs  map[uuid.UUID]error
	tags  map[uuid.UUID][]string
}

func (f *fakeUserRepo) GetByID(_ context.Context, _ *gorm.DB, userID uuid.UUID) (*types.User, error) {
	if err := f.errs[userID]; err != nil {
		return nil, err
	}
	return f.users[userID], nil
}

func (f *fakeUserRepo) GetByIDs(_ context.Context, _ *gorm.DB, userIDs []uuid.UUID) ([]*types.User, error) {
	var out []*types.User
	for _, id := range userIDs {
		if u := f.users[id]; u != nil {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateSemanticTags(_ context.Context, _ *gorm.DB, userID uuid.UUID, tags []string) error {
	if f.tags == nil {
		f.tags = map[uuid.UUID][]string{}
	}
	f.tags[userID] = tags
	return nil
}

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*types.Profile
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, _ *gorm.DB, userID uuid.UUID) (*types.Profile, error) {
	return f.profiles[userID], nil
}

type fakePsychRepo struct {
	rows map[uuid.UUID]*types.PsychProfile
}

func (f *fakePsychRepo) GetByUserID(_ context.Context, _ *gorm.DB, userID uuid.UUID) (*types.PsychProfile, error) {
	return f.rows[userID], nil
}

type fakeAnswerRepo struct {
	rows map[uuid.UUID][]*types.PromptAnswer
}

func (f *fakeAnswerRepo) ListByUserID(_ context.Context, _ *gorm.DB, userID uuid.UUID) ([]*types.PromptAnswer, error) {
	return f.rows[userID], nil
}

type fakeEmbeddingRepo struct {
	rows      map[uuid.UUID]*types.ProfileEmbedding
	upsertErr error
	upserts   int
}

func (f *fakeEmbeddingRepo) GetByUserID(_ context.Context, _ *gorm.DB, userID uuid.UUID) (*types.ProfileEmbedding, error) {
	return f.rows[userID], nil
}

func (f *fakeEmbeddingRepo) Upsert(_ context.Context, _ *gorm.DB, row *types.ProfileEmbedding) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	if f.rows == nil {
		f.rows = map[uuid.UUID]*types.ProfileEmbedding{}
	}
	f.upserts++
	f.rows[row.UserID] = row
	return nil
}

type countingProvider struct {
	dim   int
	calls int
}

func (p *countingProvider) Embed(_ context.Context, text string) ([]float32, error) {
	p.calls++
	return semantics.PseudoEmbed(text, p.dim), nil
}

func (p *countingProvider) Dim() int { return p.dim }

type fixture struct {
	users      *fakeUserRepo
	profiles   *fakeProfileRepo
	psych      *fakePsychRepo
	answers    *fakeAnswerRepo
	embeddings *fakeEmbeddingRepo
	provider   *countingProvider
	svc        VectorizationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	t.Setenv("VECTORIZE_BATCH_DELAY_MS", "0")

	f := &fixture{
		users:      &fakeUserRepo{users: map[uuid.UUID]*types.User{}, errs: map[uuid.UUID]error{}},
		profiles:   &fakeProfileRepo{profiles: map[uuid.UUID]*types.Profile{}},
		psych:      &fakePsychRepo{rows: map[uuid.UUID]*types.PsychProfile{}},
		answers:    &fakeAnswerRepo{rows: map[uuid.UUID][]*types.PromptAnswer{}},
		embeddings: &fakeEmbeddingRepo{rows: map[uuid.UUID]*types.ProfileEmbedding{}},
		provider:   &countingProvider{dim: 64},
	}
	f.svc = NewVectorizationService(testLogger(), f.users, f.profiles, f.psych, f.answers, f.embeddings, f.provider, nil)
	return f
}

func (f *fixture) addUser(bio string) uuid.UUID {
	id := uuid.New()
	f.users.users[id] = &types.User{ID: id, Email: id.String() + "@example.com"}
	if bio != "" {
		f.profiles.profiles[id] = &types.Profile{ID: uuid.New(), UserID: id, Bio: bio}
	}
	return id
}

func TestVectorizeUserNotFound(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.VectorizeUser(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("VectorizeUser returned error for missing user: %v", err)
	}
	if !res.NotFound {
		t.Fatalf("result=%+v, want NotFound", res)
	}
	if f.provider.calls != 0 {
		t.Fatalf("provider called %d times for missing user, want 0", f.provider.calls)
	}
	if f.embeddings.upserts != 0 {
		t.Fatalf("upsert ran %d times for missing user, want 0", f.embeddings.upserts)
	}
}

func TestVectorizeUserPersistsEmbeddingAndTags(t *testing.T) {
	f := newFixture(t)
	id := f.addUser("I love hiking in nature and cooking Italian food")

	res, err := f.svc.VectorizeUser(context.Background(), id)
	if err != nil {
		t.Fatalf("VectorizeUser: %v", err)
	}
	if res.NotFound || res.Skipped {
		t.Fatalf("result=%+v, want processed", res)
	}

	row := f.embeddings.rows[id]
	if row == nil {
		t.Fatal("no embedding row persisted")
	}
	if row.Fingerprint != res.Fingerprint {
		t.Fatalf("stored fingerprint %q != result fingerprint %q", row.Fingerprint, res.Fingerprint)
	}
	if got := len(row.Vector.Slice()); got != f.provider.Dim() {
		t.Fatalf("stored vector dim %d, want %d", got, f.provider.Dim())
	}
	if got := len(row.EnrichedVector.Slice()); got != f.provider.Dim() {
		t.Fatalf("enriched vector dim %d, want %d", got, f.provider.Dim())
	}
	if len(row.Tags) == 0 || len(row.Tags) > semantics.MaxTags {
		t.Fatalf("stored %d tags, want 1..%d", len(row.Tags), semantics.MaxTags)
	}
	mirrored := f.users.tags[id]
	if len(mirrored) != len(row.Tags) {
		t.Fatalf("mirrored tags %v != stored tags %v", mirrored, row.Tags)
	}
}

func TestVectorizeUserFingerprintIdempotence(t *testing.T) {
	f := newFixture(t)
	id := f.addUser("same bio, no edits in between")

	first, err := f.svc.VectorizeUser(context.Background(), id)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := f.svc.VectorizeUser(context.Background(), id)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if first.Skipped {
		t.Fatal("first run skipped, want computed")
	}
	if !second.Skipped {
		t.Fatal("second run computed, want skipped at fingerprint gate")
	}
	if f.provider.calls != 1 {
		t.Fatalf("provider called %d times across two runs, want exactly 1", f.provider.calls)
	}
	if f.embeddings.upserts != 1 {
		t.Fatalf("upsert ran %d times across two runs, want exactly 1", f.embeddings.upserts)
	}
}

func TestVectorizeUserRecomputesOnEdit(t *testing.T) {
	f := newFixture(t)
	id := f.addUser("original bio")

	if _, err := f.svc.VectorizeUser(context.Background(), id); err != nil {
		t.Fatalf("first run: %v", err)
	}
	f.profiles.profiles[id].Bio = "edited bio"
	res, err := f.svc.VectorizeUser(context.Background(), id)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if res.Skipped {
		t.Fatal("bio edit did not invalidate fingerprint")
	}
	if f.provider.calls != 2 {
		t.Fatalf("provider called %d times, want 2", f.provider.calls)
	}
}

func TestVectorizeUserPersistFailureSurfaced(t *testing.T) {
	f := newFixture(t)
	id := f.addUser("a bio")
	f.embeddings.upsertErr = errors.New("connection reset")

	if _, err := f.svc.VectorizeUser(context.Background(), id); err == nil {
		t.Fatal("persistence failure was swallowed, want error")
	}
}

func TestVectorizeBatchIsolatesFailures(t *testing.T) {
	f := newFixture(t)
	first := f.addUser("first user bio")
	second := f.addUser("second user bio")
	third := f.addUser("third user bio")
	f.users.errs[second] = errors.New("boom during assembly")

	summary, err := f.svc.VectorizeBatch(context.Background(), []uuid.UUID{first, second, third})
	if err != nil {
		t.Fatalf("VectorizeBatch: %v", err)
	}
	if summary.Processed != 2 || summary.Failed != 1 {
		t.Fatalf("summary=%+v, want 2 processed / 1 failed", summary)
	}
	if f.embeddings.rows[first] == nil || f.embeddings.rows[third] == nil {
		t.Fatal("surviving users were not vectorized")
	}
	if f.embeddings.rows[second] != nil {
		t.Fatal("failed user has a persisted embedding")
	}
}
