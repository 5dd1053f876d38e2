package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/kindredapp/kindred-backend/internal/logger"
	"github.com/kindredapp/kindred-backend/internal/repos"
	"github.com/kindredapp/kindred-backend/internal/semantics"
	"github.com/kindredapp/kindred-backend/internal/types"
	"github.com/kindredapp/kindred-backend/internal/utils"
)

// VectorizeResult reports how a single-user run ended. NotFound and Skipped
// are no-ops, not errors: triggers fire on best-effort events and must not
// fail the action that triggered them.
type VectorizeResult struct {
	UserID         uuid.UUID `json:"user_id"`
	NotFound       bool      `json:"not_found,omitempty"`
	Skipped        bool      `json:"skipped,omitempty"`
	AlreadyRunning bool      `json:"already_running,omitempty"`
	Fingerprint    string    `json:"fingerprint,omitempty"`
	TagCount       int       `json:"tag_count"`
}

type BatchSummary struct {
	Total     int `json:"total"`
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	NotFound  int `json:"not_found"`
	Failed    int `json:"failed"`
}

type VectorizationService interface {
	VectorizeUser(ctx context.Context, userID uuid.UUID) (*VectorizeResult, error)
	VectorizeBatch(ctx context.Context, userIDs []uuid.UUID) (*BatchSummary, error)
}

type vectorizationService struct {
	log           *logger.Logger
	users         repos.UserRepo
	profiles      repos.ProfileRepo
	psychProfiles repos.PsychProfileRepo
	answers       repos.PromptAnswerRepo
	embeddings    repos.ProfileEmbeddingRepo
	provider      EmbeddingProvider
	lock          PipelineLock

	group      singleflight.Group
	batchDelay time.Duration
	tracer     trace.Tracer
}

// NewVectorizationService wires the single-user pipeline and the batch
// orchestrator. lock may be nil (no cross-process serialization; in-process
// triggers are still deduplicated via singleflight).
func NewVectorizationService(
	log *logger.Logger,
	users repos.UserRepo,
	profiles repos.ProfileRepo,
	psychProfiles repos.PsychProfileRepo,
	answers repos.PromptAnswerRepo,
	embeddings repos.ProfileEmbeddingRepo,
	provider EmbeddingProvider,
	lock PipelineLock,
) VectorizationService {
	serviceLog := log.With("service", "VectorizationService")
	delayMS := utils.GetEnvAsInt("VECTORIZE_BATCH_DELAY_MS", 200, log)
	return &vectorizationService{
		log:           serviceLog,
		users:         users,
		profiles:      profiles,
		psychProfiles: psychProfiles,
		answers:       answers,
		embeddings:    embeddings,
		provider:      provider,
		lock:          lock,
		batchDelay:    time.Duration(delayMS) * time.Millisecond,
		tracer:        otel.Tracer("vectorization"),
	}
}

func (s *vectorizationService) VectorizeUser(ctx context.Context, userID uuid.UUID) (*VectorizeResult, error) {
	v, err, _ := s.group.Do(userID.String(), func() (interface{}, error) {
		return s.runPipeline(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*VectorizeResult), nil
}

func (s *vectorizationService) runPipeline(ctx context.Context, userID uuid.UUID) (*VectorizeResult, error) {
	ctx, span := s.tracer.Start(ctx, "vectorize.user",
		trace.WithAttributes(attribute.String("user.id", userID.String())))
	defer span.End()

	result := &VectorizeResult{UserID: userID}

	if s.lock != nil {
		release, acquired, err := s.lock.Acquire(ctx, userID)
		if err != nil {
			// Lock is best effort; a dead redis must not stop vectorization.
			s.log.Warn("Pipeline lock unavailable, continuing without it", "user_id", userID, "error", err)
		} else if !acquired {
			s.log.Debug("Pipeline already running for user, skipping", "user_id", userID)
			result.AlreadyRunning = true
			return result, nil
		} else {
			defer release()
		}
	}

	snap, found, err := s.assembleSnapshot(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("assemble profile snapshot: %w", err)
	}
	if !found {
		s.log.Warn("User not found, skipping vectorization", "user_id", userID)
		result.NotFound = true
		return result, nil
	}

	text := semantics.CompileProfileText(*snap)
	fingerprint := semantics.Fingerprint(text)
	result.Fingerprint = fingerprint

	existing, err := s.embeddings.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load existing embedding: %w", err)
	}
	if existing != nil && existing.Fingerprint == fingerprint {
		// Primary cost control: unchanged text means the (billed) embedding
		// call and all writes are skipped.
		s.log.Debug("Fingerprint unchanged, skipping recomputation", "user_id", userID)
		result.Skipped = true
		result.TagCount = len(existing.Tags)
		return result, nil
	}

	vec, err := s.provider.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed profile text: %w", err)
	}

	tags := semantics.DeriveTags(*snap)
	result.TagCount = len(tags)

	now := time.Now().UTC()
	row := &types.ProfileEmbedding{
		UserID:         userID,
		Vector:         pgvector.NewVector(vec),
		Fingerprint:    fingerprint,
		EnrichedVector: pgvector.NewVector(vec),
		EnrichedAt:     now,
		Tags:           tags,
	}
	if existing != nil {
		row.ID = existing.ID
		row.CreatedAt = existing.CreatedAt
	}

	if err := s.embeddings.Upsert(ctx, nil, row); err != nil {
		return nil, fmt.Errorf("persist profile embedding: %w", err)
	}
	if err := s.users.UpdateSemanticTags(ctx, nil, userID, tags); err != nil {
		return nil, fmt.Errorf("propagate semantic tags: %w", err)
	}

	s.log.Info("Profile vectorized", "user_id", userID, "tags", len(tags), "dim", len(vec))
	return result, nil
}

// assembleSnapshot reads the user's canonical records into the ephemeral
// snapshot. Read-only; an absent user reports found=false rather than an
// error. A user without profile/psych rows still vectorizes on whatever
// exists (answers, tags).
func (s *vectorizationService) assembleSnapshot(ctx context.Context, userID uuid.UUID) (*semantics.ProfileSnapshot, bool, error) {
	user, err := s.users.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, false, err
	}
	if user == nil {
		return nil, false, nil
	}

	snap := &semantics.ProfileSnapshot{
		UserID:       userID,
		ExistingTags: user.SemanticTags,
	}

	profile, err := s.profiles.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, false, err
	}
	if profile != nil {
		snap.Bio = profile.Bio
		snap.Interests = profile.Interests
		snap.Occupation = profile.Occupation
		snap.Education = profile.Education
		snap.Drinking = profile.Drinking
		snap.Smoking = profile.Smoking
		snap.Children = profile.Children
	}

	psych, err := s.psychProfiles.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, false, err
	}
	if psych != nil {
		snap.Psych = psychSnapshotFromRow(psych)
	}

	answers, err := s.answers.ListByUserID(ctx, nil, userID)
	if err != nil {
		return nil, false, err
	}
	for _, answer := range answers {
		snap.Answers = append(snap.Answers, semantics.AnswerSnapshot{
			Value:    answer.Value,
			Label:    answer.Label,
			Tag:      answer.Tag,
			Category: answer.Category,
			Weight:   answer.Weight,
		})
	}

	return snap, true, nil
}

func psychSnapshotFromRow(row *types.PsychProfile) *semantics.PsychSnapshot {
	snap := &semantics.PsychSnapshot{
		Sociability:        row.Sociability,
		Spontaneity:        row.Spontaneity,
		Adventurousness:    row.Adventurousness,
		Planning:           row.Planning,
		RelationshipIntent: row.RelationshipIntent,
		FamilyImportance:   row.FamilyImportance,
		CareerImportance:   row.CareerImportance,
		Openness:           row.Openness,
		EmotionalStability: row.EmotionalStability,
		Empathy:            row.Empathy,
		Ambition:           row.Ambition,
		ConflictStyle:      row.ConflictStyle,
		CommunicationStyle: row.CommunicationStyle,
		AttachmentStyle:    row.AttachmentStyle,
		ChildrenPreference: row.ChildrenPreference,
		RelationshipGoal:   row.RelationshipGoal,
	}
	if len(row.LoveLanguages) > 0 {
		var scores map[string]float64
		if err := json.Unmarshal(row.LoveLanguages, &scores); err == nil {
			snap.LoveLanguages = scores
		}
	}
	return snap
}

// VectorizeBatch runs the pipeline sequentially over the given users. A
// failed user is logged and skipped, never retried here, and never aborts the
// batch; the fixed pause between users is the only backpressure against the
// embedding provider.
func (s *vectorizationService) VectorizeBatch(ctx context.Context, userIDs []uuid.UUID) (*BatchSummary, error) {
	ctx, span := s.tracer.Start(ctx, "vectorize.batch",
		trace.WithAttributes(attribute.Int("batch.size", len(userIDs))))
	defer span.End()

	summary := &BatchSummary{Total: len(userIDs)}
	for i, userID := range userIDs {
		res, err := s.VectorizeUser(ctx, userID)
		switch {
		case err != nil:
			summary.Failed++
			s.log.Error("Batch item failed, continuing", "user_id", userID, "error", err)
		case res.NotFound:
			summary.NotFound++
		case res.Skipped || res.AlreadyRunning:
			summary.Skipped++
		default:
			summary.Processed++
		}

		if i < len(userIDs)-1 && s.batchDelay > 0 {
			time.Sleep(s.batchDelay)
		}
	}

	s.log.Info("Vectorization batch complete",
		"total", summary.Total,
		"processed", summary.Processed,
		"skipped", summary.Skipped,
		"not_found", summary.NotFound,
		"failed", summary.Failed,
	)
	return summary, nil
}
