package text

import (
	"context"

	"github.com/google/uuid"

	"github.com/lingosteps/backend/internal/audio"
	"github.com/lingosteps/backend/internal/domain"
	"github.com/lingosteps/backend/internal/provider"
)

var _ textRepo = &textRepoMock{}

type textRepoMock struct {
	CreateFunc            func(ctx context.Context, t domain.Text) (domain.Text, error)
	GetByIDFunc           func(ctx context.Context, userID, textID uuid.UUID) (domain.Text, error)
	ListByUserFunc        func(ctx context.Context, userID uuid.UUID) ([]domain.Text, error)
	DeleteFunc            func(ctx context.Context, userID, textID uuid.UUID) error
	UpdateAudioStatusFunc func(ctx context.Context, textID uuid.UUID, status domain.AudioStatus) error
}

func (m *textRepoMock) Create(ctx context.Context, t domain.Text) (domain.Text, error) {
	return m.CreateFunc(ctx, t)
}

func (m *textRepoMock) GetByID(ctx context.Context, userID, textID uuid.UUID) (domain.Text, error) {
	return m.GetByIDFunc(ctx, userID, textID)
}

func (m *textRepoMock) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Text, error) {
	return m.ListByUserFunc(ctx, userID)
}

func (m *textRepoMock) Delete(ctx context.Context, userID, textID uuid.UUID) error {
	return m.DeleteFunc(ctx, userID, textID)
}

func (m *textRepoMock) UpdateAudioStatus(ctx context.Context, textID uuid.UUID, status domain.AudioStatus) error {
	return m.UpdateAudioStatusFunc(ctx, textID, status)
}

var _ sentenceRepo = &sentenceRepoMock{}

type sentenceRepoMock struct {
	CreateBatchFunc   func(ctx context.Context, s domain.Sentence, links []domain.SentenceWord) (domain.Sentence, error)
	ListByTextFunc    func(ctx context.Context, textID uuid.UUID) ([]domain.Sentence, error)
	ListAlignmentFunc func(ctx context.Context, textID uuid.UUID) ([]domain.AlignedWord, error)
}

func (m *sentenceRepoMock) CreateBatch(ctx context.Context, s domain.Sentence, links []domain.SentenceWord) (domain.Sentence, error) {
	return m.CreateBatchFunc(ctx, s, links)
}

func (m *sentenceRepoMock) ListByText(ctx context.Context, textID uuid.UUID) ([]domain.Sentence, error) {
	return m.ListByTextFunc(ctx, textID)
}

func (m *sentenceRepoMock) ListAlignment(ctx context.Context, textID uuid.UUID) ([]domain.AlignedWord, error) {
	return m.ListAlignmentFunc(ctx, textID)
}

var _ wordRepo = &wordRepoMock{}

type wordRepoMock struct {
	GetOrCreateFunc func(ctx context.Context, w domain.Word) (uuid.UUID, error)
	ListKnownFunc   func(ctx context.Context, userID uuid.UUID, sourceLanguage string, limit int) ([]string, error)
}

func (m *wordRepoMock) GetOrCreate(ctx context.Context, w domain.Word) (uuid.UUID, error) {
	return m.GetOrCreateFunc(ctx, w)
}

func (m *wordRepoMock) ListKnown(ctx context.Context, userID uuid.UUID, sourceLanguage string, limit int) ([]string, error) {
	return m.ListKnownFunc(ctx, userID, sourceLanguage, limit)
}

var _ stepRepo = &stepRepoMock{}

type stepRepoMock struct {
	CountByTextsFunc func(ctx context.Context, userID uuid.UUID, textIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

func (m *stepRepoMock) CountByTexts(ctx context.Context, userID uuid.UUID, textIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	return m.CountByTextsFunc(ctx, userID, textIDs)
}

var _ txManager = &txManagerMock{}

// txManagerMock runs the callback inline, no transaction semantics.
type txManagerMock struct{}

func (txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var _ translator = &translatorMock{}

type translatorMock struct {
	TranslateFunc func(ctx context.Context, text, sourceLang, targetLang string) (provider.TranslationResult, error)
}

func (m *translatorMock) Translate(ctx context.Context, text, sourceLang, targetLang string) (provider.TranslationResult, error) {
	return m.TranslateFunc(ctx, text, sourceLang, targetLang)
}

var _ generator = &generatorMock{}

type generatorMock struct {
	GenerateFunc func(ctx context.Context, knownWords []string, newWordsPercentage int, sourceLang string, sentenceCount int) (string, error)
}

func (m *generatorMock) Generate(ctx context.Context, knownWords []string, newWordsPercentage int, sourceLang string, sentenceCount int) (string, error) {
	return m.GenerateFunc(ctx, knownWords, newWordsPercentage, sourceLang, sentenceCount)
}

var _ audioEnqueuer = &audioEnqueuerMock{}

type audioEnqueuerMock struct {
	jobs []audio.Job
	err  error
}

func (m *audioEnqueuerMock) Enqueue(_ context.Context, job audio.Job) error {
	if m.err != nil {
		return m.err
	}
	m.jobs = append(m.jobs, job)
	return nil
}
