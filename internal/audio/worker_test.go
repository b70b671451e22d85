package audio_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/lingosteps/backend/internal/audio"
	"github.com/lingosteps/backend/internal/domain"
)

type fakeTexts struct {
	texts    map[uuid.UUID]domain.Text
	statuses []domain.AudioStatus
}

func (f *fakeTexts) Get(_ context.Context, textID uuid.UUID) (domain.Text, error) {
	t, ok := f.texts[textID]
	if !ok {
		return domain.Text{}, domain.ErrNotFound
	}
	return t, nil
}

func (f *fakeTexts) UpdateAudioStatus(_ context.Context, _ uuid.UUID, status domain.AudioStatus) error {
	f.statuses = append(f.statuses, status)
	return nil
}

type fakeSentences struct {
	pending []domain.Sentence
	urls    map[uuid.UUID]string
}

func (f *fakeSentences) ListWithoutAudio(_ context.Context, _ uuid.UUID) ([]domain.Sentence, error) {
	return f.pending, nil
}

func (f *fakeSentences) SetAudioURL(_ context.Context, sentenceID uuid.UUID, url string) error {
	f.urls[sentenceID] = url
	return nil
}

type fakeWords struct {
	pending []domain.Word
	urls    map[uuid.UUID]string
}

func (f *fakeWords) ListByTextWithoutAudio(_ context.Context, _ uuid.UUID) ([]domain.Word, error) {
	return f.pending, nil
}

func (f *fakeWords) SetAudioURL(_ context.Context, wordID uuid.UUID, url string) error {
	f.urls[wordID] = url
	return nil
}

type fakeStore struct {
	objects map[string][]byte
}

func (f *fakeStore) Put(_ context.Context, key string, data []byte) (string, error) {
	f.objects[key] = data
	return "http://store/" + key, nil
}

type failingSynthesizer struct{}

func (failingSynthesizer) Synthesize(context.Context, string, string, string) ([]byte, error) {
	return nil, errors.New("speech service down")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestObjectKey_Deterministic(t *testing.T) {
	t.Parallel()

	a := audio.ObjectKey("hola mundo", "es-f1")
	b := audio.ObjectKey("hola mundo", "es-f1")
	c := audio.ObjectKey("hola mundo", "es-m1")

	if a != b {
		t.Error("same text and voice must produce the same key")
	}
	if a == c {
		t.Error("different voices must produce different keys")
	}
}

func TestWorker_Process(t *testing.T) {
	t.Parallel()

	textID := uuid.New()
	sentenceID := uuid.New()
	wordID := uuid.New()

	texts := &fakeTexts{texts: map[uuid.UUID]domain.Text{
		textID: {ID: textID, SourceLanguage: "es"},
	}}
	sentences := &fakeSentences{
		pending: []domain.Sentence{{ID: sentenceID, SourceSentence: "Hola mundo."}},
		urls:    map[uuid.UUID]string{},
	}
	words := &fakeWords{
		pending: []domain.Word{{ID: wordID, SourceWord: "hola"}},
		urls:    map[uuid.UUID]string{},
	}
	store := &fakeStore{objects: map[string][]byte{}}

	w := audio.NewWorker(audio.WorkerDeps{
		Texts:       texts,
		Sentences:   sentences,
		Words:       words,
		Store:       store,
		Synthesizer: audio.StubSynthesizer{},
		Voice:       "es-f1",
		Logger:      discardLogger(),
	})

	if err := w.Process(context.Background(), audio.Job{TextID: textID}); err != nil {
		t.Fatalf("Process: %v", err)
	}

	wantStatuses := []domain.AudioStatus{domain.AudioStatusProcessing, domain.AudioStatusCompleted}
	if len(texts.statuses) != len(wantStatuses) {
		t.Fatalf("status transitions: got %v", texts.statuses)
	}
	for i, want := range wantStatuses {
		if texts.statuses[i] != want {
			t.Errorf("status %d: got %q, want %q", i, texts.statuses[i], want)
		}
	}

	if sentences.urls[sentenceID] == "" {
		t.Error("sentence audio url was not stored")
	}
	if words.urls[wordID] == "" {
		t.Error("word audio url was not stored")
	}
	if len(store.objects) != 2 {
		t.Errorf("uploaded objects: got %d, want 2", len(store.objects))
	}
}

func TestWorker_Process_SynthesisFailureMarksFailed(t *testing.T) {
	t.Parallel()

	textID := uuid.New()
	texts := &fakeTexts{texts: map[uuid.UUID]domain.Text{
		textID: {ID: textID, SourceLanguage: "es"},
	}}
	sentences := &fakeSentences{
		pending: []domain.Sentence{{ID: uuid.New(), SourceSentence: "Hola."}},
		urls:    map[uuid.UUID]string{},
	}
	words := &fakeWords{urls: map[uuid.UUID]string{}}

	w := audio.NewWorker(audio.WorkerDeps{
		Texts:       texts,
		Sentences:   sentences,
		Words:       words,
		Store:       &fakeStore{objects: map[string][]byte{}},
		Synthesizer: failingSynthesizer{},
		Voice:       "es-f1",
		Logger:      discardLogger(),
	})

	if err := w.Process(context.Background(), audio.Job{TextID: textID}); err == nil {
		t.Fatal("Process should report the synthesis failure")
	}

	last := texts.statuses[len(texts.statuses)-1]
	if last != domain.AudioStatusFailed {
		t.Errorf("final status: got %q, want failed", last)
	}
}

func TestWorker_Process_DeletedTextIsSkipped(t *testing.T) {
	t.Parallel()

	texts := &fakeTexts{texts: map[uuid.UUID]domain.Text{}}
	w := audio.NewWorker(audio.WorkerDeps{
		Texts:       texts,
		Sentences:   &fakeSentences{urls: map[uuid.UUID]string{}},
		Words:       &fakeWords{urls: map[uuid.UUID]string{}},
		Store:       &fakeStore{objects: map[string][]byte{}},
		Synthesizer: audio.StubSynthesizer{},
		Logger:      discardLogger(),
	})

	if err := w.Process(context.Background(), audio.Job{TextID: uuid.New()}); err != nil {
		t.Errorf("deleted text must not be an error: %v", err)
	}
	if len(texts.statuses) != 0 {
		t.Errorf("no status transitions expected, got %v", texts.statuses)
	}
}
