package application

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/oksasatya/travel-story-api/internal/domain/entity"
	"github.com/oksasatya/travel-story-api/internal/testutil/memory"
)

func newMemoryUsers() *memory.UserRepository    { return memory.NewUserRepository() }
func newMemoryStories() *memory.StoryRepository { return memory.NewStoryRepository() }

// fakeSender records messages; err makes every send fail.
type fakeSender struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

type sentMail struct {
	To, Subject, Body string
}

func (f *fakeSender) Send(_ context.Context, to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

type fakeImages struct {
	deleted []string
	err     error
}

func (f *fakeImages) Save(_ context.Context, userID, filename, _ string, r io.Reader) (string, error) {
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	return "http://localhost:8000/uploads/stories/" + userID + "/" + filename, nil
}

func (f *fakeImages) Delete(_ context.Context, url string) error {
	f.deleted = append(f.deleted, url)
	return f.err
}

type fakeIndex struct {
	indexed map[string]entity.Story
	deleted []string
	ids     []string
	err     error
}

func newFakeIndex() *fakeIndex { return &fakeIndex{indexed: map[string]entity.Story{}} }

func (f *fakeIndex) Index(_ context.Context, s *entity.Story) error {
	f.indexed[s.ID] = *s
	return nil
}

func (f *fakeIndex) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeIndex) Search(context.Context, string, string) ([]string, error) {
	return f.ids, f.err
}

type fakeInvalidator struct{ users []string }

func (f *fakeInvalidator) Invalidate(_ context.Context, userID string) {
	f.users = append(f.users, userID)
}

type fakeGenerator struct {
	out     string
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.out, f.err
}

type fakeGoogle struct {
	id  *GoogleIdentity
	err error
}

func (f *fakeGoogle) Verify(context.Context, string) (*GoogleIdentity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.id, nil
}

var errBoom = errors.New("boom")
