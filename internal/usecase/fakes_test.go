package usecase

import (
	"context"
	"io"
	"sync"

	"github.com/prasitsang/stockroom-api/shared/storage"
)

// fakeNotifier records sent messages and can be primed to fail, so tests can
// observe the notifier contract without a mail server.
type fakeNotifier struct {
	mu   sync.Mutex
	err  error
	sent []sentEmail
}

type sentEmail struct {
	subject  string
	htmlBody string
	to       string
	from     string
	replyTo  string
}

func (f *fakeNotifier) Send(subject, htmlBody, to, from, replyTo string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}

	f.sent = append(f.sent, sentEmail{
		subject:  subject,
		htmlBody: htmlBody,
		to:       to,
		from:     from,
		replyTo:  replyTo,
	})

	return nil
}

func (f *fakeNotifier) lastSent() sentEmail {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.sent[len(f.sent)-1]
}

// fakeUploader records blob removals and can be primed to fail.
type fakeUploader struct {
	mu        sync.Mutex
	removeErr error
	removed   []string
}

func (f *fakeUploader) Upload(
	_ context.Context,
	originalName, contentType string,
	size int64,
	_ io.Reader,
) (*storage.UploadResult, error) {
	return &storage.UploadResult{
		FileName: originalName,
		FilePath: "http://localhost:5000/uploads/" + originalName,
		FileType: contentType,
		FileSize: storage.FormatFileSize(size, 2),
		PublicID: "fake-public-id",
	}, nil
}

func (f *fakeUploader) Remove(_ context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.removeErr != nil {
		return f.removeErr
	}

	f.removed = append(f.removed, publicID)
	return nil
}
