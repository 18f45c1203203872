package driving

import (
	"context"

	"github.com/custodia-labs/indexgate/internal/core/domain"
)

// ChunkService is the caller-facing mutation surface job workers use to
// maintain index rows: bulk chunk upload, embedding backfill, Q/A upsert,
// filter-scoped deletion and the sync-job path rewrites.
type ChunkService interface {
	// UploadChunks uploads a batch of document chunks (unvectorized) and
	// returns the row keys that were persisted. A partial failure is
	// reported through the returned keys, not as an error.
	UploadChunks(ctx context.Context, target domain.IndexTarget, chunks []domain.DocumentChunk) ([]string, error)

	// UploadQuestionAnswers uploads Q/A rows and returns the logical
	// question-answer ids that were persisted.
	UploadQuestionAnswers(ctx context.Context, target domain.IndexTarget, rows []domain.QuestionAnswer) ([]string, error)

	// UpdateEmbeddings writes the title and content vectors of one chunk
	// and flips its vectorized flag.
	UpdateEmbeddings(ctx context.Context, target domain.IndexTarget, chunkID string, titleVector, contentVector []float32) error

	// CountUnvectorized counts the chunks of a bot still awaiting embeddings.
	CountUnvectorized(ctx context.Context, target domain.IndexTarget, botID string) (int64, error)

	// FetchChunksByBot returns every chunk of a bot, paginated internally.
	FetchChunksByBot(ctx context.Context, target domain.IndexTarget, botID string) ([]domain.DocumentChunk, error)

	// DeleteByDocument removes every row of a document.
	DeleteByDocument(ctx context.Context, target domain.IndexTarget, documentID string) error

	// DeleteByBot removes every row of a bot.
	DeleteByBot(ctx context.Context, target domain.IndexTarget, botID string) error

	// DeleteQuestionAnswer removes the rows of one logical Q/A entity.
	DeleteQuestionAnswer(ctx context.Context, target domain.IndexTarget, questionAnswerID string) error

	// MoveDocument rewrites the folder id and blob path of every row of a
	// document.
	MoveDocument(ctx context.Context, target domain.IndexTarget, documentID, folderID, blobPath string) error
}
