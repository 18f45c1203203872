package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/indexgate/internal/core/domain"
	"github.com/custodia-labs/indexgate/internal/core/ports/driven"
	"github.com/custodia-labs/indexgate/internal/core/ports/driving"
	"github.com/custodia-labs/indexgate/internal/logger"
)

// Ensure ChunkService implements the interface.
var _ driving.ChunkService = (*ChunkService)(nil)

// ChunkService is the caller-facing mutation surface on top of the bulk
// engine. Job workers use it to upload chunks and Q/A rows, backfill
// embeddings and keep index rows in step with folder and path changes.
type ChunkService struct {
	indexer *IndexerService
	now     func() time.Time
}

// NewChunkService creates a chunk service.
func NewChunkService(indexer *IndexerService) *ChunkService {
	return &ChunkService{
		indexer: indexer,
		now:     time.Now,
	}
}

// UploadChunks uploads a batch of document chunks and returns the row keys
// that were persisted. Chunks without an id get a fresh synthetic key.
func (s *ChunkService) UploadChunks(ctx context.Context, target domain.IndexTarget, chunks []domain.DocumentChunk) ([]string, error) {
	docs := make([]driven.Document, 0, len(chunks))
	for i := range chunks {
		if chunks[i].ID == "" {
			chunks[i].ID = uuid.NewString()
		}
		if chunks[i].CreatedAt.IsZero() {
			chunks[i].CreatedAt = s.now().UTC()
		}
		docs = append(docs, chunkDocument(chunks[i]))
	}
	return s.indexer.Upload(ctx, target, docs)
}

// UploadQuestionAnswers uploads Q/A rows and returns the logical
// question-answer ids that were persisted, so the caller knows which
// entities actually made it into the index.
func (s *ChunkService) UploadQuestionAnswers(ctx context.Context, target domain.IndexTarget, rows []domain.QuestionAnswer) ([]string, error) {
	qaIDByKey := make(map[string]string, len(rows))
	docs := make([]driven.Document, 0, len(rows))
	for i := range rows {
		if rows[i].ID == "" {
			rows[i].ID = uuid.NewString()
		}
		if rows[i].CreatedAt.IsZero() {
			rows[i].CreatedAt = s.now().UTC()
		}
		qaIDByKey[rows[i].ID] = rows[i].QuestionAnswerID
		docs = append(docs, driven.Document{
			domain.FieldID:               rows[i].ID,
			domain.FieldQuestionAnswerID: rows[i].QuestionAnswerID,
			domain.FieldBotID:            rows[i].BotID,
			domain.FieldContent:          rows[i].Content,
			domain.FieldIsVectorized:     false,
			domain.FieldCreatedAt:        rows[i].CreatedAt.Format(time.RFC3339),
		})
	}

	keys, err := s.indexer.Upload(ctx, target, docs)
	if err != nil {
		return nil, err
	}

	qaIDs := make([]string, 0, len(keys))
	for _, key := range keys {
		if id, ok := qaIDByKey[key]; ok {
			qaIDs = append(qaIDs, id)
		}
	}
	return qaIDs, nil
}

// UpdateEmbeddings writes the vectors of one chunk and flips its
// vectorized flag, via a single-row read-modify-write.
func (s *ChunkService) UpdateEmbeddings(ctx context.Context, target domain.IndexTarget, chunkID string, titleVector, contentVector []float32) error {
	if len(titleVector) == 0 || len(contentVector) == 0 {
		return fmt.Errorf("chunk %q: embeddings must be non-empty: %w", chunkID, domain.ErrInvalidArgument)
	}
	return s.indexer.UpdateOneByFilter(ctx, target, eqFilter(domain.FieldID, chunkID), map[string]any{
		domain.FieldTitleVector:   titleVector,
		domain.FieldContentVector: contentVector,
		domain.FieldIsVectorized:  true,
	})
}

// CountUnvectorized counts the chunks of a bot still awaiting embeddings.
func (s *ChunkService) CountUnvectorized(ctx context.Context, target domain.IndexTarget, botID string) (int64, error) {
	filter := eqFilter(domain.FieldBotID, botID) + " and " + domain.FieldIsVectorized + " eq false"
	return s.indexer.Count(ctx, target, filter)
}

// FetchChunksByBot returns every chunk of a bot, paginated internally.
func (s *ChunkService) FetchChunksByBot(ctx context.Context, target domain.IndexTarget, botID string) ([]domain.DocumentChunk, error) {
	rows, err := s.indexer.FetchAll(ctx, target, eqFilter(domain.FieldBotID, botID))
	if err != nil {
		return nil, err
	}
	chunks := make([]domain.DocumentChunk, 0, len(rows))
	for _, row := range rows {
		chunks = append(chunks, rowChunk(row))
	}
	return chunks, nil
}

// DeleteByDocument removes every row of a document.
func (s *ChunkService) DeleteByDocument(ctx context.Context, target domain.IndexTarget, documentID string) error {
	return s.indexer.DeleteByFilter(ctx, target, eqFilter(domain.FieldDocumentID, documentID))
}

// DeleteByBot removes every row of a bot.
func (s *ChunkService) DeleteByBot(ctx context.Context, target domain.IndexTarget, botID string) error {
	return s.indexer.DeleteByFilter(ctx, target, eqFilter(domain.FieldBotID, botID))
}

// DeleteQuestionAnswer removes the rows of one logical Q/A entity.
func (s *ChunkService) DeleteQuestionAnswer(ctx context.Context, target domain.IndexTarget, questionAnswerID string) error {
	return s.indexer.DeleteByFilter(ctx, target, eqFilter(domain.FieldQuestionAnswerID, questionAnswerID))
}

// MoveDocument rewrites the folder id and blob path of every row of a
// document. Rows are fetched in full, mutated and re-uploaded as one batch.
func (s *ChunkService) MoveDocument(ctx context.Context, target domain.IndexTarget, documentID, folderID, blobPath string) error {
	rows, err := s.indexer.FetchAll(ctx, target, eqFilter(domain.FieldDocumentID, documentID))
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("document %q in %q: %w", documentID, target.IndexName, domain.ErrNotFound)
	}

	for _, row := range rows {
		row[domain.FieldDocumentFolderID] = folderID
		row[domain.FieldBlobPath] = blobPath
	}

	keys, err := s.indexer.Upload(ctx, target, rows)
	if err != nil {
		return err
	}
	if len(keys) != len(rows) {
		logger.Warn("Move of document %q persisted %d of %d rows", documentID, len(keys), len(rows))
		return fmt.Errorf("document %q: %d of %d rows were not persisted", documentID, len(rows)-len(keys), len(rows))
	}
	return nil
}

// chunkDocument converts a chunk into its index row shape.
func chunkDocument(c domain.DocumentChunk) driven.Document {
	doc := driven.Document{
		domain.FieldID:               c.ID,
		domain.FieldBotID:            c.BotID,
		domain.FieldDocumentID:       c.DocumentID,
		domain.FieldDocumentFolderID: c.DocumentFolderID,
		domain.FieldBlobPath:         c.BlobPath,
		domain.FieldContent:          c.Content,
		domain.FieldFileName:         c.FileName,
		domain.FieldFileExtension:    c.FileExtension,
		domain.FieldPageNumber:       c.PageNumber,
		domain.FieldIsVectorized:     c.IsVectorized,
		domain.FieldCreatedAt:        c.CreatedAt.Format(time.RFC3339),
	}
	if len(c.TitleVector) > 0 {
		doc[domain.FieldTitleVector] = c.TitleVector
	}
	if len(c.ContentVector) > 0 {
		doc[domain.FieldContentVector] = c.ContentVector
	}
	return doc
}

// rowChunk converts an index row back into a chunk.
func rowChunk(row driven.Document) domain.DocumentChunk {
	createdAt, _ := time.Parse(time.RFC3339, row.String(domain.FieldCreatedAt))
	return domain.DocumentChunk{
		ID:               row.Key(),
		BotID:            row.String(domain.FieldBotID),
		DocumentID:       row.String(domain.FieldDocumentID),
		DocumentFolderID: row.String(domain.FieldDocumentFolderID),
		BlobPath:         row.String(domain.FieldBlobPath),
		Content:          row.String(domain.FieldContent),
		FileName:         row.String(domain.FieldFileName),
		FileExtension:    row.String(domain.FieldFileExtension),
		PageNumber:       row.Int(domain.FieldPageNumber),
		IsVectorized:     row.Bool(domain.FieldIsVectorized),
		CreatedAt:        createdAt,
	}
}

// eqFilter builds a single-quoted equality clause, escaping embedded quotes.
func eqFilter(field, value string) string {
	return fmt.Sprintf("%s eq '%s'", field, strings.ReplaceAll(value, "'", "''"))
}
