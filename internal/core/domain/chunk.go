package domain

import "time"

// DocumentChunk is one row of a bot or tenant index: a single chunk of a
// document, keyed by a synthetic id. Vector fields stay nil until the
// embedding backfill job computes them and flips IsVectorized.
type DocumentChunk struct {
	// ID is the synthetic row key.
	ID string

	// BotID is the owning bot.
	BotID string

	// DocumentID is the parent document.
	DocumentID string

	// DocumentFolderID is the folder the document lives in.
	DocumentFolderID string

	// BlobPath locates the source blob in storage.
	BlobPath string

	// Content is the chunk text.
	Content string

	// FileName is the source file name without extension.
	FileName string

	// FileExtension is the source file extension (pdf, pptx, xlsx, docx, ...).
	FileExtension string

	// PageNumber is the page, slide, sheet or paragraph ordinal.
	PageNumber int

	// TitleVector is the embedding of the title, nil until vectorized.
	TitleVector []float32

	// ContentVector is the embedding of the content, nil until vectorized.
	ContentVector []float32

	// IsVectorized reports whether embeddings have been computed.
	IsVectorized bool

	// CreatedAt orders rows for stable pagination.
	CreatedAt time.Time
}

// QuestionAnswer is a curated Q/A row stored alongside document chunks in
// the tenant index, distinguished by a populated QuestionAnswerID.
type QuestionAnswer struct {
	// ID is the synthetic row key.
	ID string

	// QuestionAnswerID is the logical Q/A entity id.
	QuestionAnswerID string

	// BotID is the owning bot.
	BotID string

	// Content is the answer text; the leading runes double as the display name.
	Content string

	// CreatedAt orders rows for stable pagination.
	CreatedAt time.Time
}
